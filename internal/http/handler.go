package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pharmabot/basket-service/internal/domain/dto"
	"github.com/pharmabot/basket-service/internal/i18n"
	"github.com/pharmabot/basket-service/internal/middleware"
	"github.com/pharmabot/basket-service/internal/service"
)

// Handler provides HTTP handlers for basket optimization routes.
type Handler struct {
	optimizeService service.OptimizeService
}

// NewHandler creates a new Handler instance.
func NewHandler(optimizeService service.OptimizeService) *Handler {
	return &Handler{optimizeService: optimizeService}
}

// auditTrail extracts the audit trail stored in the request context.
func auditTrail(c *gin.Context) service.AuditService {
	if trail, exists := c.Get("audit_trail"); exists {
		if t, ok := trail.(service.AuditService); ok {
			return t
		}
	}
	return nil
}

// OptimizeBasket handles POST /api/optimize requests.
//
// @Summary      Optimize the basket across pharmacies
// @Description  Computes the cheapest ways to fulfill the basket from the available pharmacy offers, including shipping. Solutions are grouped by the number of orders they require; within each group they are sorted by total cost. The stored basket is used unless the request carries an inline items override.
// @Tags         Optimize
// @Accept       json
// @Produce      json
// @Param        request body dto.OptimizeBasketRequest true "Optimization parameters"
// @Success      200 {object} dto.SuccessResponse "Computed solutions"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Failure      503 {object} dto.ErrorResponse "Service unavailable"
// @Router       /api/optimize [post]
func (h *Handler) OptimizeBasket(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.OptimizeBasketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	if err := req.Validate(); err != nil {
		var validationErr *dto.ValidationError
		if errors.As(err, &validationErr) {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationBasket, err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	middleware.AuditAction(auditTrail(c), c, "optimize", "Basket optimization requested", map[string]interface{}{
		"max_orders":   req.MaxOrders,
		"limits":       req.Limits,
		"has_override": len(req.Items) > 0,
	})

	solutions, err := h.optimizeService.Optimize(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrBasketUnavailable) || errors.Is(err, service.ErrOffersUnavailable) {
			builder.Error(http.StatusServiceUnavailable, i18n.ErrKeyStorageUnavailable, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(dto.OptimizeBasketResponse{Solutions: solutions})
}
