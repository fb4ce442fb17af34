package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pharmabot/basket-service/internal/domain/dto"
	"github.com/pharmabot/basket-service/internal/i18n"
	"github.com/pharmabot/basket-service/internal/middleware"
	"github.com/pharmabot/basket-service/internal/repository"
	"github.com/pharmabot/basket-service/internal/service"
)

// BasketHandler provides HTTP handlers for basket management routes.
type BasketHandler struct {
	basketService service.BasketService
}

// NewBasketHandler creates a new BasketHandler instance.
func NewBasketHandler(basketService service.BasketService) *BasketHandler {
	return &BasketHandler{basketService: basketService}
}

// parseProductIDParam parses the :productID path parameter.
func parseProductIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("productID"), 10, 64)
	if err != nil || id <= 0 {
		NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return 0, false
	}
	return id, true
}

// GetBasket handles GET /api/basket requests.
//
// @Summary      Get the stored basket
// @Description  Returns all basket lines sorted by product ID.
// @Tags         Basket
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "Basket contents"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/basket [get]
func (h *BasketHandler) GetBasket(c *gin.Context) {
	builder := NewResponseBuilder(c)

	items, err := h.basketService.Get(c.Request.Context())
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(items)
}

// AddBasketItem handles POST /api/basket/items requests.
//
// @Summary      Add a product to the basket
// @Description  Inserts a basket line, or increments the quantity when the product is already present. The product must exist in the catalog.
// @Tags         Basket
// @Accept       json
// @Produce      json
// @Param        request body dto.AddBasketItemRequest true "Product and quantity"
// @Success      200 {object} dto.SuccessResponse "Updated basket line"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Product not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/basket/items [post]
func (h *BasketHandler) AddBasketItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.AddBasketItemRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	item, err := h.basketService.AddItem(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			builder.Error(http.StatusNotFound, i18n.ErrKeyProductNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	middleware.AuditAction(auditTrail(c), c, "add_basket_item", "Basket item added", map[string]interface{}{
		"product_id": req.ProductID,
		"quantity":   req.Quantity,
	})

	builder.SuccessOK(item)
}

// UpdateBasketItem handles PUT /api/basket/items/:productID requests.
//
// @Summary      Set a basket line's quantity
// @Description  Replaces the quantity of an existing basket line.
// @Tags         Basket
// @Accept       json
// @Produce      json
// @Param        productID path int true "Product ID"
// @Param        request body dto.UpdateBasketItemRequest true "New quantity"
// @Success      200 {object} dto.SuccessResponse "Updated basket line"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Product not in basket"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/basket/items/{productID} [put]
func (h *BasketHandler) UpdateBasketItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	productID, ok := parseProductIDParam(c)
	if !ok {
		return
	}

	req, err := BuildRequestAndValidate[dto.UpdateBasketItemRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	item, err := h.basketService.UpdateItem(c.Request.Context(), productID, req.Quantity)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotPresent) {
			builder.Error(http.StatusNotFound, i18n.ErrKeyItemNotPresent, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(item)
}

// RemoveBasketItem handles DELETE /api/basket/items/:productID requests.
//
// @Summary      Remove a product from the basket
// @Description  Deletes the basket line for the given product.
// @Tags         Basket
// @Produce      json
// @Param        productID path int true "Product ID"
// @Success      200 {object} dto.SuccessResponse "Line removed"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid product ID"
// @Failure      404 {object} dto.ErrorResponse "Product not in basket"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/basket/items/{productID} [delete]
func (h *BasketHandler) RemoveBasketItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	productID, ok := parseProductIDParam(c)
	if !ok {
		return
	}

	if err := h.basketService.RemoveItem(c.Request.Context(), productID); err != nil {
		if errors.Is(err, repository.ErrItemNotPresent) {
			builder.Error(http.StatusNotFound, i18n.ErrKeyItemNotPresent, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(gin.H{"removed": productID})
}
