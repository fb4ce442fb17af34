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

// CatalogHandler provides HTTP handlers for product, pharmacy, and offer routes.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler instance.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProducts handles GET /api/products requests.
//
// @Summary      List catalog products
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "Products sorted by ID"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	builder := NewResponseBuilder(c)

	products, err := h.catalogService.ListProducts(c.Request.Context())
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(products)
}

// CreateProduct handles POST /api/products requests.
//
// @Summary      Create a catalog product
// @Description  Registers a product under a unique minsan code.
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateProductRequest true "Product data"
// @Success      201 {object} dto.SuccessResponse "Created product"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      409 {object} dto.ErrorResponse "Duplicate minsan code"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.CreateProductRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	product, err := h.catalogService.CreateProduct(c.Request.Context(), req.Minsan, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateMinsan) {
			builder.Error(http.StatusConflict, i18n.ErrKeyDuplicateMinsan, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	middleware.AuditAction(auditTrail(c), c, "create_product", "Product created", map[string]interface{}{
		"minsan": req.Minsan,
	})

	builder.SuccessCreated(product)
}

// UpdateProduct handles PUT /api/products/:minsan requests.
//
// @Summary      Rename a catalog product
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        minsan path string true "Minsan code"
// @Param        request body dto.UpdateProductRequest true "New name"
// @Success      200 {object} dto.SuccessResponse "Updated product"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Product not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/products/{minsan} [put]
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.UpdateProductRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Request.Context(), c.Param("minsan"), req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			builder.Error(http.StatusNotFound, i18n.ErrKeyProductNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(product)
}

// DeleteProduct handles DELETE /api/products/:minsan requests.
//
// @Summary      Delete a catalog product
// @Description  Removes the product along with its offers and any basket line referencing it.
// @Tags         Catalog
// @Produce      json
// @Param        minsan path string true "Minsan code"
// @Success      200 {object} dto.SuccessResponse "Product deleted"
// @Failure      404 {object} dto.ErrorResponse "Product not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/products/{minsan} [delete]
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	builder := NewResponseBuilder(c)

	minsan := c.Param("minsan")
	if err := h.catalogService.DeleteProduct(c.Request.Context(), minsan); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			builder.Error(http.StatusNotFound, i18n.ErrKeyProductNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	middleware.AuditAction(auditTrail(c), c, "delete_product", "Product deleted", map[string]interface{}{
		"minsan": minsan,
	})

	builder.SuccessOK(gin.H{"deleted": minsan})
}

// ListPharmacies handles GET /api/pharmacies requests.
//
// @Summary      List registered pharmacies
// @Tags         Catalog
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "Pharmacies with shipping policy"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/pharmacies [get]
func (h *CatalogHandler) ListPharmacies(c *gin.Context) {
	builder := NewResponseBuilder(c)

	pharmacies, err := h.catalogService.ListPharmacies(c.Request.Context())
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(pharmacies)
}

// CreatePharmacy handles POST /api/pharmacies requests.
//
// @Summary      Register a pharmacy
// @Description  Registers a pharmacy with its base shipping cost and optional free-shipping threshold.
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        request body dto.CreatePharmacyRequest true "Pharmacy data"
// @Success      201 {object} dto.SuccessResponse "Created pharmacy"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/pharmacies [post]
func (h *CatalogHandler) CreatePharmacy(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.CreatePharmacyRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	baseShipping, threshold := req.ShippingPolicy()
	pharmacy, err := h.catalogService.CreatePharmacy(c.Request.Context(), req.Name, baseShipping, threshold)
	if err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	middleware.AuditAction(auditTrail(c), c, "create_pharmacy", "Pharmacy registered", map[string]interface{}{
		"name": req.Name,
	})

	builder.SuccessCreated(pharmacy)
}

// ListOffers handles GET /api/offers requests.
//
// @Summary      List offers for a product
// @Description  Returns the offers for the product given by the product_id query parameter, joined with each pharmacy's shipping policy.
// @Tags         Catalog
// @Produce      json
// @Param        product_id query int true "Product ID"
// @Success      200 {object} dto.SuccessResponse "Offers for the product"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid product_id"
// @Failure      404 {object} dto.ErrorResponse "Product not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/offers [get]
func (h *CatalogHandler) ListOffers(c *gin.Context) {
	builder := NewResponseBuilder(c)

	productID, err := strconv.ParseInt(c.Query("product_id"), 10, 64)
	if err != nil || productID <= 0 {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}

	offers, err := h.catalogService.ListOffers(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			builder.Error(http.StatusNotFound, i18n.ErrKeyProductNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	builder.SuccessOK(offers)
}

// UpsertOffer handles PUT /api/offers requests.
//
// @Summary      Create or replace an offer
// @Description  Upserts the single offer for one (product, pharmacy) pair. Both the product and the pharmacy must exist.
// @Tags         Catalog
// @Accept       json
// @Produce      json
// @Param        request body dto.UpsertOfferRequest true "Offer data"
// @Success      200 {object} dto.SuccessResponse "Offer stored"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Product or pharmacy not found"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/offers [put]
func (h *CatalogHandler) UpsertOffer(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.UpsertOfferRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	if err := h.catalogService.UpsertOffer(c.Request.Context(), req.ProductID, req.PharmacyID, req.PriceDecimal()); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			builder.Error(http.StatusNotFound, i18n.ErrKeyProductNotFound, err)
			return
		}
		if errors.Is(err, repository.ErrPharmacyNotFound) {
			builder.Error(http.StatusNotFound, i18n.ErrKeyPharmacyNotFound, err)
			return
		}
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	middleware.AuditAction(auditTrail(c), c, "upsert_offer", "Offer upserted", map[string]interface{}{
		"product_id":  req.ProductID,
		"pharmacy_id": req.PharmacyID,
		"price":       req.Price,
	})

	builder.SuccessOK(gin.H{"product_id": req.ProductID, "pharmacy_id": req.PharmacyID, "price": req.Price})
}
