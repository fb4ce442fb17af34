package http

import (
	"github.com/gin-gonic/gin"

	"github.com/pharmabot/basket-service/internal/service"
)

// BasketRoutes handles basket route registration.
type BasketRoutes struct {
	handler *BasketHandler
}

// NewBasketRoutes creates a new BasketRoutes instance.
func NewBasketRoutes(basketService service.BasketService) *BasketRoutes {
	return &BasketRoutes{handler: NewBasketHandler(basketService)}
}

// RegisterRoutes registers the basket routes on the API group.
func (r *BasketRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	rg.GET("/basket", r.handler.GetBasket)
	rg.POST("/basket/items", r.handler.AddBasketItem)
	rg.PUT("/basket/items/:productID", r.handler.UpdateBasketItem)
	rg.DELETE("/basket/items/:productID", r.handler.RemoveBasketItem)
}

// GetHandler returns the underlying basket handler.
func (r *BasketRoutes) GetHandler() *BasketHandler {
	return r.handler
}

// CatalogRoutes handles product, pharmacy, and offer route registration.
type CatalogRoutes struct {
	handler *CatalogHandler
}

// NewCatalogRoutes creates a new CatalogRoutes instance.
func NewCatalogRoutes(catalogService service.CatalogService) *CatalogRoutes {
	return &CatalogRoutes{handler: NewCatalogHandler(catalogService)}
}

// RegisterRoutes registers the catalog routes on the API group.
func (r *CatalogRoutes) RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig) {
	rg.GET("/products", r.handler.ListProducts)
	rg.POST("/products", r.handler.CreateProduct)
	rg.PUT("/products/:minsan", r.handler.UpdateProduct)
	rg.DELETE("/products/:minsan", r.handler.DeleteProduct)

	rg.GET("/pharmacies", r.handler.ListPharmacies)
	rg.POST("/pharmacies", r.handler.CreatePharmacy)

	rg.GET("/offers", r.handler.ListOffers)
	rg.PUT("/offers", r.handler.UpsertOffer)
}

// GetHandler returns the underlying catalog handler.
func (r *CatalogRoutes) GetHandler() *CatalogHandler {
	return r.handler
}
