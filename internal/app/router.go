// Package app provides router configuration.
package app

import (
	"context"
	"time"

	"github.com/pharmabot/basket-service/config"
	"github.com/pharmabot/basket-service/internal/http"
	"github.com/pharmabot/basket-service/internal/optimizer"
	"github.com/pharmabot/basket-service/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(
	engine optimizer.Engine,
	dbComponents *DatabaseComponents,
	cfg config.Config,
) *RouterComponents {
	var optimizeOpts []service.OptimizeOption
	if cfg.Optimizer.OfferCacheTTL > 0 {
		optimizeOpts = append(optimizeOpts, service.WithOffersSnapshotCache(cfg.Optimizer.OfferCacheTTL))
	}

	// Without MongoDB the optimize endpoint still serves inline baskets;
	// basket and catalog routes are not registered.
	var trail service.AuditService
	var catalogService service.CatalogService
	var basketService service.BasketService
	var optimizeService *service.OptimizeServiceImpl

	if dbComponents != nil {
		trail = dbComponents.Audit
		optimizeService = service.NewOptimizeService(engine, dbComponents.BasketRepo, dbComponents.OffersRepo, optimizeOpts...)
		catalogService = service.NewCatalogService(
			dbComponents.ProductsRepo,
			dbComponents.PharmaciesRepo,
			dbComponents.OffersRepo,
			dbComponents.BasketRepo,
			optimizeService,
		)
		basketService = service.NewBasketService(dbComponents.BasketRepo, dbComponents.ProductsRepo)
	} else {
		optimizeService = service.NewOptimizeService(engine, nil, nil, optimizeOpts...)
	}

	handler := http.NewHandler(optimizeService)
	healthHandler := http.NewHealthHandler()

	if dbComponents != nil {
		if dbComponents.DB != nil {
			healthHandler.AddCheck("mongodb", func() error {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				return dbComponents.DB.HealthCheck(ctx)
			})
		}
		if dbComponents.OffersBreaker != nil {
			healthHandler.WatchBreaker(dbComponents.OffersBreaker)
		}
		if dbComponents.AuditBreaker != nil {
			healthHandler.WatchBreaker(dbComponents.AuditBreaker)
		}
	}

	routerCfg := http.RouterConfig{
		RateLimit:      cfg.Server.RateLimit,
		RateWindow:     cfg.Server.RateWindow,
		CORSOrigins:    cfg.Server.CORSOrigins,
		SwaggerUser:    cfg.Server.SwaggerUser,
		SwaggerPass:    cfg.Server.SwaggerPass,
		Audit:          trail,
		CatalogService: catalogService,
		BasketService:  basketService,
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
