// Package app provides application initialization and dependency injection.
package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/pharmabot/basket-service/config"
	"github.com/pharmabot/basket-service/internal/http"
)

// InitializeApp creates and wires all application dependencies. The
// returned cleanup flushes the audit trail and closes storage; run it
// during shutdown.
func InitializeApp(cfg config.Config) (*gin.Engine, func(ctx context.Context) error) {
	// Initialize logger first (needed by other components)
	InitializeLogger()

	// Initialize the optimization engine
	serviceComponents := InitializeServices(cfg.Optimizer)

	// Initialize database components (MongoDB repositories and services)
	dbComponents := InitializeDatabase(cfg.Database)

	// Initialize router components (handlers and configuration)
	routerComponents := InitializeRouter(serviceComponents.Engine, dbComponents, cfg)

	router := http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config)

	cleanup := func(ctx context.Context) error {
		if dbComponents == nil {
			return nil
		}
		err := dbComponents.Audit.Close(ctx)
		if closeErr := dbComponents.DB.Close(ctx); closeErr != nil && err == nil {
			err = closeErr
		}
		return err
	}
	return router, cleanup
}
