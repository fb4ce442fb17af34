// Package app provides service initialization.
package app

import (
	"github.com/pharmabot/basket-service/config"
	"github.com/pharmabot/basket-service/internal/optimizer"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Engine optimizer.Engine
}

// InitializeServices initializes the optimization engine.
func InitializeServices(cfg config.OptimizerConfig) *ServiceComponents {
	var opts []optimizer.Option

	if cfg.PruneWidth > 0 {
		opts = append(opts, optimizer.WithPruneWidth(cfg.PruneWidth))
	}

	engine := optimizer.NewEngineService(opts...)

	return &ServiceComponents{
		Engine: engine,
	}
}
