//go:build integration

package app

import (
	"context"
	"testing"
	"time"

	"github.com/pharmabot/basket-service/config"
	"github.com/stretchr/testify/assert"
)

func TestInitializeApp_Integration(t *testing.T) {
	t.Parallel()

	// Use shared container with unique database names for each subtest
	uri := getSharedContainerURI()

	t.Run("initialize app with MongoDB enabled", func(t *testing.T) {
		t.Parallel()
		dbName := sanitizeDBNameForApp(t.Name())
		cfg := config.Config{
			Server: config.ServerConfig{
				Port:       "8080",
				RateLimit:  100,
				RateWindow: time.Minute,
			},
			Optimizer: config.OptimizerConfig{
				PruneWidth:    5,
				OfferCacheTTL: 30 * time.Second,
			},
			Database: config.DatabaseConfig{
				URI:                            uri,
				DatabaseName:                   dbName,
				AuditTTL:                       30 * 24 * time.Hour,
				Enabled:                        true,
				CircuitBreakerFailureThreshold: 5,
				CircuitBreakerSuccessThreshold: 2,
				CircuitBreakerTimeout:          30 * time.Second,
			},
		}

		router, cleanup := InitializeApp(cfg)
		defer func() { _ = cleanup(context.Background()) }()
		assert.NotNil(t, router)
	})

	t.Run("initialize app with MongoDB disabled", func(t *testing.T) {
		t.Parallel()
		cfg := config.Config{
			Server: config.ServerConfig{
				Port: "8080",
			},
			Database: config.DatabaseConfig{
				Enabled: false,
			},
		}

		router, cleanup := InitializeApp(cfg)
		defer func() { _ = cleanup(context.Background()) }()
		assert.NotNil(t, router)
	})

	t.Run("initialize app with custom prune width", func(t *testing.T) {
		t.Parallel()
		dbName := sanitizeDBNameForApp(t.Name())
		cfg := config.Config{
			Server: config.ServerConfig{
				Port: "8080",
			},
			Optimizer: config.OptimizerConfig{
				PruneWidth: 10,
			},
			Database: config.DatabaseConfig{
				URI:                            uri,
				DatabaseName:                   dbName,
				AuditTTL:                       30 * 24 * time.Hour,
				Enabled:                        true,
				CircuitBreakerFailureThreshold: 5,
				CircuitBreakerSuccessThreshold: 2,
				CircuitBreakerTimeout:          30 * time.Second,
			},
		}

		router, cleanup := InitializeApp(cfg)
		defer func() { _ = cleanup(context.Background()) }()
		assert.NotNil(t, router)
	})
}
