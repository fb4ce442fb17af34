// Package app provides database initialization and setup.
package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/pharmabot/basket-service/config"
	"github.com/pharmabot/basket-service/internal/circuitbreaker"
	"github.com/pharmabot/basket-service/internal/repository"
	"github.com/pharmabot/basket-service/internal/service"
)

// DatabaseComponents holds the storage-backed components.
type DatabaseComponents struct {
	DB             *repository.MongoDB
	ProductsRepo   repository.ProductsRepositoryInterface
	PharmaciesRepo repository.PharmaciesRepositoryInterface
	OffersRepo     repository.OffersRepositoryInterface
	BasketRepo     repository.BasketRepositoryInterface
	Audit          service.AuditService
	OffersBreaker  *circuitbreaker.Breaker
	AuditBreaker   *circuitbreaker.Breaker
}

// InitializeDatabase connects to MongoDB and builds the repositories and
// the audit trail. Returns nil when the database is disabled or down;
// the service then runs in inline-basket-only mode.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Msg("Connected to MongoDB")

	ttlDays := int(cfg.AuditTTL.Hours() / 24)
	if err := db.SetAuditTTL(context.Background(), ttlDays); err != nil {
		log.Warn().Err(err).Msg("Failed to set audit TTL index (may already exist)")
	}

	breakerOpts := []circuitbreaker.Option{
		circuitbreaker.WithMaxFailures(cfg.CircuitBreakerFailureThreshold),
		circuitbreaker.WithTrialCalls(cfg.CircuitBreakerSuccessThreshold),
		circuitbreaker.WithCooldown(cfg.CircuitBreakerTimeout),
	}
	offersBreaker := circuitbreaker.New("mongodb_offers", breakerOpts...)
	auditBreaker := circuitbreaker.New("mongodb_audit", breakerOpts...)

	guardedAudit := repository.GuardAudit(repository.NewAuditRepository(db), auditBreaker)
	guardedOffers := repository.GuardOffers(repository.NewOffersRepository(db), offersBreaker)

	return &DatabaseComponents{
		DB:             db,
		ProductsRepo:   repository.NewProductsRepository(db),
		PharmaciesRepo: repository.NewPharmaciesRepository(db),
		OffersRepo:     guardedOffers,
		BasketRepo:     repository.NewBasketRepository(db),
		Audit:          service.NewAuditService(guardedAudit),
		OffersBreaker:  offersBreaker,
		AuditBreaker:   auditBreaker,
	}
}
