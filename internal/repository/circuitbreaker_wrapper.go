package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/pharmabot/basket-service/internal/circuitbreaker"
	"github.com/pharmabot/basket-service/internal/domain/model"
)

// GuardedOffersRepository routes every offers call through a circuit
// breaker. The offers read path feeds every optimization, so a broken
// database should fail fast instead of piling up slow queries.
type GuardedOffersRepository struct {
	repo    *OffersRepository
	breaker *circuitbreaker.Breaker
}

// GuardOffers wraps an offers repository with the given breaker.
func GuardOffers(repo *OffersRepository, b *circuitbreaker.Breaker) *GuardedOffersRepository {
	return &GuardedOffersRepository{repo: repo, breaker: b}
}

// Upsert creates or replaces one offer.
func (g *GuardedOffersRepository) Upsert(ctx context.Context, productID, pharmacyID int64, price decimal.Decimal) error {
	return g.breaker.Do(func() error {
		return g.repo.Upsert(ctx, productID, pharmacyID, price)
	})
}

// ListByProducts returns joined offers for the given products.
func (g *GuardedOffersRepository) ListByProducts(ctx context.Context, productIDs []int64) ([]model.Offer, error) {
	var offers []model.Offer
	err := g.breaker.Do(func() error {
		var opErr error
		offers, opErr = g.repo.ListByProducts(ctx, productIDs)
		return opErr
	})
	return offers, err
}

// ListByProduct returns one product's joined offers.
func (g *GuardedOffersRepository) ListByProduct(ctx context.Context, productID int64) ([]model.Offer, error) {
	var offers []model.Offer
	err := g.breaker.Do(func() error {
		var opErr error
		offers, opErr = g.repo.ListByProduct(ctx, productID)
		return opErr
	})
	return offers, err
}

// DeleteByProduct removes a product's offers.
func (g *GuardedOffersRepository) DeleteByProduct(ctx context.Context, productID int64) error {
	return g.breaker.Do(func() error {
		return g.repo.DeleteByProduct(ctx, productID)
	})
}

// Breaker exposes the underlying breaker for health reporting.
func (g *GuardedOffersRepository) Breaker() *circuitbreaker.Breaker {
	return g.breaker
}

// GuardedAuditRepository routes audit writes through a circuit breaker.
// The audit trail is best effort: writes rejected by an open breaker are
// dropped, reads still surface the error.
type GuardedAuditRepository struct {
	repo    *AuditRepository
	breaker *circuitbreaker.Breaker
}

// GuardAudit wraps an audit repository with the given breaker.
func GuardAudit(repo *AuditRepository, b *circuitbreaker.Breaker) *GuardedAuditRepository {
	return &GuardedAuditRepository{repo: repo, breaker: b}
}

// Insert stores one record, dropping it while the breaker is open.
func (g *GuardedAuditRepository) Insert(ctx context.Context, doc *AuditDocument) error {
	return dropWhenOpen(g.breaker.Do(func() error {
		return g.repo.Insert(ctx, doc)
	}))
}

// InsertBatch stores a batch, dropping it while the breaker is open.
func (g *GuardedAuditRepository) InsertBatch(ctx context.Context, docs []*AuditDocument) error {
	return dropWhenOpen(g.breaker.Do(func() error {
		return g.repo.InsertBatch(ctx, docs)
	}))
}

// Search returns matching records, newest first.
func (g *GuardedAuditRepository) Search(ctx context.Context, q model.AuditQuery) ([]*AuditDocument, error) {
	var docs []*AuditDocument
	err := g.breaker.Do(func() error {
		var opErr error
		docs, opErr = g.repo.Search(ctx, q)
		return opErr
	})
	return docs, err
}

// Count returns how many records match the query.
func (g *GuardedAuditRepository) Count(ctx context.Context, q model.AuditQuery) (int64, error) {
	var n int64
	err := g.breaker.Do(func() error {
		var opErr error
		n, opErr = g.repo.Count(ctx, q)
		return opErr
	})
	return n, err
}

// Breaker exposes the underlying breaker for health reporting.
func (g *GuardedAuditRepository) Breaker() *circuitbreaker.Breaker {
	return g.breaker
}

func dropWhenOpen(err error) error {
	if errors.Is(err, circuitbreaker.ErrOpen) {
		return nil
	}
	return err
}
