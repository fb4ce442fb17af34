// Package service contains the business services of the basket service.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/pharmabot/basket-service/internal/domain/dto"
	"github.com/pharmabot/basket-service/internal/domain/model"
	"github.com/pharmabot/basket-service/internal/metrics"
	"github.com/pharmabot/basket-service/internal/optimizer"
	"github.com/pharmabot/basket-service/internal/repository"
)

// ErrBasketUnavailable is returned when the stored basket is needed but
// basket storage is not configured (degraded mode without MongoDB).
var ErrBasketUnavailable = errors.New("basket storage is unavailable")

// ErrOffersUnavailable is returned when offer storage is not configured.
var ErrOffersUnavailable = errors.New("offer storage is unavailable")

// defaultLimitSpec caps reported solutions per order count when the
// request does not specify limits.
const defaultLimitSpec = "5"

// OptimizeService defines the basket optimization operation exposed over HTTP.
type OptimizeService interface {
	// Optimize loads the basket (stored, or the request's inline
	// override), joins offers with pharmacy shipping policy, and runs
	// the optimization engine.
	Optimize(ctx context.Context, req dto.OptimizeBasketRequest) ([]model.Solution, error)
}

// OptimizeOption configures an OptimizeServiceImpl.
type OptimizeOption func(*OptimizeServiceImpl)

// OptimizeServiceImpl implements OptimizeService.
type OptimizeServiceImpl struct {
	engine     optimizer.Engine
	basketRepo repository.BasketRepositoryInterface
	offersRepo repository.OffersRepositoryInterface
	cache      *offersCache
}

// NewOptimizeService creates a new optimize service. Either repository
// may be nil; the corresponding operations then fail with an
// unavailability error instead of panicking.
func NewOptimizeService(engine optimizer.Engine, basketRepo repository.BasketRepositoryInterface, offersRepo repository.OffersRepositoryInterface, opts ...OptimizeOption) *OptimizeServiceImpl {
	s := &OptimizeServiceImpl{
		engine:     engine,
		basketRepo: basketRepo,
		offersRepo: offersRepo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithOffersSnapshotCache enables caching of joined offer reads for the
// given TTL. Solutions themselves are always computed fresh.
func WithOffersSnapshotCache(ttl time.Duration) OptimizeOption {
	return func(s *OptimizeServiceImpl) {
		if ttl > 0 {
			s.cache = newOffersCache(ttl)
		}
	}
}

// Optimize runs one optimization call.
func (s *OptimizeServiceImpl) Optimize(ctx context.Context, req dto.OptimizeBasketRequest) ([]model.Solution, error) {
	start := time.Now()

	basket, err := s.loadBasket(ctx, req)
	if err != nil {
		metrics.RecordOptimization(time.Since(start), "error", 0, 0, 0)
		return nil, err
	}
	if len(basket) == 0 {
		metrics.RecordOptimization(time.Since(start), "empty_basket", 0, 0, 0)
		return nil, nil
	}

	offers, err := s.loadOffers(ctx, basket.ProductIDs())
	if err != nil {
		metrics.RecordOptimization(time.Since(start), "error", len(basket), 0, 0)
		return nil, err
	}

	maxOrders := req.MaxOrders
	if maxOrders < 1 {
		maxOrders = 1
	}
	limitSpec := req.Limits
	if limitSpec == "" {
		limitSpec = defaultLimitSpec
	}
	limits := optimizer.ParseLimits(limitSpec, maxOrders)

	solutions := s.engine.Optimize(basket, offers, maxOrders, limits)

	metrics.RecordOptimization(time.Since(start), "success", len(basket), len(offers), len(solutions))
	return solutions, nil
}

// loadBasket resolves the basket for one call: the inline override when
// present, the stored basket otherwise.
func (s *OptimizeServiceImpl) loadBasket(ctx context.Context, req dto.OptimizeBasketRequest) (model.Basket, error) {
	if len(req.Items) > 0 {
		items := make([]model.BasketItem, len(req.Items))
		for i, item := range req.Items {
			items[i] = model.BasketItem{ProductID: item.ProductID, Quantity: item.Quantity}
		}
		return model.BasketFromItems(items), nil
	}

	if s.basketRepo == nil {
		return nil, ErrBasketUnavailable
	}
	items, err := s.basketRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return model.BasketFromItems(items), nil
}

// loadOffers fetches the joined offers for the basket's products,
// through the snapshot cache when enabled.
func (s *OptimizeServiceImpl) loadOffers(ctx context.Context, productIDs []int64) ([]model.Offer, error) {
	if s.cache != nil {
		if offers, ok := s.cache.Get(productIDs); ok {
			return offers, nil
		}
	}

	if s.offersRepo == nil {
		return nil, ErrOffersUnavailable
	}
	offers, err := s.offersRepo.ListByProducts(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(productIDs, offers)
	}
	return offers, nil
}

// InvalidateOffers drops cached offer snapshots. Catalog mutations call
// this so new prices are picked up immediately.
func (s *OptimizeServiceImpl) InvalidateOffers() {
	if s.cache != nil {
		s.cache.Invalidate()
	}
}
