package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/pharmabot/basket-service/internal/domain/model"
	"github.com/pharmabot/basket-service/internal/repository"
)

// CatalogService manages products, pharmacies, and offers.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	CreateProduct(ctx context.Context, minsan, name string) (model.Product, error)
	UpdateProduct(ctx context.Context, minsan, name string) (model.Product, error)
	DeleteProduct(ctx context.Context, minsan string) error

	ListPharmacies(ctx context.Context) ([]model.Pharmacy, error)
	CreatePharmacy(ctx context.Context, name string, baseShipping decimal.Decimal, threshold *decimal.Decimal) (model.Pharmacy, error)

	ListOffers(ctx context.Context, productID int64) ([]model.Offer, error)
	UpsertOffer(ctx context.Context, productID, pharmacyID int64, price decimal.Decimal) error
}

// offersInvalidator lets the catalog service drop stale offer snapshots
// after a write without depending on the optimize service directly.
type offersInvalidator interface {
	InvalidateOffers()
}

// CatalogServiceImpl implements CatalogService over the MongoDB repositories.
type CatalogServiceImpl struct {
	products    repository.ProductsRepositoryInterface
	pharmacies  repository.PharmaciesRepositoryInterface
	offers      repository.OffersRepositoryInterface
	basket      repository.BasketRepositoryInterface
	invalidator offersInvalidator
}

// NewCatalogService creates a new catalog service. The invalidator may
// be nil when no offer snapshot cache is configured.
func NewCatalogService(
	products repository.ProductsRepositoryInterface,
	pharmacies repository.PharmaciesRepositoryInterface,
	offers repository.OffersRepositoryInterface,
	basket repository.BasketRepositoryInterface,
	invalidator offersInvalidator,
) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		products:    products,
		pharmacies:  pharmacies,
		offers:      offers,
		basket:      basket,
		invalidator: invalidator,
	}
}

// ListProducts returns the full catalog.
func (s *CatalogServiceImpl) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.products.List(ctx)
}

// CreateProduct adds a product to the catalog. A duplicate minsan code
// yields repository.ErrDuplicateMinsan.
func (s *CatalogServiceImpl) CreateProduct(ctx context.Context, minsan, name string) (model.Product, error) {
	return s.products.Create(ctx, minsan, name)
}

// UpdateProduct renames the product with the given minsan code.
func (s *CatalogServiceImpl) UpdateProduct(ctx context.Context, minsan, name string) (model.Product, error) {
	return s.products.UpdateName(ctx, minsan, name)
}

// DeleteProduct removes a product along with its offers and any basket
// line referencing it.
func (s *CatalogServiceImpl) DeleteProduct(ctx context.Context, minsan string) error {
	product, err := s.products.GetByMinsan(ctx, minsan)
	if err != nil {
		return err
	}
	if err := s.products.Delete(ctx, minsan); err != nil {
		return err
	}
	if err := s.offers.DeleteByProduct(ctx, product.ID); err != nil {
		return err
	}
	if err := s.basket.Remove(ctx, product.ID); err != nil && !errors.Is(err, repository.ErrItemNotPresent) {
		return err
	}
	s.invalidateOffers()
	return nil
}

// ListPharmacies returns all registered pharmacies.
func (s *CatalogServiceImpl) ListPharmacies(ctx context.Context) ([]model.Pharmacy, error) {
	return s.pharmacies.List(ctx)
}

// CreatePharmacy registers a pharmacy with its shipping policy.
func (s *CatalogServiceImpl) CreatePharmacy(ctx context.Context, name string, baseShipping decimal.Decimal, threshold *decimal.Decimal) (model.Pharmacy, error) {
	return s.pharmacies.Create(ctx, name, baseShipping, threshold)
}

// ListOffers returns the offers for one product joined with pharmacy
// shipping policy.
func (s *CatalogServiceImpl) ListOffers(ctx context.Context, productID int64) ([]model.Offer, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.offers.ListByProduct(ctx, productID)
}

// UpsertOffer creates or replaces the offer for one (product, pharmacy)
// pair, verifying both sides exist first.
func (s *CatalogServiceImpl) UpsertOffer(ctx context.Context, productID, pharmacyID int64, price decimal.Decimal) error {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return err
	}
	if _, err := s.pharmacies.GetByID(ctx, pharmacyID); err != nil {
		return err
	}
	if err := s.offers.Upsert(ctx, productID, pharmacyID, price); err != nil {
		return err
	}
	s.invalidateOffers()
	return nil
}

func (s *CatalogServiceImpl) invalidateOffers() {
	if s.invalidator != nil {
		s.invalidator.InvalidateOffers()
	}
}
