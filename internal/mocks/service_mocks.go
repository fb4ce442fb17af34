// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/pharmabot/basket-service/internal/domain/dto"
	"github.com/pharmabot/basket-service/internal/domain/model"
)

type MockAuditService struct {
	mock.Mock
}

// NewMockAuditService creates a new MockAuditService bound to the
// test's lifecycle. Expectations are asserted on cleanup.
func NewMockAuditService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAuditService {
	m := &MockAuditService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAuditService) Record(rec *model.AuditRecord) {
	m.Called(rec)
}

func (m *MockAuditService) Store(ctx context.Context, rec *model.AuditRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockAuditService) Search(ctx context.Context, q model.AuditQuery) ([]model.AuditRecord, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditRecord), args.Error(1)
}

func (m *MockAuditService) Count(ctx context.Context, q model.AuditQuery) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuditService) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockOptimizeService struct {
	mock.Mock
}

func (m *MockOptimizeService) Optimize(ctx context.Context, req dto.OptimizeBasketRequest) ([]model.Solution, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Solution), args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockCatalogService) CreateProduct(ctx context.Context, minsan, name string) (model.Product, error) {
	args := m.Called(ctx, minsan, name)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockCatalogService) UpdateProduct(ctx context.Context, minsan, name string) (model.Product, error) {
	args := m.Called(ctx, minsan, name)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockCatalogService) DeleteProduct(ctx context.Context, minsan string) error {
	args := m.Called(ctx, minsan)
	return args.Error(0)
}

func (m *MockCatalogService) ListPharmacies(ctx context.Context) ([]model.Pharmacy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Pharmacy), args.Error(1)
}

func (m *MockCatalogService) CreatePharmacy(ctx context.Context, name string, baseShipping decimal.Decimal, threshold *decimal.Decimal) (model.Pharmacy, error) {
	args := m.Called(ctx, name, baseShipping, threshold)
	return args.Get(0).(model.Pharmacy), args.Error(1)
}

func (m *MockCatalogService) ListOffers(ctx context.Context, productID int64) ([]model.Offer, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Offer), args.Error(1)
}

func (m *MockCatalogService) UpsertOffer(ctx context.Context, productID, pharmacyID int64, price decimal.Decimal) error {
	args := m.Called(ctx, productID, pharmacyID, price)
	return args.Error(0)
}

type MockBasketService struct {
	mock.Mock
}

func (m *MockBasketService) Get(ctx context.Context) ([]model.BasketItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BasketItem), args.Error(1)
}

func (m *MockBasketService) AddItem(ctx context.Context, productID int64, quantity int) (model.BasketItem, error) {
	args := m.Called(ctx, productID, quantity)
	return args.Get(0).(model.BasketItem), args.Error(1)
}

func (m *MockBasketService) UpdateItem(ctx context.Context, productID int64, quantity int) (model.BasketItem, error) {
	args := m.Called(ctx, productID, quantity)
	return args.Get(0).(model.BasketItem), args.Error(1)
}

func (m *MockBasketService) RemoveItem(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockBasketService) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
