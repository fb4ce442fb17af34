// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/pharmabot/basket-service/internal/domain/model"
)

type MockProductsRepositoryInterface struct {
	mock.Mock
}

func (m *MockProductsRepositoryInterface) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductsRepositoryInterface) GetByMinsan(ctx context.Context, minsan string) (model.Product, error) {
	args := m.Called(ctx, minsan)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockProductsRepositoryInterface) GetByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockProductsRepositoryInterface) Create(ctx context.Context, minsan, name string) (model.Product, error) {
	args := m.Called(ctx, minsan, name)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockProductsRepositoryInterface) UpdateName(ctx context.Context, minsan, name string) (model.Product, error) {
	args := m.Called(ctx, minsan, name)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockProductsRepositoryInterface) Delete(ctx context.Context, minsan string) error {
	args := m.Called(ctx, minsan)
	return args.Error(0)
}

type MockPharmaciesRepositoryInterface struct {
	mock.Mock
}

func (m *MockPharmaciesRepositoryInterface) List(ctx context.Context) ([]model.Pharmacy, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Pharmacy), args.Error(1)
}

func (m *MockPharmaciesRepositoryInterface) GetByID(ctx context.Context, id int64) (model.Pharmacy, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Pharmacy), args.Error(1)
}

func (m *MockPharmaciesRepositoryInterface) Create(ctx context.Context, name string, baseShipping decimal.Decimal, threshold *decimal.Decimal) (model.Pharmacy, error) {
	args := m.Called(ctx, name, baseShipping, threshold)
	return args.Get(0).(model.Pharmacy), args.Error(1)
}

type MockOffersRepositoryInterface struct {
	mock.Mock
}

func (m *MockOffersRepositoryInterface) Upsert(ctx context.Context, productID, pharmacyID int64, price decimal.Decimal) error {
	args := m.Called(ctx, productID, pharmacyID, price)
	return args.Error(0)
}

func (m *MockOffersRepositoryInterface) ListByProducts(ctx context.Context, productIDs []int64) ([]model.Offer, error) {
	args := m.Called(ctx, productIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Offer), args.Error(1)
}

func (m *MockOffersRepositoryInterface) ListByProduct(ctx context.Context, productID int64) ([]model.Offer, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Offer), args.Error(1)
}

func (m *MockOffersRepositoryInterface) DeleteByProduct(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type MockBasketRepositoryInterface struct {
	mock.Mock
}

func (m *MockBasketRepositoryInterface) List(ctx context.Context) ([]model.BasketItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BasketItem), args.Error(1)
}

func (m *MockBasketRepositoryInterface) Add(ctx context.Context, productID int64, quantity int) (model.BasketItem, error) {
	args := m.Called(ctx, productID, quantity)
	return args.Get(0).(model.BasketItem), args.Error(1)
}

func (m *MockBasketRepositoryInterface) SetQuantity(ctx context.Context, productID int64, quantity int) (model.BasketItem, error) {
	args := m.Called(ctx, productID, quantity)
	return args.Get(0).(model.BasketItem), args.Error(1)
}

func (m *MockBasketRepositoryInterface) Remove(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockBasketRepositoryInterface) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
