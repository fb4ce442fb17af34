package service

import (
	"context"

	"github.com/pharmabot/basket-service/internal/domain/model"
	"github.com/pharmabot/basket-service/internal/repository"
)

// BasketService manages the persistent shopping basket.
type BasketService interface {
	// Get returns all basket lines sorted by product ID.
	Get(ctx context.Context) ([]model.BasketItem, error)
	// AddItem inserts a line or increments an existing one. The product
	// must exist in the catalog.
	AddItem(ctx context.Context, productID int64, quantity int) (model.BasketItem, error)
	// UpdateItem replaces the quantity of an existing line.
	UpdateItem(ctx context.Context, productID int64, quantity int) (model.BasketItem, error)
	// RemoveItem deletes a line.
	RemoveItem(ctx context.Context, productID int64) error
	// Clear empties the basket.
	Clear(ctx context.Context) error
}

// BasketServiceImpl implements BasketService.
type BasketServiceImpl struct {
	basket   repository.BasketRepositoryInterface
	products repository.ProductsRepositoryInterface
}

// NewBasketService creates a new basket service.
func NewBasketService(basket repository.BasketRepositoryInterface, products repository.ProductsRepositoryInterface) *BasketServiceImpl {
	return &BasketServiceImpl{basket: basket, products: products}
}

// Get returns all basket lines.
func (s *BasketServiceImpl) Get(ctx context.Context) ([]model.BasketItem, error) {
	return s.basket.List(ctx)
}

// AddItem verifies the product exists, then inserts or increments its line.
func (s *BasketServiceImpl) AddItem(ctx context.Context, productID int64, quantity int) (model.BasketItem, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return model.BasketItem{}, err
	}
	return s.basket.Add(ctx, productID, quantity)
}

// UpdateItem replaces the quantity of an existing line. A product not in
// the basket yields repository.ErrItemNotPresent.
func (s *BasketServiceImpl) UpdateItem(ctx context.Context, productID int64, quantity int) (model.BasketItem, error) {
	return s.basket.SetQuantity(ctx, productID, quantity)
}

// RemoveItem deletes a line. A product not in the basket yields
// repository.ErrItemNotPresent.
func (s *BasketServiceImpl) RemoveItem(ctx context.Context, productID int64) error {
	return s.basket.Remove(ctx, productID)
}

// Clear empties the basket.
func (s *BasketServiceImpl) Clear(ctx context.Context) error {
	return s.basket.Clear(ctx)
}
