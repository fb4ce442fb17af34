// Package repository provides interfaces for repository operations.
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pharmabot/basket-service/internal/domain/model"
)

// ProductsRepositoryInterface defines the interface for catalog product operations.
type ProductsRepositoryInterface interface {
	List(ctx context.Context) ([]model.Product, error)
	GetByMinsan(ctx context.Context, minsan string) (model.Product, error)
	GetByID(ctx context.Context, id int64) (model.Product, error)
	Create(ctx context.Context, minsan, name string) (model.Product, error)
	UpdateName(ctx context.Context, minsan, name string) (model.Product, error)
	Delete(ctx context.Context, minsan string) error
}

// PharmaciesRepositoryInterface defines the interface for pharmacy operations.
type PharmaciesRepositoryInterface interface {
	List(ctx context.Context) ([]model.Pharmacy, error)
	GetByID(ctx context.Context, id int64) (model.Pharmacy, error)
	Create(ctx context.Context, name string, baseShipping decimal.Decimal, threshold *decimal.Decimal) (model.Pharmacy, error)
}

// OffersRepositoryInterface defines the interface for offer operations.
type OffersRepositoryInterface interface {
	Upsert(ctx context.Context, productID, pharmacyID int64, price decimal.Decimal) error
	ListByProducts(ctx context.Context, productIDs []int64) ([]model.Offer, error)
	ListByProduct(ctx context.Context, productID int64) ([]model.Offer, error)
	DeleteByProduct(ctx context.Context, productID int64) error
}

// BasketRepositoryInterface defines the interface for basket operations.
type BasketRepositoryInterface interface {
	List(ctx context.Context) ([]model.BasketItem, error)
	Add(ctx context.Context, productID int64, quantity int) (model.BasketItem, error)
	SetQuantity(ctx context.Context, productID int64, quantity int) (model.BasketItem, error)
	Remove(ctx context.Context, productID int64) error
	Clear(ctx context.Context) error
}

// AuditRepositoryInterface defines the interface for audit trail storage.
type AuditRepositoryInterface interface {
	Insert(ctx context.Context, doc *AuditDocument) error
	InsertBatch(ctx context.Context, docs []*AuditDocument) error
	Search(ctx context.Context, q model.AuditQuery) ([]*AuditDocument, error)
	Count(ctx context.Context, q model.AuditQuery) (int64, error)
}
