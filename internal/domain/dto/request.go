// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"github.com/shopspring/decimal"
)

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrInvalidMaxOrders is returned when max_orders is negative.
	ErrInvalidMaxOrders = &ValidationError{
		Field:   "max_orders",
		Message: "must be a positive integer",
	}
	// ErrInvalidProductID is returned when product_id is missing or invalid.
	ErrInvalidProductID = &ValidationError{
		Field:   "product_id",
		Message: "must be a positive integer",
	}
	// ErrInvalidQuantity is returned when quantity is not positive.
	ErrInvalidQuantity = &ValidationError{
		Field:   "quantity",
		Message: "must be a positive integer",
	}
	// ErrInvalidMinsan is returned when the minsan code is empty.
	ErrInvalidMinsan = &ValidationError{
		Field:   "minsan",
		Message: "must not be empty",
	}
	// ErrInvalidName is returned when a display name is empty.
	ErrInvalidName = &ValidationError{
		Field:   "name",
		Message: "must not be empty",
	}
	// ErrInvalidPrice is returned when a price is not a valid non-negative decimal.
	ErrInvalidPrice = &ValidationError{
		Field:   "price",
		Message: "must be a non-negative decimal",
	}
	// ErrInvalidShippingCost is returned when a shipping cost is not a valid non-negative decimal.
	ErrInvalidShippingCost = &ValidationError{
		Field:   "base_shipping_cost",
		Message: "must be a non-negative decimal",
	}
	// ErrInvalidThreshold is returned when a free-shipping threshold is not a positive decimal.
	ErrInvalidThreshold = &ValidationError{
		Field:   "free_shipping_threshold",
		Message: "must be a positive decimal when present",
	}
	// ErrInvalidPharmacyID is returned when pharmacy_id is missing or invalid.
	ErrInvalidPharmacyID = &ValidationError{
		Field:   "pharmacy_id",
		Message: "must be a positive integer",
	}
)

// BasketItemRequest is one basket line in an optimize request override.
type BasketItemRequest struct {
	// ProductID references the catalog product.
	ProductID int64 `json:"product_id" binding:"required,gt=0" example:"1" minimum:"1"`
	// Quantity is the number of units required. Must be greater than 0.
	Quantity int `json:"quantity" binding:"required,gt=0" example:"2" minimum:"1"`
} // @name BasketItemRequest

// OptimizeBasketRequest represents the JSON request body for the optimize endpoint.
//
// Limits accepts a single value ("3") applied to every order count, or a
// comma-separated list ("5,2") indexed by order count; non-numeric
// entries suppress output for that count. Items, when present, override
// the stored basket for this call only.
//
// @Description Request to compute the cheapest basket fulfillments
// @Example {"max_orders": 2, "limits": "5,2"}
// @Example {"max_orders": 1, "limits": "3", "items": [{"product_id": 1, "quantity": 2}]}
type OptimizeBasketRequest struct {
	// MaxOrders is the maximum number of pharmacies a solution may use.
	// Defaults to 1 when omitted.
	MaxOrders int `json:"max_orders" example:"2" minimum:"1"`
	// Limits caps how many solutions are reported per order count.
	Limits string `json:"limits" example:"5,2"`
	// Items optionally replaces the stored basket for this call.
	Items []BasketItemRequest `json:"items,omitempty"`
} // @name OptimizeBasketRequest

// Validate performs custom validation on the request.
// Returns an error if validation fails, nil otherwise.
func (r *OptimizeBasketRequest) Validate() error {
	if r.MaxOrders < 0 {
		return ErrInvalidMaxOrders
	}
	for _, item := range r.Items {
		if item.ProductID <= 0 {
			return ErrInvalidProductID
		}
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

// AddBasketItemRequest represents the JSON request body for adding a basket item.
// Adding an already present product increments its quantity.
type AddBasketItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0" example:"1" minimum:"1"`
	Quantity  int   `json:"quantity" binding:"required,gt=0" example:"2" minimum:"1"`
} // @name AddBasketItemRequest

// Validate performs custom validation on the request.
func (r *AddBasketItemRequest) Validate() error {
	if r.ProductID <= 0 {
		return ErrInvalidProductID
	}
	if r.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// UpdateBasketItemRequest represents the JSON request body for setting a
// basket item's quantity.
type UpdateBasketItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0" example:"3" minimum:"1"`
} // @name UpdateBasketItemRequest

// Validate performs custom validation on the request.
func (r *UpdateBasketItemRequest) Validate() error {
	if r.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// CreateProductRequest represents the JSON request body for creating a product.
type CreateProductRequest struct {
	// Minsan is the Italian ministry code identifying the product. Unique.
	Minsan string `json:"minsan" binding:"required" example:"935621793"`
	// Name is the product display name.
	Name string `json:"name" binding:"required" example:"Tachipirina 500mg"`
} // @name CreateProductRequest

// Validate performs custom validation on the request.
func (r *CreateProductRequest) Validate() error {
	if r.Minsan == "" {
		return ErrInvalidMinsan
	}
	if r.Name == "" {
		return ErrInvalidName
	}
	return nil
}

// UpdateProductRequest represents the JSON request body for renaming a product.
type UpdateProductRequest struct {
	Name string `json:"name" binding:"required" example:"Tachipirina 1000mg"`
} // @name UpdateProductRequest

// Validate performs custom validation on the request.
func (r *UpdateProductRequest) Validate() error {
	if r.Name == "" {
		return ErrInvalidName
	}
	return nil
}

// CreatePharmacyRequest represents the JSON request body for registering a pharmacy.
//
// Monetary values travel as decimal strings to avoid binary floating
// point on the wire.
type CreatePharmacyRequest struct {
	Name string `json:"name" binding:"required" example:"Farmacia Rossi"`
	// BaseShippingCost is charged when the free-shipping threshold is not met.
	BaseShippingCost string `json:"base_shipping_cost" binding:"required" example:"4.90"`
	// FreeShippingThreshold is optional; absent means shipping is never free.
	FreeShippingThreshold *string `json:"free_shipping_threshold,omitempty" example:"49.90"`
} // @name CreatePharmacyRequest

// Validate performs custom validation on the request.
func (r *CreatePharmacyRequest) Validate() error {
	if r.Name == "" {
		return ErrInvalidName
	}
	cost, err := decimal.NewFromString(r.BaseShippingCost)
	if err != nil || cost.IsNegative() {
		return ErrInvalidShippingCost
	}
	if r.FreeShippingThreshold != nil {
		threshold, err := decimal.NewFromString(*r.FreeShippingThreshold)
		if err != nil || !threshold.IsPositive() {
			return ErrInvalidThreshold
		}
	}
	return nil
}

// ShippingPolicy returns the parsed shipping cost and optional threshold.
// Call Validate first; parse errors surface there.
func (r *CreatePharmacyRequest) ShippingPolicy() (decimal.Decimal, *decimal.Decimal) {
	cost, _ := decimal.NewFromString(r.BaseShippingCost)
	if r.FreeShippingThreshold == nil {
		return cost, nil
	}
	threshold, _ := decimal.NewFromString(*r.FreeShippingThreshold)
	return cost, &threshold
}

// UpsertOfferRequest represents the JSON request body for creating or
// replacing the offer for one (product, pharmacy) pair.
type UpsertOfferRequest struct {
	ProductID  int64  `json:"product_id" binding:"required,gt=0" example:"1" minimum:"1"`
	PharmacyID int64  `json:"pharmacy_id" binding:"required,gt=0" example:"3" minimum:"1"`
	Price      string `json:"price" binding:"required" example:"7.50"`
} // @name UpsertOfferRequest

// Validate performs custom validation on the request.
func (r *UpsertOfferRequest) Validate() error {
	if r.ProductID <= 0 {
		return ErrInvalidProductID
	}
	if r.PharmacyID <= 0 {
		return ErrInvalidPharmacyID
	}
	price, err := decimal.NewFromString(r.Price)
	if err != nil || price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

// PriceDecimal returns the parsed offer price. Call Validate first.
func (r *UpsertOfferRequest) PriceDecimal() decimal.Decimal {
	price, _ := decimal.NewFromString(r.Price)
	return price
}
