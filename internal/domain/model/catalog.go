// Package model defines the core domain entities for the basket service.
package model

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry identified by its MINSAN code.
//
// @Description Product catalog entry
// @Example {"id": 1, "minsan": "935621793", "name": "Tachipirina 500mg"}
type Product struct {
	// ID is the internal numeric product identifier
	ID int64 `json:"id" example:"1"`
	// Minsan is the Italian ministry code identifying the product
	Minsan string `json:"minsan" example:"935621793"`
	// Name is the display name of the product
	Name string `json:"name" example:"Tachipirina 500mg"`
}

// Pharmacy is a seller with its shipping policy.
//
// A nil FreeShippingThreshold means shipping is never free for this
// pharmacy, regardless of order size.
//
// @Description Pharmacy with shipping policy
// @Example {"id": 3, "name": "Farmacia Rossi", "base_shipping_cost": "4.90", "free_shipping_threshold": "49.90"}
type Pharmacy struct {
	// ID is the internal numeric pharmacy identifier
	ID int64 `json:"id" example:"3"`
	// Name is the pharmacy display name
	Name string `json:"name" example:"Farmacia Rossi"`
	// BaseShippingCost is charged when the free-shipping threshold is not met
	BaseShippingCost decimal.Decimal `json:"base_shipping_cost" swaggertype:"string" example:"4.90"`
	// FreeShippingThreshold is the items subtotal at which shipping becomes free
	FreeShippingThreshold *decimal.Decimal `json:"free_shipping_threshold,omitempty" swaggertype:"string" example:"49.90"`
}

// ShippingFor returns the shipping cost this pharmacy charges for the
// given items subtotal, applying the free-shipping threshold when set.
func (p Pharmacy) ShippingFor(itemsCost decimal.Decimal) decimal.Decimal {
	if p.FreeShippingThreshold != nil && itemsCost.GreaterThanOrEqual(*p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.BaseShippingCost
}

// Offer binds a product to a pharmacy at a unit price. The pharmacy
// record is carried along so the optimizer sees the shipping policy
// without reaching back into storage.
type Offer struct {
	// ProductID references the product this offer is for
	ProductID int64 `json:"product_id" example:"1"`
	// Pharmacy is the seller, joined with its shipping policy
	Pharmacy Pharmacy `json:"pharmacy"`
	// Price is the unit price
	Price decimal.Decimal `json:"price" swaggertype:"string" example:"7.50"`
}
