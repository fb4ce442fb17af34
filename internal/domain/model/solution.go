package model

import (
	"github.com/shopspring/decimal"
)

// Match is one basket product as supplied by one pharmacy: unit price,
// quantity needed, and the resulting line subtotal.
//
// @Description Basket product priced at a specific pharmacy
// @Example {"product_id": 1, "price": "7.50", "quantity_needed": 2, "subtotal": "15.00"}
type Match struct {
	// ProductID references the basket product
	ProductID int64 `json:"product_id" example:"1"`
	// Price is the unit price at the supplying pharmacy
	Price decimal.Decimal `json:"price" swaggertype:"string" example:"7.50"`
	// QuantityNeeded is the basket quantity for this product
	QuantityNeeded int `json:"quantity_needed" example:"2"`
	// Subtotal is Price multiplied by QuantityNeeded
	Subtotal decimal.Decimal `json:"subtotal" swaggertype:"string" example:"15.00"`
}

// Order is the portion of a solution fulfilled by one pharmacy.
//
// ShippingCost is zero when ItemsCost meets the pharmacy's free-shipping
// threshold, otherwise it equals the pharmacy's base shipping cost.
// TotalCost is always ItemsCost plus ShippingCost.
//
// @Description Single-pharmacy fulfillment within a solution
type Order struct {
	// Pharmacy is the supplying pharmacy with its shipping policy
	Pharmacy Pharmacy `json:"pharmacy"`
	// Items are the basket products assigned to this pharmacy
	Items []Match `json:"items"`
	// ItemsCost is the sum of item subtotals
	ItemsCost decimal.Decimal `json:"items_cost" swaggertype:"string" example:"15.00"`
	// ShippingCost is the shipping charged for this order
	ShippingCost decimal.Decimal `json:"shipping_cost" swaggertype:"string" example:"4.90"`
	// TotalCost is ItemsCost plus ShippingCost
	TotalCost decimal.Decimal `json:"total_cost" swaggertype:"string" example:"19.90"`
}

// NewOrder builds an Order for a pharmacy and its assigned items,
// computing items cost, threshold-aware shipping, and total.
func NewOrder(pharmacy Pharmacy, items []Match) Order {
	itemsCost := decimal.Zero
	for _, item := range items {
		itemsCost = itemsCost.Add(item.Subtotal)
	}
	shipping := pharmacy.ShippingFor(itemsCost)
	return Order{
		Pharmacy:     pharmacy,
		Items:        items,
		ItemsCost:    itemsCost,
		ShippingCost: shipping,
		TotalCost:    itemsCost.Add(shipping),
	}
}

// Solution is a complete basket-covering assignment of products to one
// or more pharmacies. Each basket product appears in exactly one order.
//
// @Description Complete basket fulfillment across one or more pharmacies
type Solution struct {
	// Orders are the per-pharmacy fulfillments, one per pharmacy used
	Orders []Order `json:"orders"`
	// OrderCount is the number of orders (pharmacies) in the solution
	OrderCount int `json:"order_count" example:"2"`
	// TotalCost is the sum of order totals
	TotalCost decimal.Decimal `json:"total_cost" swaggertype:"string" example:"24.80"`
}

// NewSolution assembles a Solution from its orders.
func NewSolution(orders []Order) Solution {
	total := decimal.Zero
	for _, order := range orders {
		total = total.Add(order.TotalCost)
	}
	return Solution{
		Orders:     orders,
		OrderCount: len(orders),
		TotalCost:  total,
	}
}
