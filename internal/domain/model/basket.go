package model

// BasketItem is a single basket line: a product and the quantity needed.
//
// @Description Basket line with product and quantity
// @Example {"product_id": 1, "quantity": 2}
type BasketItem struct {
	// ProductID references the catalog product
	ProductID int64 `json:"product_id" example:"1"`
	// Quantity is the number of units required (always > 0)
	Quantity int `json:"quantity" example:"2"`
}

// Basket maps product IDs to required quantities. It is an immutable
// snapshot for the duration of one optimization run.
type Basket map[int64]int

// BasketFromItems builds a Basket snapshot from basket lines.
// Repeated product IDs accumulate their quantities.
func BasketFromItems(items []BasketItem) Basket {
	basket := make(Basket, len(items))
	for _, item := range items {
		if item.Quantity > 0 {
			basket[item.ProductID] += item.Quantity
		}
	}
	return basket
}

// ProductIDs returns the product identifiers in the basket, in no
// particular order.
func (b Basket) ProductIDs() []int64 {
	ids := make([]int64, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	return ids
}
