// Package optimizer implements the multi-pharmacy basket price optimizer:
// inventory aggregation, combinatorial search over pharmacy subsets,
// per-subset item assignment under free-shipping thresholds, and result
// ranking.
package optimizer

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pharmabot/basket-service/internal/domain/model"
)

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

// Inventory is the per-pharmacy view of which basket products the
// pharmacy can supply and at what price. It is derived per optimization
// run and never outlives it.
type Inventory struct {
	Pharmacy model.Pharmacy
	// Matches maps product ID to the priced basket line for this pharmacy.
	Matches map[int64]model.Match
}

// Supplies reports whether this inventory can supply the given product.
func (inv *Inventory) Supplies(productID int64) bool {
	_, ok := inv.Matches[productID]
	return ok
}

// BuildInventories groups offers by pharmacy and builds one Inventory per
// pharmacy that supplies at least one basket product. Offers for products
// not in the basket are ignored; for duplicate (product, pharmacy) offers
// the first one seen wins. The result is ordered by pharmacy ID so runs
// over identical input are deterministic.
func BuildInventories(basket model.Basket, offers []model.Offer) []*Inventory {
	byPharmacy := make(map[int64]*Inventory)
	for _, offer := range offers {
		quantity, inBasket := basket[offer.ProductID]
		if !inBasket {
			continue
		}
		inv, ok := byPharmacy[offer.Pharmacy.ID]
		if !ok {
			inv = &Inventory{
				Pharmacy: offer.Pharmacy,
				Matches:  make(map[int64]model.Match),
			}
			byPharmacy[offer.Pharmacy.ID] = inv
		}
		if _, seen := inv.Matches[offer.ProductID]; seen {
			continue
		}
		inv.Matches[offer.ProductID] = model.Match{
			ProductID:      offer.ProductID,
			Price:          offer.Price,
			QuantityNeeded: quantity,
			Subtotal:       offer.Price.Mul(decimalFromInt(quantity)),
		}
	}

	inventories := make([]*Inventory, 0, len(byPharmacy))
	for _, inv := range byPharmacy {
		inventories = append(inventories, inv)
	}
	sort.Slice(inventories, func(i, j int) bool {
		return inventories[i].Pharmacy.ID < inventories[j].Pharmacy.ID
	})
	return inventories
}

// buildAvailabilityIndex maps each basket product to the inventories that
// supply it, preserving inventory order. Used only to drive candidate
// pruning in the combination search.
func buildAvailabilityIndex(basket model.Basket, inventories []*Inventory) map[int64][]*Inventory {
	index := make(map[int64][]*Inventory, len(basket))
	for productID := range basket {
		for _, inv := range inventories {
			if inv.Supplies(productID) {
				index[productID] = append(index[productID], inv)
			}
		}
	}
	return index
}

// coversBasket reports whether the union of products supplied by the
// subset equals the full basket product set.
func coversBasket(basket model.Basket, subset []*Inventory) bool {
	for productID := range basket {
		supplied := false
		for _, inv := range subset {
			if inv.Supplies(productID) {
				supplied = true
				break
			}
		}
		if !supplied {
			return false
		}
	}
	return true
}
