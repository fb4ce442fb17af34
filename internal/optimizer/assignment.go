package optimizer

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pharmabot/basket-service/internal/domain/model"
)

// assignmentSolver finds the cost-optimal assignment of every basket
// product to exactly one pharmacy in a fixed candidate subset.
//
// Shipping thresholds make the cost function non-separable: adding an
// item to a pharmacy can zero out that pharmacy's shipping, so the
// cheapest per-item choice is not necessarily globally optimal. The
// solver therefore backtracks exhaustively over all valid assignments.
// Products are visited in ascending order of how many subset members
// supply them, so the most constrained products fail fast.
type assignmentSolver struct {
	subset   []*Inventory
	products []int64
	// suppliers[i] holds the subset indexes that supply products[i].
	suppliers [][]int
	// assigned[i] is the chosen subset index for products[i].
	assigned []int

	bestCost  decimal.Decimal
	bestFound bool
	best      []int
}

// solveAssignment returns the minimum-cost complete assignment for the
// subset as a Solution, or false when no assignment exists. Coverage of
// the basket by the subset guarantees at least one assignment, so a
// false return after a positive coverage check is an internal fault the
// caller must handle.
func solveAssignment(basket model.Basket, subset []*Inventory) (model.Solution, bool) {
	products := make([]int64, 0, len(basket))
	for productID := range basket {
		products = append(products, productID)
	}

	suppliersFor := func(productID int64) []int {
		var idxs []int
		for i, inv := range subset {
			if inv.Supplies(productID) {
				idxs = append(idxs, i)
			}
		}
		return idxs
	}

	supplierCount := make(map[int64]int, len(products))
	for _, productID := range products {
		supplierCount[productID] = len(suppliersFor(productID))
	}
	sort.Slice(products, func(i, j int) bool {
		if supplierCount[products[i]] != supplierCount[products[j]] {
			return supplierCount[products[i]] < supplierCount[products[j]]
		}
		return products[i] < products[j]
	})

	s := &assignmentSolver{
		subset:    subset,
		products:  products,
		suppliers: make([][]int, len(products)),
		assigned:  make([]int, len(products)),
	}
	for i, productID := range products {
		s.suppliers[i] = suppliersFor(productID)
	}

	s.search(0)
	if !s.bestFound {
		return model.Solution{}, false
	}
	return s.buildSolution(), true
}

// search tries every supplying pharmacy for the product at position idx
// and recurses. A complete assignment is costed in full; the first
// strictly cheaper assignment replaces the best, so ties keep the
// earliest assignment in search order.
func (s *assignmentSolver) search(idx int) {
	if idx == len(s.products) {
		cost := s.totalCost()
		if !s.bestFound || cost.LessThan(s.bestCost) {
			s.bestCost = cost
			s.bestFound = true
			s.best = append(s.best[:0], s.assigned...)
		}
		return
	}
	for _, supplier := range s.suppliers[idx] {
		s.assigned[idx] = supplier
		s.search(idx + 1)
	}
}

// totalCost prices the current complete assignment: per pharmacy, the
// sum of assigned subtotals plus threshold-aware shipping, summed over
// pharmacies with at least one item.
func (s *assignmentSolver) totalCost() decimal.Decimal {
	itemsCost := make([]decimal.Decimal, len(s.subset))
	used := make([]bool, len(s.subset))
	for i, productID := range s.products {
		supplier := s.assigned[i]
		itemsCost[supplier] = itemsCost[supplier].Add(s.subset[supplier].Matches[productID].Subtotal)
		used[supplier] = true
	}

	total := decimal.Zero
	for i, inv := range s.subset {
		if !used[i] {
			continue
		}
		total = total.Add(itemsCost[i]).Add(inv.Pharmacy.ShippingFor(itemsCost[i]))
	}
	return total
}

// buildSolution materializes the best assignment into Orders, one per
// pharmacy with at least one item, in subset order with items sorted by
// product ID.
func (s *assignmentSolver) buildSolution() model.Solution {
	itemsByPharmacy := make([][]model.Match, len(s.subset))
	for i, productID := range s.products {
		supplier := s.best[i]
		itemsByPharmacy[supplier] = append(itemsByPharmacy[supplier], s.subset[supplier].Matches[productID])
	}

	orders := make([]model.Order, 0, len(s.subset))
	for i, items := range itemsByPharmacy {
		if len(items) == 0 {
			continue
		}
		sort.Slice(items, func(a, b int) bool {
			return items[a].ProductID < items[b].ProductID
		})
		orders = append(orders, model.NewOrder(s.subset[i].Pharmacy, items))
	}
	return model.NewSolution(orders)
}
