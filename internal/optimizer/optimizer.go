package optimizer

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/pharmabot/basket-service/internal/domain/model"
)

// DefaultPruneWidth is how many cheapest pharmacies per product survive
// candidate pruning for multi-order searches.
const DefaultPruneWidth = 5

// Engine defines the basket optimization operation.
type Engine interface {
	// Optimize computes the cheapest ways to fulfill the basket from the
	// given offers, splitting across up to maxOrders pharmacies. The
	// limits map caps how many solutions are reported per order count;
	// order counts absent from the map are skipped. Solutions are
	// returned grouped by order count, each group sorted ascending by
	// total cost.
	Optimize(basket model.Basket, offers []model.Offer, maxOrders int, limits map[int]int) []model.Solution
}

// Option configures an EngineService.
type Option func(*EngineService)

// EngineService implements Engine with an exhaustive subset search over a
// pruned candidate set. It is pure computation: no I/O, no state shared
// across calls, safe for concurrent use with independent inputs.
type EngineService struct {
	pruneWidth int
}

// NewEngineService creates an EngineService with the given options.
func NewEngineService(opts ...Option) *EngineService {
	e := &EngineService{pruneWidth: DefaultPruneWidth}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithPruneWidth overrides how many cheapest pharmacies per product are
// kept as candidates when searching multi-pharmacy splits. Values below
// one are ignored.
func WithPruneWidth(n int) Option {
	return func(e *EngineService) {
		if n >= 1 {
			e.pruneWidth = n
		}
	}
}

// Optimize runs the full search. An empty basket yields an empty result;
// so does any order count for which no covering subset exists.
func (e *EngineService) Optimize(basket model.Basket, offers []model.Offer, maxOrders int, limits map[int]int) []model.Solution {
	if len(basket) == 0 {
		return nil
	}
	if maxOrders < 1 {
		maxOrders = 1
	}

	inventories := BuildInventories(basket, offers)
	index := buildAvailabilityIndex(basket, inventories)

	var results []model.Solution
	for k := 1; k <= maxOrders; k++ {
		limit, ok := limits[k]
		if !ok || limit <= 0 {
			continue
		}

		candidates := inventories
		if k > 1 {
			candidates = e.pruneCandidates(inventories, index)
		}

		solutions := e.searchSubsets(basket, candidates, k)

		sort.SliceStable(solutions, func(i, j int) bool {
			return solutions[i].TotalCost.LessThan(solutions[j].TotalCost)
		})
		if len(solutions) > limit {
			solutions = solutions[:limit]
		}
		results = append(results, solutions...)
	}
	return results
}

// pruneCandidates keeps, for each basket product, the pruneWidth
// cheapest pharmacies for that product, and unions those sets. This
// bounds subset enumeration for k>1 while keeping near-optimal splits
// in play. Candidate order follows the original inventory order.
func (e *EngineService) pruneCandidates(inventories []*Inventory, index map[int64][]*Inventory) []*Inventory {
	keep := make(map[*Inventory]bool)
	for productID, suppliers := range index {
		ranked := make([]*Inventory, len(suppliers))
		copy(ranked, suppliers)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Matches[productID].Price.LessThan(ranked[j].Matches[productID].Price)
		})
		if len(ranked) > e.pruneWidth {
			ranked = ranked[:e.pruneWidth]
		}
		for _, inv := range ranked {
			keep[inv] = true
		}
	}

	candidates := make([]*Inventory, 0, len(keep))
	for _, inv := range inventories {
		if keep[inv] {
			candidates = append(candidates, inv)
		}
	}
	return candidates
}

// searchSubsets enumerates all unordered size-k subsets of the
// candidates, solves the covering ones, and keeps solutions that use
// exactly k pharmacies. A subset whose members end up with fewer than k
// non-empty orders is dropped; the smaller split is already found by the
// lower-k pass.
func (e *EngineService) searchSubsets(basket model.Basket, candidates []*Inventory, k int) []model.Solution {
	if k > len(candidates) {
		return nil
	}

	var solutions []model.Solution
	subset := make([]*Inventory, 0, k)

	var enumerate func(start int)
	enumerate = func(start int) {
		if len(subset) == k {
			if !coversBasket(basket, subset) {
				return
			}
			solution, ok := solveAssignment(basket, subset)
			if !ok {
				// Coverage guarantees an assignment exists, so this is an
				// internal fault. Skip the subset instead of aborting.
				log.Error().
					Int("order_count", k).
					Ints64("pharmacy_ids", subsetPharmacyIDs(subset)).
					Msg("assignment solver failed on covering subset")
				return
			}
			if solution.OrderCount == k {
				solutions = append(solutions, solution)
			}
			return
		}
		for i := start; i <= len(candidates)-(k-len(subset)); i++ {
			subset = append(subset, candidates[i])
			enumerate(i + 1)
			subset = subset[:len(subset)-1]
		}
	}
	enumerate(0)

	return solutions
}

func subsetPharmacyIDs(subset []*Inventory) []int64 {
	ids := make([]int64, len(subset))
	for i, inv := range subset {
		ids[i] = inv.Pharmacy.ID
	}
	return ids
}
