package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmabot/basket-service/internal/domain/model"
)

func TestEngineService_Optimize_SinglePharmacy(t *testing.T) {
	p1 := pharmacy(1, "Unica", "5.00", "")

	basket := model.Basket{10: 1}
	offers := []model.Offer{offer(10, p1, "10.00")}

	engine := NewEngineService()
	solutions := engine.Optimize(basket, offers, 1, ParseLimits("5", 1))

	require.Len(t, solutions, 1)
	assert.Equal(t, 1, solutions[0].OrderCount)
	assert.True(t, solutions[0].TotalCost.Equal(dec("15.00")), "got %s", solutions[0].TotalCost)
}

func TestEngineService_Optimize_SplitBeatsSingle(t *testing.T) {
	p1 := pharmacy(1, "Tutto", "5.00", "100.00")
	p2 := pharmacy(2, "SoloA", "5.00", "4.00")
	p3 := pharmacy(3, "SoloB", "5.00", "4.00")

	basket := model.Basket{10: 1, 20: 1}
	offers := []model.Offer{
		offer(10, p1, "20.00"),
		offer(20, p1, "20.00"),
		offer(10, p2, "5.00"),
		offer(20, p3, "5.00"),
	}

	engine := NewEngineService()
	solutions := engine.Optimize(basket, offers, 2, ParseLimits("5,5", 2))

	var k1, k2 []model.Solution
	for _, s := range solutions {
		switch s.OrderCount {
		case 1:
			k1 = append(k1, s)
		case 2:
			k2 = append(k2, s)
		}
	}

	require.Len(t, k1, 1)
	assert.True(t, k1[0].TotalCost.Equal(dec("45.00")), "got %s", k1[0].TotalCost)

	require.NotEmpty(t, k2)
	assert.True(t, k2[0].TotalCost.Equal(dec("10.00")), "got %s", k2[0].TotalCost)
	assert.True(t, k2[0].TotalCost.LessThan(k1[0].TotalCost))
}

func TestEngineService_Optimize_ThresholdBeatsCheapestItems(t *testing.T) {
	// P1 sells both items at 10.00 with free shipping from 15.00; the
	// per-item-cheaper split across P2/P3 costs 36.00 with shipping.
	p1 := pharmacy(1, "Soglia", "5.00", "15.00")
	p2 := pharmacy(2, "CaraA", "9.00", "")
	p3 := pharmacy(3, "CaraB", "9.00", "")

	basket := model.Basket{10: 1, 20: 1}
	offers := []model.Offer{
		offer(10, p1, "10.00"),
		offer(20, p1, "10.00"),
		offer(10, p2, "8.00"),
		offer(20, p3, "10.00"),
	}

	engine := NewEngineService()
	solutions := engine.Optimize(basket, offers, 2, ParseLimits("5,5", 2))
	require.NotEmpty(t, solutions)

	cheapest := solutions[0]
	for _, s := range solutions[1:] {
		if s.TotalCost.LessThan(cheapest.TotalCost) {
			cheapest = s
		}
	}
	assert.Equal(t, 1, cheapest.OrderCount)
	assert.True(t, cheapest.TotalCost.Equal(dec("20.00")), "got %s", cheapest.TotalCost)
	assert.True(t, cheapest.Orders[0].ShippingCost.IsZero())
}

func TestEngineService_Optimize_PerCountSortAndLimit(t *testing.T) {
	p1 := pharmacy(1, "Uno", "1.00", "")
	p2 := pharmacy(2, "Due", "2.00", "")
	p3 := pharmacy(3, "Tre", "3.00", "")

	basket := model.Basket{10: 1}
	offers := []model.Offer{
		offer(10, p1, "9.00"),
		offer(10, p2, "7.00"),
		offer(10, p3, "5.00"),
	}

	engine := NewEngineService()

	t.Run("sorted ascending within an order count", func(t *testing.T) {
		solutions := engine.Optimize(basket, offers, 1, ParseLimits("5", 1))
		require.Len(t, solutions, 3)
		for i := 1; i < len(solutions); i++ {
			assert.False(t, solutions[i].TotalCost.LessThan(solutions[i-1].TotalCost))
		}
		assert.True(t, solutions[0].TotalCost.Equal(dec("8.00")))
	})

	t.Run("truncated to the limit", func(t *testing.T) {
		solutions := engine.Optimize(basket, offers, 1, ParseLimits("2", 1))
		require.Len(t, solutions, 2)
		assert.True(t, solutions[0].TotalCost.Equal(dec("8.00")))
		assert.True(t, solutions[1].TotalCost.Equal(dec("9.00")))
	})

	t.Run("zero limit suppresses the order count", func(t *testing.T) {
		assert.Empty(t, engine.Optimize(basket, offers, 1, ParseLimits("0", 1)))
	})
}

func TestEngineService_Optimize_OrderCountMatchesGroup(t *testing.T) {
	// Both pharmacies supply everything, so k=2 subsets can collapse to a
	// single order. Those must not leak into the k=2 group.
	p1 := pharmacy(1, "Uno", "5.00", "")
	p2 := pharmacy(2, "Due", "5.00", "")

	basket := model.Basket{10: 1, 20: 1}
	offers := []model.Offer{
		offer(10, p1, "1.00"),
		offer(20, p1, "1.00"),
		offer(10, p2, "50.00"),
		offer(20, p2, "50.00"),
	}

	engine := NewEngineService()
	solutions := engine.Optimize(basket, offers, 2, ParseLimits("5,5", 2))

	counts := map[int]int{}
	for _, s := range solutions {
		assert.Equal(t, len(s.Orders), s.OrderCount)
		counts[s.OrderCount]++
	}
	assert.Equal(t, 2, counts[1])
	// The only size-2 subset collapses to a single order at the cheap
	// pharmacy, so nothing is reported for two orders.
	assert.Zero(t, counts[2])
}

func TestEngineService_Optimize_EdgeCases(t *testing.T) {
	p1 := pharmacy(1, "Uno", "5.00", "")
	engine := NewEngineService()

	t.Run("empty basket", func(t *testing.T) {
		solutions := engine.Optimize(model.Basket{}, []model.Offer{offer(10, p1, "1.00")}, 2, ParseLimits("5", 2))
		assert.Empty(t, solutions)
	})

	t.Run("no coverage", func(t *testing.T) {
		basket := model.Basket{10: 1, 20: 1}
		solutions := engine.Optimize(basket, []model.Offer{offer(10, p1, "1.00")}, 2, ParseLimits("5", 2))
		assert.Empty(t, solutions)
	})

	t.Run("no offers at all", func(t *testing.T) {
		assert.Empty(t, engine.Optimize(model.Basket{10: 1}, nil, 1, ParseLimits("5", 1)))
	})

	t.Run("max orders below one behaves as one", func(t *testing.T) {
		solutions := engine.Optimize(model.Basket{10: 1}, []model.Offer{offer(10, p1, "1.00")}, 0, ParseLimits("5", 1))
		require.Len(t, solutions, 1)
		assert.Equal(t, 1, solutions[0].OrderCount)
	})
}

func TestEngineService_Optimize_Idempotent(t *testing.T) {
	p1 := pharmacy(1, "Uno", "5.00", "30.00")
	p2 := pharmacy(2, "Due", "4.90", "")
	p3 := pharmacy(3, "Tre", "3.50", "20.00")

	basket := model.Basket{10: 2, 20: 1, 30: 1}
	offers := []model.Offer{
		offer(10, p1, "7.50"),
		offer(20, p1, "3.00"),
		offer(30, p1, "9.00"),
		offer(10, p2, "6.00"),
		offer(30, p2, "8.50"),
		offer(20, p3, "2.50"),
		offer(30, p3, "9.50"),
	}

	engine := NewEngineService()
	first := engine.Optimize(basket, offers, 3, ParseLimits("4", 3))
	second := engine.Optimize(basket, offers, 3, ParseLimits("4", 3))

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].OrderCount, second[i].OrderCount)
		assert.True(t, first[i].TotalCost.Equal(second[i].TotalCost))
	}
}

func TestEngineService_Optimize_PruneWidth(t *testing.T) {
	// Five pharmacies sell the same single product; with a prune width of
	// two only the two cheapest survive as multi-order candidates, so no
	// valid two-order split exists for a one-product basket anyway, but
	// the k=1 pass still sees every pharmacy.
	var offers []model.Offer
	for i := int64(1); i <= 5; i++ {
		p := pharmacy(i, "Farmacia", "1.00", "")
		offers = append(offers, offer(10, p, dec("5.00").Add(decimalFromInt(int(i))).String()))
	}

	basket := model.Basket{10: 1}
	engine := NewEngineService(WithPruneWidth(2))

	solutions := engine.Optimize(basket, offers, 1, ParseLimits("10", 1))
	assert.Len(t, solutions, 5)
}

func TestEngineService_Optimize_CoverageExact(t *testing.T) {
	p1 := pharmacy(1, "Uno", "5.00", "")
	p2 := pharmacy(2, "Due", "4.00", "10.00")

	basket := model.Basket{10: 1, 20: 2}
	offers := []model.Offer{
		offer(10, p1, "3.00"),
		offer(20, p1, "4.00"),
		offer(10, p2, "2.50"),
		offer(20, p2, "4.50"),
	}

	engine := NewEngineService()
	solutions := engine.Optimize(basket, offers, 2, ParseLimits("9,9", 2))
	require.NotEmpty(t, solutions)

	for _, s := range solutions {
		seen := map[int64]int{}
		for _, order := range s.Orders {
			require.NotEmpty(t, order.Items)
			for _, item := range order.Items {
				seen[item.ProductID]++
			}
		}
		assert.Equal(t, map[int64]int{10: 1, 20: 1}, seen)
	}
}
