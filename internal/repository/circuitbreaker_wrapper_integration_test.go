//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmabot/basket-service/internal/circuitbreaker"
	"github.com/pharmabot/basket-service/internal/domain/model"
)

func TestGuardedOffersRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	pharmacy, err := NewPharmaciesRepository(db).Create(ctx, "Farmacia Test", testDec("4.90"), nil)
	require.NoError(t, err)

	b := circuitbreaker.New("offers")
	offers := GuardOffers(NewOffersRepository(db), b)

	t.Run("upsert replaces the price for a pair", func(t *testing.T) {
		require.NoError(t, offers.Upsert(ctx, 1, pharmacy.ID, testDec("7.50")))
		require.NoError(t, offers.Upsert(ctx, 1, pharmacy.ID, testDec("6.00")))

		listed, err := offers.ListByProduct(ctx, 1)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.True(t, listed[0].Price.Equal(testDec("6.00")))
	})

	t.Run("list by products skips unknown ids", func(t *testing.T) {
		require.NoError(t, offers.Upsert(ctx, 2, pharmacy.ID, testDec("3.00")))

		listed, err := offers.ListByProducts(ctx, []int64{1, 2, 99})
		require.NoError(t, err)
		assert.Len(t, listed, 2)
	})

	t.Run("delete by product goes through the breaker", func(t *testing.T) {
		require.NoError(t, offers.DeleteByProduct(ctx, 2))

		listed, err := offers.ListByProduct(ctx, 2)
		require.NoError(t, err)
		assert.Empty(t, listed)
	})

	t.Run("breaker stays closed and is exposed for health checks", func(t *testing.T) {
		require.Same(t, b, offers.Breaker())
		assert.Equal(t, circuitbreaker.Closed, b.State())
		assert.True(t, b.Snapshot().Healthy())
	})
}

func TestGuardedAuditRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	b := circuitbreaker.New("audit")
	audit := GuardAudit(NewAuditRepository(db), b)

	require.NoError(t, audit.Insert(ctx, &AuditDocument{
		Level:     "info",
		Message:   "HTTP request",
		RequestID: "req-1",
	}))
	require.NoError(t, audit.InsertBatch(ctx, []*AuditDocument{
		{Level: "info", Message: "Basket item added", Action: "add_basket_item"},
		{Level: "error", Message: "HTTP request", RequestID: "req-2"},
	}))

	docs, err := audit.Search(ctx, model.AuditQuery{RequestID: "req-1"})
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	count, err := audit.Count(ctx, model.AuditQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	require.Same(t, b, audit.Breaker())
	assert.Equal(t, circuitbreaker.Closed, b.State())
}
