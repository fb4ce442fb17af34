//go:build integration

package circuitbreaker_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmabot/basket-service/internal/circuitbreaker"
	"github.com/pharmabot/basket-service/internal/repository"
	"github.com/pharmabot/basket-service/internal/testutil"
)

func TestBreakerWithMongoDB_Integration(t *testing.T) {
	ctx := context.Background()

	mongo, err := testutil.StartMongo(ctx)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, mongo.Stop(ctx))
	}()

	t.Run("guards the offers repository", func(t *testing.T) {
		db, err := repository.NewMongoDB(mongo.URI, "test_basket_service")
		require.NoError(t, err)
		defer func() {
			_ = db.Close(ctx)
		}()

		b := circuitbreaker.New("test-offers",
			circuitbreaker.WithMaxFailures(2),
			circuitbreaker.WithCooldown(100*time.Millisecond),
		)
		offers := repository.GuardOffers(repository.NewOffersRepository(db), b)

		pharmacy, err := repository.NewPharmaciesRepository(db).Create(ctx, "Farmacia Rossi", decimal.RequireFromString("4.90"), nil)
		require.NoError(t, err)

		require.NoError(t, offers.Upsert(ctx, 1, pharmacy.ID, decimal.RequireFromString("7.50")))

		listed, err := offers.ListByProduct(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, listed, 1)

		assert.Equal(t, circuitbreaker.Closed, b.State())
		assert.True(t, b.Snapshot().Healthy())
	})

	t.Run("guards the audit repository", func(t *testing.T) {
		db, err := repository.NewMongoDB(mongo.URI, "test_basket_service")
		require.NoError(t, err)
		defer func() {
			_ = db.Close(ctx)
		}()

		b := circuitbreaker.New("test-audit",
			circuitbreaker.WithMaxFailures(2),
			circuitbreaker.WithCooldown(100*time.Millisecond),
		)
		audit := repository.GuardAudit(repository.NewAuditRepository(db), b)

		err = audit.Insert(ctx, &repository.AuditDocument{Level: "info", Message: "optimize run"})
		assert.NoError(t, err)

		assert.Equal(t, circuitbreaker.Closed, b.State())
		assert.True(t, b.Snapshot().Healthy())
	})

	t.Run("open breaker sheds load while MongoDB is unreachable", func(t *testing.T) {
		db, err := repository.NewMongoDB(mongo.URI, "test_basket_service_down")
		require.NoError(t, err)
		require.NoError(t, db.Close(ctx))

		b := circuitbreaker.New("test-down",
			circuitbreaker.WithMaxFailures(2),
			circuitbreaker.WithCooldown(time.Minute),
		)
		offers := repository.GuardOffers(repository.NewOffersRepository(db), b)

		// The client is disconnected, every call fails until the breaker trips.
		shortCtx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
		defer cancel()
		for i := 0; i < 2; i++ {
			_, err := offers.ListByProduct(shortCtx, 1)
			require.Error(t, err)
		}

		assert.Equal(t, circuitbreaker.Open, b.State())

		_, err = offers.ListByProduct(ctx, 1)
		assert.ErrorIs(t, err, circuitbreaker.ErrOpen)
	})
}
