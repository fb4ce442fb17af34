//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoDB_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	// Use shared container instead of creating a new one
	uri := getSharedContainerURI()
	dbName := sanitizeDBName(t.Name())

	// Create MongoDB connection using the URI from shared testcontainer
	db, err := NewMongoDB(uri, dbName)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	t.Run("connection successful", func(t *testing.T) {
		assert.NotNil(t, db)
		assert.NotNil(t, db.Client)
		assert.NotNil(t, db.Database)
		assert.NotNil(t, db.Products)
		assert.NotNil(t, db.Audit)
	})

	t.Run("ping successful", func(t *testing.T) {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		err := db.Client.Ping(pingCtx, nil)
		assert.NoError(t, err)
	})

	t.Run("set audit TTL", func(t *testing.T) {
		err := db.SetAuditTTL(ctx, 30)
		assert.NoError(t, err)
	})

	t.Run("audit TTL can be re-applied with a new retention", func(t *testing.T) {
		require.NoError(t, db.SetAuditTTL(ctx, 30))
		assert.NoError(t, db.SetAuditTTL(ctx, 60))
	})

	t.Run("verify collections exist", func(t *testing.T) {
		// Collections are created during NewMongoDB
		// Verify collections exist
		assert.NotNil(t, db.Products)
		assert.NotNil(t, db.Pharmacies)
		assert.NotNil(t, db.Offers)
		assert.NotNil(t, db.BasketItems)
		assert.NotNil(t, db.Audit)
		assert.NotNil(t, db.Counters)
	})

	t.Run("sequences increase monotonically", func(t *testing.T) {
		first, err := db.NextSequence(ctx, "test_seq")
		require.NoError(t, err)
		second, err := db.NextSequence(ctx, "test_seq")
		require.NoError(t, err)
		assert.Equal(t, first+1, second)
	})
}
