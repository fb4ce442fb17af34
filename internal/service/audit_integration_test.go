//go:build integration

package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pharmabot/basket-service/internal/circuitbreaker"
	"github.com/pharmabot/basket-service/internal/domain/model"
	"github.com/pharmabot/basket-service/internal/repository"
	"github.com/pharmabot/basket-service/internal/service"
	"github.com/pharmabot/basket-service/internal/testutil"
)

func TestAuditService_Integration(t *testing.T) {
	ctx := context.Background()

	mongo, err := testutil.StartMongo(ctx)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, mongo.Stop(ctx))
	}()

	db, err := repository.NewMongoDB(mongo.URI, "test_audit_service")
	require.NoError(t, err)
	defer func() {
		_ = db.Close(ctx)
	}()

	breaker := circuitbreaker.New("mongodb-audit")
	repo := repository.GuardAudit(repository.NewAuditRepository(db), breaker)

	t.Run("recorded entries reach MongoDB and are searchable", func(t *testing.T) {
		svc := service.NewAuditService(repo,
			service.WithAuditBatchSize(2),
			service.WithAuditFlushInterval(50*time.Millisecond),
		)

		svc.Record(&model.AuditRecord{
			Level:     "info",
			Message:   "HTTP request",
			RequestID: "req-integration-1",
			Method:    "POST",
			Path:      "/api/optimize",
			Status:    200,
		})
		svc.Record(&model.AuditRecord{
			Level:   "info",
			Message: "Offer upserted",
			Action:  "upsert_offer",
			Detail:  map[string]interface{}{"product_id": int64(1)},
		})

		require.NoError(t, svc.Close(ctx))

		records, err := svc.Search(ctx, model.AuditQuery{RequestID: "req-integration-1"})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "/api/optimize", records[0].Path)

		byAction, err := svc.Search(ctx, model.AuditQuery{Action: "upsert_offer"})
		require.NoError(t, err)
		require.Len(t, byAction, 1)

		count, err := svc.Count(ctx, model.AuditQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("synchronous store is immediately visible", func(t *testing.T) {
		svc := service.NewAuditService(repo)
		defer func() { _ = svc.Close(ctx) }()

		require.NoError(t, svc.Store(ctx, &model.AuditRecord{
			Level:   "error",
			Message: "HTTP request",
			Path:    "/api/basket/items/7",
			Status:  404,
		}))

		records, err := svc.Search(ctx, model.AuditQuery{Level: "error"})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 404, records[0].Status)
	})

	assert.Equal(t, circuitbreaker.Closed, breaker.State())
}
