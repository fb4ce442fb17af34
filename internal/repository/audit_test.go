//go:build !integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/pharmabot/basket-service/internal/circuitbreaker"
	"github.com/pharmabot/basket-service/internal/domain/model"
)

func TestAuditFilter(t *testing.T) {
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	tests := []struct {
		name  string
		query model.AuditQuery
		want  bson.M
	}{
		{
			name:  "empty query matches everything",
			query: model.AuditQuery{},
			want:  bson.M{},
		},
		{
			name:  "request id and level",
			query: model.AuditQuery{RequestID: "req-1", Level: "error"},
			want:  bson.M{"request_id": "req-1", "level": "error"},
		},
		{
			name:  "action filter",
			query: model.AuditQuery{Action: "upsert_offer"},
			want:  bson.M{"action": "upsert_offer"},
		},
		{
			name:  "path as case-insensitive substring",
			query: model.AuditQuery{Path: "/api/optimize"},
			want:  bson.M{"path": bson.M{"$regex": "/api/optimize", "$options": "i"}},
		},
		{
			name:  "time span",
			query: model.AuditQuery{From: &from, To: &to},
			want:  bson.M{"timestamp": bson.M{"$gte": from, "$lte": to}},
		},
		{
			name:  "open ended time span",
			query: model.AuditQuery{From: &from},
			want:  bson.M{"timestamp": bson.M{"$gte": from}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, auditFilter(tt.query))
		})
	}
}

func TestAuditDocument_Stamp(t *testing.T) {
	t.Run("fills zero id and timestamp", func(t *testing.T) {
		doc := &AuditDocument{Level: "info", Message: "HTTP request"}
		doc.stamp()

		assert.False(t, doc.ID.IsZero())
		assert.False(t, doc.At.IsZero())
	})

	t.Run("keeps caller supplied timestamp", func(t *testing.T) {
		at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		doc := &AuditDocument{At: at}
		doc.stamp()

		assert.Equal(t, at, doc.At)
	})
}

// An open breaker must swallow audit writes and reject audit reads
// without touching the underlying repository.
func TestGuardedAuditRepository_OpenBreaker(t *testing.T) {
	ctx := context.Background()
	b := circuitbreaker.New("audit", circuitbreaker.WithMaxFailures(1), circuitbreaker.WithCooldown(time.Hour))
	require.Error(t, b.Do(func() error { return assert.AnError }))
	require.Equal(t, circuitbreaker.Open, b.State())

	// A nil repository proves the guarded calls never reach it.
	guarded := GuardAudit(nil, b)

	assert.NoError(t, guarded.Insert(ctx, &AuditDocument{Message: "dropped"}))
	assert.NoError(t, guarded.InsertBatch(ctx, []*AuditDocument{{Message: "dropped"}}))

	_, err := guarded.Search(ctx, model.AuditQuery{})
	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)

	_, err = guarded.Count(ctx, model.AuditQuery{})
	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)
}
