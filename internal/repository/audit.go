package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pharmabot/basket-service/internal/domain/model"
)

// AuditDocument is the storage shape of one audit trail record.
type AuditDocument struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty"`
	At         time.Time              `bson:"timestamp"`
	Level      string                 `bson:"level"`
	Message    string                 `bson:"message"`
	RequestID  string                 `bson:"request_id,omitempty"`
	Method     string                 `bson:"method,omitempty"`
	Path       string                 `bson:"path,omitempty"`
	Status     int                    `bson:"status_code,omitempty"`
	DurationMS int64                  `bson:"duration_ms,omitempty"`
	ClientIP   string                 `bson:"ip,omitempty"`
	UserAgent  string                 `bson:"user_agent,omitempty"`
	Error      string                 `bson:"error,omitempty"`
	Action     string                 `bson:"action,omitempty"`
	Detail     map[string]interface{} `bson:"detail,omitempty"`
}

// stamp fills the ID and timestamp when the caller left them zero.
func (d *AuditDocument) stamp() {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if d.At.IsZero() {
		d.At = time.Now()
	}
}

// AuditRepository persists the audit trail in the audit_log collection.
type AuditRepository struct {
	collection *mongo.Collection
}

// NewAuditRepository creates an audit repository on the given database.
func NewAuditRepository(db *MongoDB) *AuditRepository {
	return &AuditRepository{collection: db.Audit}
}

// Insert stores one record.
func (r *AuditRepository) Insert(ctx context.Context, doc *AuditDocument) error {
	doc.stamp()
	_, err := r.collection.InsertOne(ctx, doc)
	return err
}

// InsertBatch stores a batch of records in one write.
func (r *AuditRepository) InsertBatch(ctx context.Context, docs []*AuditDocument) error {
	if len(docs) == 0 {
		return nil
	}
	rows := make([]interface{}, len(docs))
	for i, doc := range docs {
		doc.stamp()
		rows[i] = doc
	}
	_, err := r.collection.InsertMany(ctx, rows)
	return err
}

// auditFilter translates a query into a bson filter. Path matches as a
// case-insensitive substring, everything else matches exactly.
func auditFilter(q model.AuditQuery) bson.M {
	filter := bson.M{}
	if q.RequestID != "" {
		filter["request_id"] = q.RequestID
	}
	if q.Level != "" {
		filter["level"] = q.Level
	}
	if q.Action != "" {
		filter["action"] = q.Action
	}
	if q.Path != "" {
		filter["path"] = bson.M{"$regex": q.Path, "$options": "i"}
	}
	if q.From != nil || q.To != nil {
		span := bson.M{}
		if q.From != nil {
			span["$gte"] = *q.From
		}
		if q.To != nil {
			span["$lte"] = *q.To
		}
		filter["timestamp"] = span
	}
	return filter
}

// Search returns matching records, newest first.
func (r *AuditRepository) Search(ctx context.Context, q model.AuditQuery) ([]*AuditDocument, error) {
	findOpts := options.Find().SetSort(bson.M{"timestamp": -1})
	if q.Limit > 0 {
		findOpts.SetLimit(int64(q.Limit))
	}
	if q.Skip > 0 {
		findOpts.SetSkip(int64(q.Skip))
	}

	cursor, err := r.collection.Find(ctx, auditFilter(q), findOpts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []*AuditDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Count returns how many records match the query.
func (r *AuditRepository) Count(ctx context.Context, q model.AuditQuery) (int64, error) {
	return r.collection.CountDocuments(ctx, auditFilter(q))
}
