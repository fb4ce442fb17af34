// Package repository provides data access layer for MongoDB.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig holds MongoDB connection pool configuration.
type MongoConfig struct {
	// MaxPoolSize is the maximum number of connections in the pool.
	MaxPoolSize uint64
	// MinPoolSize is the minimum number of connections to keep in the pool.
	MinPoolSize uint64
	// MaxConnIdleTime is how long a connection can remain idle before being closed.
	MaxConnIdleTime time.Duration
	// ConnectTimeout is the timeout for establishing a connection.
	ConnectTimeout time.Duration
	// ServerSelectionTimeout is how long to wait for server selection.
	ServerSelectionTimeout time.Duration
	// SocketTimeout is the timeout for socket read/write operations.
	SocketTimeout time.Duration
	// EnableCompression enables wire protocol compression.
	EnableCompression bool
}

// DefaultMongoConfig returns production-optimized MongoDB configuration.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            50,
		MinPoolSize:            10,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		EnableCompression:      true,
	}
}

// MongoDB provides MongoDB client and database access.
type MongoDB struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Products    *mongo.Collection
	Pharmacies  *mongo.Collection
	Offers      *mongo.Collection
	BasketItems *mongo.Collection
	Audit       *mongo.Collection
	Counters    *mongo.Collection
}

// NewMongoDB creates a new MongoDB connection with default configuration.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig creates a new MongoDB connection with custom configuration.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	// Build client options with connection pool configuration
	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout)

	// Enable compression if configured
	if cfg.EnableCompression {
		clientOptions.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}

	clientOptions.SetRetryWrites(true)
	clientOptions.SetRetryReads(true)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(databaseName)
	mongoDB := &MongoDB{
		Client:      client,
		Database:    db,
		Products:    db.Collection("products"),
		Pharmacies:  db.Collection("pharmacies"),
		Offers:      db.Collection("offers"),
		BasketItems: db.Collection("basket_items"),
		Audit:       db.Collection("audit_log"),
		Counters:    db.Collection("counters"),
	}

	// Create indexes
	if err := mongoDB.createIndexes(ctx); err != nil {
		return nil, err
	}

	return mongoDB, nil
}

// createIndexes creates necessary indexes for collections.
func (m *MongoDB) createIndexes(ctx context.Context) error {
	// Products: minsan is the external identifier and must be unique
	minsanIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "minsan", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := m.Products.Indexes().CreateOne(ctx, minsanIndex); err != nil {
		return err
	}

	// Offers: at most one offer per (product, pharmacy) pair
	offerPairIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "product_id", Value: 1}, {Key: "pharmacy_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := m.Offers.Indexes().CreateOne(ctx, offerPairIndex); err != nil {
		return err
	}

	// Offers: lookups by product during optimization
	offerProductIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "product_id", Value: 1}},
		Options: options.Index().SetUnique(false),
	}
	_, _ = m.Offers.Indexes().CreateOne(ctx, offerProductIndex)

	// Basket items: one line per product
	basketProductIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "product_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := m.BasketItems.Indexes().CreateOne(ctx, basketProductIndex); err != nil {
		return err
	}

	// Audit trail: lookups by request_id. The TTL index on timestamp is
	// managed separately by SetAuditTTL.
	requestIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "request_id", Value: 1}},
		Options: options.Index().SetUnique(false),
	}
	_, _ = m.Audit.Indexes().CreateOne(ctx, requestIDIndex)

	return nil
}

// NextSequence returns the next value of a named monotonically increasing
// counter. Used to assign integer IDs to products and pharmacies.
func (m *MongoDB) NextSequence(ctx context.Context, name string) (int64, error) {
	var doc struct {
		Value int64 `bson:"value"`
	}
	err := m.Counters.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Value, nil
}

// SetAuditTTL replaces the expiry index on the audit trail so old
// records age out after the given number of days.
func (m *MongoDB) SetAuditTTL(ctx context.Context, days int) error {
	// An existing index with a different expiry must be dropped first,
	// Mongo refuses to redefine it in place.
	_, _ = m.Audit.Indexes().DropOne(ctx, "timestamp_1")

	ttlIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(days * 24 * 60 * 60)),
	}
	_, err := m.Audit.Indexes().CreateOne(ctx, ttlIndex)
	return err
}

// Close closes the MongoDB connection.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck verifies the MongoDB connection is healthy.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	// Use a short timeout for health checks
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
