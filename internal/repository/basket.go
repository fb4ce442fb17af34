package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pharmabot/basket-service/internal/domain/model"
)

// ErrItemNotPresent is returned when updating or removing a basket line
// for a product that is not in the basket.
var ErrItemNotPresent = errors.New("product is not in the basket")

// BasketItemDocument is the MongoDB representation of one basket line.
type BasketItemDocument struct {
	ProductID int64 `bson:"product_id"`
	Quantity  int   `bson:"quantity"`
}

// BasketRepository persists the shopping basket, one document per product.
type BasketRepository struct {
	collection *mongo.Collection
}

// NewBasketRepository creates a new basket repository.
func NewBasketRepository(db *MongoDB) *BasketRepository {
	return &BasketRepository{collection: db.BasketItems}
}

// List returns all basket lines sorted by product ID.
func (r *BasketRepository) List(ctx context.Context) ([]model.BasketItem, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"product_id": 1}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []BasketItemDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	items := make([]model.BasketItem, len(docs))
	for i, doc := range docs {
		items[i] = model.BasketItem{ProductID: doc.ProductID, Quantity: doc.Quantity}
	}
	return items, nil
}

// Add inserts a basket line or increments the quantity of an existing one.
func (r *BasketRepository) Add(ctx context.Context, productID int64, quantity int) (model.BasketItem, error) {
	var doc BasketItemDocument
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"product_id": productID},
		bson.M{"$inc": bson.M{"quantity": quantity}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return model.BasketItem{}, err
	}
	return model.BasketItem{ProductID: doc.ProductID, Quantity: doc.Quantity}, nil
}

// SetQuantity replaces the quantity of an existing basket line.
func (r *BasketRepository) SetQuantity(ctx context.Context, productID int64, quantity int) (model.BasketItem, error) {
	var doc BasketItemDocument
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"product_id": productID},
		bson.M{"$set": bson.M{"quantity": quantity}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.BasketItem{}, ErrItemNotPresent
	}
	if err != nil {
		return model.BasketItem{}, err
	}
	return model.BasketItem{ProductID: doc.ProductID, Quantity: doc.Quantity}, nil
}

// Remove deletes the basket line for a product.
func (r *BasketRepository) Remove(ctx context.Context, productID int64) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"product_id": productID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrItemNotPresent
	}
	return nil
}

// Clear empties the basket.
func (r *BasketRepository) Clear(ctx context.Context) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{})
	return err
}
