package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pharmabot/basket-service/internal/domain/model"
)

var (
	// ErrProductNotFound is returned when a product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrDuplicateMinsan is returned when creating a product whose minsan
	// code already exists.
	ErrDuplicateMinsan = errors.New("product with this minsan already exists")
	// ErrPharmacyNotFound is returned when a pharmacy does not exist.
	ErrPharmacyNotFound = errors.New("pharmacy not found")
)

// ProductDocument is the MongoDB representation of a catalog product.
type ProductDocument struct {
	ID     int64  `bson:"_id"`
	Minsan string `bson:"minsan"`
	Name   string `bson:"name"`
}

// ToModel converts the document to a domain product.
func (d *ProductDocument) ToModel() model.Product {
	return model.Product{ID: d.ID, Minsan: d.Minsan, Name: d.Name}
}

// PharmacyDocument is the MongoDB representation of a pharmacy.
// Monetary fields are stored as decimal strings to keep exact values.
type PharmacyDocument struct {
	ID                    int64   `bson:"_id"`
	Name                  string  `bson:"name"`
	BaseShippingCost      string  `bson:"base_shipping_cost"`
	FreeShippingThreshold *string `bson:"free_shipping_threshold,omitempty"`
}

// ToModel converts the document to a domain pharmacy, parsing the stored
// decimal strings.
func (d *PharmacyDocument) ToModel() (model.Pharmacy, error) {
	cost, err := decimal.NewFromString(d.BaseShippingCost)
	if err != nil {
		return model.Pharmacy{}, err
	}
	p := model.Pharmacy{ID: d.ID, Name: d.Name, BaseShippingCost: cost}
	if d.FreeShippingThreshold != nil {
		threshold, err := decimal.NewFromString(*d.FreeShippingThreshold)
		if err != nil {
			return model.Pharmacy{}, err
		}
		p.FreeShippingThreshold = &threshold
	}
	return p, nil
}

// pharmacyDocumentFrom builds the stored form of a domain pharmacy.
func pharmacyDocumentFrom(p model.Pharmacy) PharmacyDocument {
	doc := PharmacyDocument{
		ID:               p.ID,
		Name:             p.Name,
		BaseShippingCost: p.BaseShippingCost.String(),
	}
	if p.FreeShippingThreshold != nil {
		s := p.FreeShippingThreshold.String()
		doc.FreeShippingThreshold = &s
	}
	return doc
}

// ProductsRepository provides catalog product persistence.
type ProductsRepository struct {
	db         *MongoDB
	collection *mongo.Collection
}

// NewProductsRepository creates a new products repository.
func NewProductsRepository(db *MongoDB) *ProductsRepository {
	return &ProductsRepository{db: db, collection: db.Products}
}

// List returns all catalog products sorted by ID.
func (r *ProductsRepository) List(ctx context.Context) ([]model.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []ProductDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	products := make([]model.Product, len(docs))
	for i, doc := range docs {
		products[i] = doc.ToModel()
	}
	return products, nil
}

// GetByMinsan returns the product with the given minsan code.
func (r *ProductsRepository) GetByMinsan(ctx context.Context, minsan string) (model.Product, error) {
	var doc ProductDocument
	err := r.collection.FindOne(ctx, bson.M{"minsan": minsan}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Product{}, ErrProductNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return doc.ToModel(), nil
}

// GetByID returns the product with the given internal ID.
func (r *ProductsRepository) GetByID(ctx context.Context, id int64) (model.Product, error) {
	var doc ProductDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Product{}, ErrProductNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return doc.ToModel(), nil
}

// Create inserts a new product, assigning it the next product ID.
// A duplicate minsan code yields ErrDuplicateMinsan.
func (r *ProductsRepository) Create(ctx context.Context, minsan, name string) (model.Product, error) {
	id, err := r.db.NextSequence(ctx, "products")
	if err != nil {
		return model.Product{}, err
	}

	doc := ProductDocument{ID: id, Minsan: minsan, Name: name}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.Product{}, ErrDuplicateMinsan
		}
		return model.Product{}, err
	}
	return doc.ToModel(), nil
}

// UpdateName renames the product with the given minsan code.
func (r *ProductsRepository) UpdateName(ctx context.Context, minsan, name string) (model.Product, error) {
	var doc ProductDocument
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"minsan": minsan},
		bson.M{"$set": bson.M{"name": name}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Product{}, ErrProductNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return doc.ToModel(), nil
}

// Delete removes the product with the given minsan code.
func (r *ProductsRepository) Delete(ctx context.Context, minsan string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"minsan": minsan})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

// PharmaciesRepository provides pharmacy persistence.
type PharmaciesRepository struct {
	db         *MongoDB
	collection *mongo.Collection
}

// NewPharmaciesRepository creates a new pharmacies repository.
func NewPharmaciesRepository(db *MongoDB) *PharmaciesRepository {
	return &PharmaciesRepository{db: db, collection: db.Pharmacies}
}

// List returns all pharmacies sorted by ID.
func (r *PharmaciesRepository) List(ctx context.Context) ([]model.Pharmacy, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []PharmacyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	pharmacies := make([]model.Pharmacy, 0, len(docs))
	for _, doc := range docs {
		pharmacy, err := doc.ToModel()
		if err != nil {
			return nil, err
		}
		pharmacies = append(pharmacies, pharmacy)
	}
	return pharmacies, nil
}

// GetByID returns the pharmacy with the given ID.
func (r *PharmaciesRepository) GetByID(ctx context.Context, id int64) (model.Pharmacy, error) {
	var doc PharmacyDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Pharmacy{}, ErrPharmacyNotFound
	}
	if err != nil {
		return model.Pharmacy{}, err
	}
	return doc.ToModel()
}

// Create registers a new pharmacy, assigning it the next pharmacy ID.
func (r *PharmaciesRepository) Create(ctx context.Context, name string, baseShipping decimal.Decimal, threshold *decimal.Decimal) (model.Pharmacy, error) {
	id, err := r.db.NextSequence(ctx, "pharmacies")
	if err != nil {
		return model.Pharmacy{}, err
	}

	pharmacy := model.Pharmacy{
		ID:                    id,
		Name:                  name,
		BaseShippingCost:      baseShipping,
		FreeShippingThreshold: threshold,
	}
	if _, err := r.collection.InsertOne(ctx, pharmacyDocumentFrom(pharmacy)); err != nil {
		return model.Pharmacy{}, err
	}
	return pharmacy, nil
}
