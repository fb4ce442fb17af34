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

// ErrOfferPharmacyMissing is returned when an offer references a
// pharmacy that no longer exists.
var ErrOfferPharmacyMissing = errors.New("offer references a missing pharmacy")

// OfferDocument is the MongoDB representation of one (product, pharmacy)
// offer. The unique index on the pair makes Upsert the only write path,
// so duplicates cannot exist in storage.
type OfferDocument struct {
	ProductID  int64  `bson:"product_id"`
	PharmacyID int64  `bson:"pharmacy_id"`
	Price      string `bson:"price"`
}

// OffersRepository provides offer persistence and the offer-to-pharmacy
// join the optimizer consumes.
type OffersRepository struct {
	db         *MongoDB
	collection *mongo.Collection
}

// NewOffersRepository creates a new offers repository.
func NewOffersRepository(db *MongoDB) *OffersRepository {
	return &OffersRepository{db: db, collection: db.Offers}
}

// Upsert creates or replaces the offer for one (product, pharmacy) pair.
func (r *OffersRepository) Upsert(ctx context.Context, productID, pharmacyID int64, price decimal.Decimal) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"product_id": productID, "pharmacy_id": pharmacyID},
		bson.M{"$set": bson.M{"price": price.String()}},
		options.Update().SetUpsert(true),
	)
	return err
}

// ListByProducts returns all offers for the given products, joined with
// the owning pharmacy's shipping policy. This is the optimizer's input.
func (r *OffersRepository) ListByProducts(ctx context.Context, productIDs []int64) ([]model.Offer, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"product_id": bson.M{"$in": productIDs}})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []OfferDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}

	pharmacies, err := r.pharmaciesByID(ctx, docs)
	if err != nil {
		return nil, err
	}

	offers := make([]model.Offer, 0, len(docs))
	for _, doc := range docs {
		pharmacy, ok := pharmacies[doc.PharmacyID]
		if !ok {
			return nil, ErrOfferPharmacyMissing
		}
		price, err := decimal.NewFromString(doc.Price)
		if err != nil {
			return nil, err
		}
		offers = append(offers, model.Offer{
			ProductID: doc.ProductID,
			Pharmacy:  pharmacy,
			Price:     price,
		})
	}
	return offers, nil
}

// ListByProduct returns the offers for one product, joined with pharmacy
// shipping policy.
func (r *OffersRepository) ListByProduct(ctx context.Context, productID int64) ([]model.Offer, error) {
	return r.ListByProducts(ctx, []int64{productID})
}

// DeleteByProduct removes all offers for a product. Used when the
// product itself is removed from the catalog.
func (r *OffersRepository) DeleteByProduct(ctx context.Context, productID int64) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"product_id": productID})
	return err
}

// pharmaciesByID fetches the pharmacies referenced by the given offer
// documents in one query.
func (r *OffersRepository) pharmaciesByID(ctx context.Context, docs []OfferDocument) (map[int64]model.Pharmacy, error) {
	idSet := make(map[int64]bool, len(docs))
	ids := make([]int64, 0, len(docs))
	for _, doc := range docs {
		if !idSet[doc.PharmacyID] {
			idSet[doc.PharmacyID] = true
			ids = append(ids, doc.PharmacyID)
		}
	}

	cursor, err := r.db.Pharmacies.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var pharmacyDocs []PharmacyDocument
	if err := cursor.All(ctx, &pharmacyDocs); err != nil {
		return nil, err
	}

	pharmacies := make(map[int64]model.Pharmacy, len(pharmacyDocs))
	for _, doc := range pharmacyDocs {
		pharmacy, err := doc.ToModel()
		if err != nil {
			return nil, err
		}
		pharmacies[pharmacy.ID] = pharmacy
	}
	return pharmacies, nil
}
