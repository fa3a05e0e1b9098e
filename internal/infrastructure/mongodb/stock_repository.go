package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/domain"
)

type StockRepository struct {
	collection *mongo.Collection
}

func NewStockRepository(db *mongo.Database) *StockRepository {
	repo := &StockRepository{collection: db.Collection("stock_entries")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *StockRepository) ensureIndexes(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "product_code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "is_archived", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *StockRepository) Save(ctx context.Context, entry *domain.StockEntry) error {
	entry.UpdatedAt = time.Now().UTC()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": entry.ID}
	update := bson.M{"$set": entry}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save stock entry: %w", err)
	}
	return nil
}

func (r *StockRepository) FindByID(ctx context.Context, id string) (*domain.StockEntry, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	var entry domain.StockEntry
	err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &entry, err
}

func (r *StockRepository) FindByProductCode(ctx context.Context, productCode string) (*domain.StockEntry, error) {
	var entry domain.StockEntry
	err := r.collection.FindOne(ctx, bson.M{"product_code": productCode}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &entry, err
}

func (r *StockRepository) List(ctx context.Context, clientID string, lowOnly bool, skip, limit int64) ([]*domain.StockEntry, int64, error) {
	query := bson.M{"is_archived": false}
	if clientID != "" {
		query["client_id"] = clientID
	}
	if lowOnly {
		query["minimum_stock_level"] = bson.M{"$gt": 0}
		query["$expr"] = bson.M{"$lte": bson.A{"$quantity_on_hand", "$minimum_stock_level"}}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "product_code", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var entries []*domain.StockEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// AdjustQuantity applies a signed delta to the cached balance. Decrements
// only match when the balance covers the delta, so a failed match means
// insufficient stock rather than a lost update. Returns (nil, nil) when no
// document matched.
func (r *StockRepository) AdjustQuantity(ctx context.Context, id string, delta float64) (*domain.StockEntry, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	filter := bson.M{"_id": oid, "is_archived": false}
	if delta < 0 {
		filter["quantity_on_hand"] = bson.M{"$gte": -delta}
	}
	update := bson.M{
		"$inc": bson.M{"quantity_on_hand": delta},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var entry domain.StockEntry
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to adjust stock quantity: %w", err)
	}
	return &entry, nil
}

func (r *StockRepository) Archive(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}
	update := bson.M{"$set": bson.M{"is_archived": true, "updated_at": time.Now().UTC()}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}
