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

type OrderRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	repo := &OrderRepository{
		collection: db.Collection("orders"),
		counters:   db.Collection("counters"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *OrderRepository) ensureIndexes(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "order_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "stage", Value: 1}}},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) error {
	order.UpdatedAt = time.Now().UTC()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": order.ID}
	update := bson.M{"$set": order}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	var order domain.Order
	err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &order, err
}

func (r *OrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	var order domain.Order
	err := r.collection.FindOne(ctx, bson.M{"order_number": orderNumber}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &order, err
}

func (r *OrderRepository) List(ctx context.Context, filter domain.OrderFilter, skip, limit int64) ([]*domain.Order, int64, error) {
	query := bson.M{}
	if filter.Stage != "" {
		query["stage"] = filter.Stage
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.ClientID != "" {
		query["client_id"] = filter.ClientID
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var orders []*domain.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *OrderRepository) CountByStage(ctx context.Context) (map[domain.Stage]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$stage", "count": bson.M{"$sum": 1}}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Stage domain.Stage `bson:"_id"`
		Count int64        `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[domain.Stage]int64, len(rows))
	for _, row := range rows {
		counts[row.Stage] = row.Count
	}
	return counts, nil
}

// NextOrderNumber increments a per-year counter document and formats the
// sequence as ADM-YYYY-NNNN. The upsert makes the first call of a year create
// the counter.
func (r *OrderRepository) NextOrderNumber(ctx context.Context, year int) (string, error) {
	filter := bson.M{"_id": fmt.Sprintf("order-%d", year)}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := r.counters.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		return "", fmt.Errorf("failed to allocate order number: %w", err)
	}
	return fmt.Sprintf("ADM-%d-%04d", year, counter.Seq), nil
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

// ArchivedOrderRepository stores cleared order snapshots. Snapshots are
// written once and never updated.
type ArchivedOrderRepository struct {
	collection *mongo.Collection
}

func NewArchivedOrderRepository(db *mongo.Database) *ArchivedOrderRepository {
	repo := &ArchivedOrderRepository{collection: db.Collection("archived_orders")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *ArchivedOrderRepository) ensureIndexes(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "order_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "cleared_at", Value: -1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *ArchivedOrderRepository) Save(ctx context.Context, archived *domain.ArchivedOrder) error {
	if _, err := r.collection.InsertOne(ctx, archived); err != nil {
		return fmt.Errorf("failed to save archived order: %w", err)
	}
	return nil
}

func (r *ArchivedOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.ArchivedOrder, error) {
	var archived domain.ArchivedOrder
	err := r.collection.FindOne(ctx, bson.M{"order_number": orderNumber}).Decode(&archived)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &archived, err
}

func (r *ArchivedOrderRepository) List(ctx context.Context, clientID string, skip, limit int64) ([]*domain.ArchivedOrder, int64, error) {
	query := bson.M{}
	if clientID != "" {
		query["client_id"] = clientID
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "cleared_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var archived []*domain.ArchivedOrder
	if err := cursor.All(ctx, &archived); err != nil {
		return nil, 0, err
	}
	return archived, total, nil
}
