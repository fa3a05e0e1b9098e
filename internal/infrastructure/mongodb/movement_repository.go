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

// MovementRepository is the append-only stock ledger. Rows are never updated
// except to flip the archive flag.
type MovementRepository struct {
	collection *mongo.Collection
}

func NewMovementRepository(db *mongo.Database) *MovementRepository {
	repo := &MovementRepository{collection: db.Collection("stock_movements")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *MovementRepository) ensureIndexes(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "stock_id", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "order_id", Value: 1}, {Key: "is_archived", Value: 1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *MovementRepository) Append(ctx context.Context, movement *domain.StockMovement) error {
	if _, err := r.collection.InsertOne(ctx, movement); err != nil {
		return fmt.Errorf("failed to append movement: %w", err)
	}
	return nil
}

func (r *MovementRepository) FindByID(ctx context.Context, id string) (*domain.StockMovement, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	var movement domain.StockMovement
	err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&movement)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &movement, err
}

func (r *MovementRepository) List(ctx context.Context, filter domain.MovementFilter, skip, limit int64) ([]*domain.StockMovement, int64, error) {
	query := bson.M{}
	if filter.StockID != "" {
		query["stock_id"] = filter.StockID
	}
	if filter.OrderID != "" {
		query["order_id"] = filter.OrderID
	}
	if filter.Type != "" {
		query["type"] = filter.Type
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var movements []*domain.StockMovement
	if err := cursor.All(ctx, &movements); err != nil {
		return nil, 0, err
	}
	return movements, total, nil
}

func (r *MovementRepository) FindActiveAllocationsByOrder(ctx context.Context, orderID string) ([]*domain.StockMovement, error) {
	query := bson.M{
		"order_id":    orderID,
		"type":        domain.MovementAllocation,
		"is_archived": false,
	}
	cursor, err := r.collection.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var movements []*domain.StockMovement
	err = cursor.All(ctx, &movements)
	return movements, err
}

// ArchiveByOrder archives every non-archived movement referencing the order
// and returns how many rows changed. Re-running matches nothing and is safe.
func (r *MovementRepository) ArchiveByOrder(ctx context.Context, orderID, archivedBy string) (int64, error) {
	filter := bson.M{"order_id": orderID, "is_archived": false}
	update := bson.M{"$set": bson.M{
		"is_archived": true,
		"archived_by": archivedBy,
		"archived_at": time.Now().UTC(),
	}}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to archive movements: %w", err)
	}
	return result.ModifiedCount, nil
}

func (r *MovementRepository) ArchiveOne(ctx context.Context, id, archivedBy string) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}
	update := bson.M{"$set": bson.M{
		"is_archived": true,
		"archived_by": archivedBy,
		"archived_at": time.Now().UTC(),
	}}
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}
