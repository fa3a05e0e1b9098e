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

type LeaveRepository struct {
	collection *mongo.Collection
}

func NewLeaveRepository(db *mongo.Database) *LeaveRepository {
	repo := &LeaveRepository{collection: db.Collection("leave_requests")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *LeaveRepository) ensureIndexes(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "start_date", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *LeaveRepository) Save(ctx context.Context, request *domain.LeaveRequest) error {
	request.UpdatedAt = time.Now().UTC()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": request.ID}
	update := bson.M{"$set": request}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save leave request: %w", err)
	}
	return nil
}

func (r *LeaveRepository) FindByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	var request domain.LeaveRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&request)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &request, err
}

func (r *LeaveRepository) List(ctx context.Context, employeeID string, status domain.LeaveStatus, skip, limit int64) ([]*domain.LeaveRequest, int64, error) {
	query := bson.M{}
	if employeeID != "" {
		query["employee_id"] = employeeID
	}
	if status != "" {
		query["status"] = status
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "start_date", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var requests []*domain.LeaveRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// TransitionStatus flips the status only when the request is still in the
// expected state and returns the pre-image. Returns (nil, nil) when no
// document matched.
func (r *LeaveRepository) TransitionStatus(ctx context.Context, id string, from, to domain.LeaveStatus, decidedBy, note string) (*domain.LeaveRequest, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	now := time.Now().UTC()
	set := bson.M{
		"status":     to,
		"decided_by": decidedBy,
		"decided_at": now,
		"updated_at": now,
	}
	if note != "" {
		set["decision_note"] = note
	}

	filter := bson.M{"_id": oid, "status": from}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var previous domain.LeaveRequest
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&previous)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to transition leave request: %w", err)
	}
	return &previous, nil
}

// LeaveAdjustmentRepository is the append-only audit trail of manual balance
// corrections.
type LeaveAdjustmentRepository struct {
	collection *mongo.Collection
}

func NewLeaveAdjustmentRepository(db *mongo.Database) *LeaveAdjustmentRepository {
	repo := &LeaveAdjustmentRepository{collection: db.Collection("leave_adjustments")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *LeaveAdjustmentRepository) ensureIndexes(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *LeaveAdjustmentRepository) Save(ctx context.Context, adjustment *domain.LeaveAdjustment) error {
	if _, err := r.collection.InsertOne(ctx, adjustment); err != nil {
		return fmt.Errorf("failed to save leave adjustment: %w", err)
	}
	return nil
}

func (r *LeaveAdjustmentRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.LeaveAdjustment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"employee_id": employeeID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var adjustments []*domain.LeaveAdjustment
	err = cursor.All(ctx, &adjustments)
	return adjustments, err
}
