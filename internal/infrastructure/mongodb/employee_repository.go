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

type EmployeeRepository struct {
	collection *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	repo := &EmployeeRepository{collection: db.Collection("employees")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *EmployeeRepository) ensureIndexes(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "is_active", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func balanceField(leaveType domain.LeaveType) string {
	return "leave_balances." + string(leaveType)
}

func (r *EmployeeRepository) Save(ctx context.Context, employee *domain.EmployeeProfile) error {
	employee.UpdatedAt = time.Now().UTC()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": employee.ID}
	update := bson.M{"$set": employee}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*domain.EmployeeProfile, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	var employee domain.EmployeeProfile
	err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&employee)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &employee, err
}

func (r *EmployeeRepository) List(ctx context.Context, activeOnly bool, skip, limit int64) ([]*domain.EmployeeProfile, int64, error) {
	query := bson.M{}
	if activeOnly {
		query["is_active"] = true
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var employees []*domain.EmployeeProfile
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// DebitLeave decrements a balance only when it covers the requested hours.
// Returns (nil, nil) when the filter did not match, which callers treat as an
// insufficient balance.
func (r *EmployeeRepository) DebitLeave(ctx context.Context, id string, leaveType domain.LeaveType, hours float64) (*domain.EmployeeProfile, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	field := balanceField(leaveType)
	filter := bson.M{"_id": oid, field: bson.M{"$gte": hours}}
	update := bson.M{
		"$inc": bson.M{field: -hours},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *EmployeeRepository) CreditLeave(ctx context.Context, id string, leaveType domain.LeaveType, hours float64) (*domain.EmployeeProfile, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	field := balanceField(leaveType)
	update := bson.M{
		"$inc": bson.M{field: hours},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": oid}, update)
}

// AdjustLeave applies a signed correction. Negative deltas only match when
// the resulting balance stays non-negative. Returns (nil, nil) on no match.
func (r *EmployeeRepository) AdjustLeave(ctx context.Context, id string, leaveType domain.LeaveType, delta float64) (*domain.EmployeeProfile, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	field := balanceField(leaveType)
	filter := bson.M{"_id": oid}
	if delta < 0 {
		filter[field] = bson.M{"$gte": -delta}
	}
	update := bson.M{
		"$inc": bson.M{field: delta},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *EmployeeRepository) AccrueLeave(ctx context.Context, id string, annual, sick float64) error {
	oid, ok := objectID(id)
	if !ok {
		return fmt.Errorf("employee %s not found", id)
	}

	update := bson.M{
		"$inc": bson.M{
			balanceField(domain.LeaveAnnual): annual,
			balanceField(domain.LeaveSick):   sick,
		},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to accrue leave: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("employee %s not found", id)
	}
	return nil
}

func (r *EmployeeRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M) (*domain.EmployeeProfile, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var employee domain.EmployeeProfile
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&employee)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update leave balance: %w", err)
	}
	return &employee, nil
}
