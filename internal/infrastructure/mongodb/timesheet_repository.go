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

type TimesheetRepository struct {
	collection *mongo.Collection
}

func NewTimesheetRepository(db *mongo.Database) *TimesheetRepository {
	repo := &TimesheetRepository{collection: db.Collection("timesheets")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *TimesheetRepository) ensureIndexes(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "week_starting", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *TimesheetRepository) Save(ctx context.Context, timesheet *domain.Timesheet) error {
	timesheet.UpdatedAt = time.Now().UTC()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": timesheet.ID}
	update := bson.M{"$set": timesheet}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save timesheet: %w", err)
	}
	return nil
}

func (r *TimesheetRepository) FindByID(ctx context.Context, id string) (*domain.Timesheet, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	var timesheet domain.Timesheet
	err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&timesheet)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &timesheet, err
}

func (r *TimesheetRepository) List(ctx context.Context, employeeID string, status domain.TimesheetStatus, skip, limit int64) ([]*domain.Timesheet, int64, error) {
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
		SetSort(bson.D{{Key: "week_starting", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var timesheets []*domain.Timesheet
	if err := cursor.All(ctx, &timesheets); err != nil {
		return nil, 0, err
	}
	return timesheets, total, nil
}

func (r *TimesheetRepository) FindByEmployeeAndWeek(ctx context.Context, employeeID string, weekStarting time.Time) (*domain.Timesheet, error) {
	var timesheet domain.Timesheet
	err := r.collection.FindOne(ctx, bson.M{"employee_id": employeeID, "week_starting": weekStarting}).Decode(&timesheet)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &timesheet, err
}

// TransitionStatus flips the status only when the document is still in the
// expected state and returns the document as it was before the update. Two
// racing approvals both filter on the submitted status, so only the first one
// matches. Returns (nil, nil) when no document matched.
func (r *TimesheetRepository) TransitionStatus(ctx context.Context, id string, from, to domain.TimesheetStatus, decidedBy, reason string) (*domain.Timesheet, error) {
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
	if reason != "" {
		set["reject_reason"] = reason
	}

	filter := bson.M{"_id": oid, "status": from}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var previous domain.Timesheet
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&previous)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to transition timesheet: %w", err)
	}
	return &previous, nil
}

func (r *TimesheetRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
