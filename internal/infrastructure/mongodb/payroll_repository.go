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

// PayrollRepository stores pay records. A record is written once when a
// timesheet is approved and never changed, the unique timesheet index backs
// up the approval guard.
type PayrollRepository struct {
	collection *mongo.Collection
}

func NewPayrollRepository(db *mongo.Database) *PayrollRepository {
	repo := &PayrollRepository{collection: db.Collection("payroll_records")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *PayrollRepository) ensureIndexes(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "timesheet_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "employee_id", Value: 1}, {Key: "week_starting", Value: 1}}},
		{Keys: bson.D{{Key: "week_starting", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *PayrollRepository) Save(ctx context.Context, record *domain.PayrollRecord) error {
	if _, err := r.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to save payroll record: %w", err)
	}
	return nil
}

func (r *PayrollRepository) FindByID(ctx context.Context, id string) (*domain.PayrollRecord, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	var record domain.PayrollRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &record, err
}

func (r *PayrollRepository) FindByTimesheet(ctx context.Context, timesheetID string) (*domain.PayrollRecord, error) {
	var record domain.PayrollRecord
	err := r.collection.FindOne(ctx, bson.M{"timesheet_id": timesheetID}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &record, err
}

func (r *PayrollRepository) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]*domain.PayrollRecord, error) {
	query := bson.M{
		"employee_id":   employeeID,
		"week_starting": bson.M{"$gte": from, "$lte": to},
	}
	return r.find(ctx, query)
}

func (r *PayrollRepository) ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.PayrollRecord, error) {
	query := bson.M{"week_starting": bson.M{"$gte": from, "$lte": to}}
	return r.find(ctx, query)
}

func (r *PayrollRepository) find(ctx context.Context, query bson.M) ([]*domain.PayrollRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "week_starting", Value: 1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*domain.PayrollRecord
	err = cursor.All(ctx, &records)
	return records, err
}
