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

type InvoiceRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewInvoiceRepository(db *mongo.Database) *InvoiceRepository {
	repo := &InvoiceRepository{
		collection: db.Collection("invoices"),
		counters:   db.Collection("counters"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *InvoiceRepository) ensureIndexes(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "invoice_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "order_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "sync_status", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *InvoiceRepository) Save(ctx context.Context, invoice *domain.Invoice) error {
	invoice.UpdatedAt = time.Now().UTC()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"_id": invoice.ID}
	update := bson.M{"$set": invoice}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}

	var invoice domain.Invoice
	err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&invoice)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &invoice, err
}

func (r *InvoiceRepository) FindByOrder(ctx context.Context, orderID string) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.collection.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&invoice)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &invoice, err
}

func (r *InvoiceRepository) List(ctx context.Context, status domain.SyncStatus, skip, limit int64) ([]*domain.Invoice, int64, error) {
	query := bson.M{}
	if status != "" {
		query["sync_status"] = status
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(skip).
		SetLimit(limit).
		SetSort(bson.D{{Key: "issued_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var invoices []*domain.Invoice
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, 0, err
	}
	return invoices, total, nil
}

// NextInvoiceNumber increments a per-year counter document and formats the
// sequence as INV-YYYY-NNNN. The upsert makes the first call of a year create
// the counter.
func (r *InvoiceRepository) NextInvoiceNumber(ctx context.Context, year int) (string, error) {
	filter := bson.M{"_id": fmt.Sprintf("invoice-%d", year)}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := r.counters.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		return "", fmt.Errorf("failed to allocate invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%d-%04d", year, counter.Seq), nil
}
