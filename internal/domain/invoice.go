package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SyncStatus represents the state of an invoice against the accounting provider
type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncSynced  SyncStatus = "synced"
	SyncFailed  SyncStatus = "failed"
)

// IsValid checks if the sync status is valid
func (s SyncStatus) IsValid() bool {
	switch s {
	case SyncPending, SyncSynced, SyncFailed:
		return true
	default:
		return false
	}
}

// Invoice is raised from an order once it reaches invoicing
type Invoice struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InvoiceNumber string             `bson:"invoice_number" json:"invoice_number"`
	OrderID       string             `bson:"order_id" json:"order_id"`
	OrderNumber   string             `bson:"order_number" json:"order_number"`
	ClientID      string             `bson:"client_id" json:"client_id"`
	ClientName    string             `bson:"client_name" json:"client_name"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Subtotal      float64            `bson:"subtotal" json:"subtotal"`
	GST           float64            `bson:"gst" json:"gst"`
	Total         float64            `bson:"total" json:"total"`
	SyncStatus    SyncStatus         `bson:"sync_status" json:"sync_status"`
	XeroInvoiceID string             `bson:"xero_invoice_id,omitempty" json:"xero_invoice_id,omitempty"`
	LastSyncError string             `bson:"last_sync_error,omitempty" json:"last_sync_error,omitempty"`
	LastSyncedAt  *time.Time         `bson:"last_synced_at,omitempty" json:"last_synced_at,omitempty"`
	IssuedAt      time.Time          `bson:"issued_at" json:"issued_at"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// NewInvoiceFromOrder raises an invoice from an order that has reached
// invoicing. Totals are recomputed from the line items rather than copied.
func NewInvoiceFromOrder(invoiceNumber string, o *Order) (*Invoice, error) {
	idx := o.Stage.Index()
	if idx >= 0 && idx < StageInvoicing.Index() {
		return nil, ErrOrderNotInvoiceable
	}

	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(
			decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromFloat(item.Quantity)))
	}
	gst := subtotal.Mul(GSTRate)

	now := time.Now().UTC()
	return &Invoice{
		ID:            primitive.NewObjectID(),
		InvoiceNumber: invoiceNumber,
		OrderID:       o.ID.Hex(),
		OrderNumber:   o.OrderNumber,
		ClientID:      o.ClientID,
		ClientName:    o.ClientName,
		Items:         o.Items,
		Subtotal:      subtotal.Round(2).InexactFloat64(),
		GST:           gst.Round(2).InexactFloat64(),
		Total:         subtotal.Add(gst).Round(2).InexactFloat64(),
		SyncStatus:    SyncPending,
		IssuedAt:      now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// MarkSynced records a successful push to the accounting provider
func (i *Invoice) MarkSynced(xeroInvoiceID string) error {
	if i.SyncStatus == SyncSynced {
		return ErrInvoiceNotSyncable
	}
	now := time.Now().UTC()
	i.SyncStatus = SyncSynced
	i.XeroInvoiceID = xeroInvoiceID
	i.LastSyncError = ""
	i.LastSyncedAt = &now
	i.UpdatedAt = now
	return nil
}

// MarkSyncFailed records a failed push. Failed invoices may be retried.
func (i *Invoice) MarkSyncFailed(reason string) {
	now := time.Now().UTC()
	i.SyncStatus = SyncFailed
	i.LastSyncError = reason
	i.UpdatedAt = now
}

// CanSync reports whether a sync attempt is allowed
func (i *Invoice) CanSync() bool {
	return i.SyncStatus == SyncPending || i.SyncStatus == SyncFailed
}
