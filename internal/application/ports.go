package application

import (
	"context"
	"time"

	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/kafka"
)

func nowUTC() time.Time { return time.Now().UTC() }

// eventSource identifies this service on published events
const eventSource = "backoffice-api"

// TxRunner executes fn inside a storage transaction. The mongodb client
// satisfies it; unit tests substitute a pass-through.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher publishes lifecycle events. *kafka.Producer satisfies it.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic string, event *kafka.Event) error
}

// InvoicePusher sends an invoice payload to the accounting provider and
// returns the provider's invoice id.
type InvoicePusher interface {
	PushInvoice(ctx context.Context, payload InvoicePayload) (string, error)
}

// InvoicePayload is the wire shape sent to the accounting provider
type InvoicePayload struct {
	InvoiceNumber string               `json:"invoiceNumber"`
	ClientName    string               `json:"contact"`
	Reference     string               `json:"reference"`
	LineItems     []InvoicePayloadLine `json:"lineItems"`
	SubTotal      float64              `json:"subTotal"`
	TotalTax      float64              `json:"totalTax"`
	Total         float64              `json:"total"`
}

// InvoicePayloadLine is one invoice line on the wire
type InvoicePayloadLine struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitAmount  float64 `json:"unitAmount"`
	LineAmount  float64 `json:"lineAmount"`
}
