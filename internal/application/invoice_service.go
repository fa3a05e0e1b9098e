package application

import (
	"context"
	"fmt"
	"time"

	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/domain"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/api"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/errors"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/kafka"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/logging"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/metrics"
)

// InvoiceService raises invoices from orders and pushes them to the
// accounting provider
type InvoiceService struct {
	invoices domain.InvoiceRepository
	orders   domain.OrderRepository
	pusher   InvoicePusher
	producer EventPublisher
	topic    string
	metrics  *metrics.Metrics
	logger   *logging.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoices domain.InvoiceRepository,
	orders domain.OrderRepository,
	pusher InvoicePusher,
	producer EventPublisher,
	topic string,
	m *metrics.Metrics,
	logger *logging.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoices: invoices,
		orders:   orders,
		pusher:   pusher,
		producer: producer,
		topic:    topic,
		metrics:  m,
		logger:   logger,
	}
}

// CreateInvoice raises an invoice from an order that has reached invoicing.
// One order carries at most one invoice.
func (s *InvoiceService) CreateInvoice(ctx context.Context, cmd CreateInvoiceCommand) (*InvoiceDTO, error) {
	order, err := s.orders.FindByID(ctx, cmd.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, errors.ErrNotFoundWithID("order", cmd.OrderID)
	}

	existing, err := s.invoices.FindByOrder(ctx, cmd.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to check invoice: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrConflict(fmt.Sprintf("order %s already has invoice %s", order.OrderNumber, existing.InvoiceNumber))
	}

	number, err := s.invoices.NextInvoiceNumber(ctx, time.Now().UTC().Year())
	if err != nil {
		return nil, fmt.Errorf("failed to allocate invoice number: %w", err)
	}

	invoice, err := domain.NewInvoiceFromOrder(number, order)
	if err != nil {
		return nil, errors.MapDomainError(err)
	}

	if err := s.invoices.Save(ctx, invoice); err != nil {
		s.logger.WithError(err).Error("Failed to save invoice", "orderNumber", order.OrderNumber)
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.logger.Info("Created invoice", "invoiceNumber", invoice.InvoiceNumber, "orderNumber", order.OrderNumber, "total", invoice.Total)
	return ToInvoiceDTO(invoice), nil
}

// GetInvoice retrieves an invoice by ID
func (s *InvoiceService) GetInvoice(ctx context.Context, id string) (*InvoiceDTO, error) {
	invoice, err := s.findInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceDTO(invoice), nil
}

// ListInvoices lists invoices, optionally by sync status
func (s *InvoiceService) ListInvoices(ctx context.Context, status domain.SyncStatus, page api.PageRequest) (api.PageResponse[*InvoiceDTO], error) {
	invoices, total, err := s.invoices.List(ctx, status, page.Skip(), page.Limit())
	if err != nil {
		return api.PageResponse[*InvoiceDTO]{}, fmt.Errorf("failed to list invoices: %w", err)
	}

	dtos := make([]*InvoiceDTO, 0, len(invoices))
	for _, i := range invoices {
		dtos = append(dtos, ToInvoiceDTO(i))
	}
	return api.NewPageResponse(dtos, page.Page, page.PageSize, total), nil
}

// SyncInvoice pushes an invoice to the accounting provider. Pending and failed
// invoices may be synced, a synced invoice is a conflict. The push result is
// persisted either way.
func (s *InvoiceService) SyncInvoice(ctx context.Context, cmd SyncInvoiceCommand) (*InvoiceDTO, error) {
	invoice, err := s.findInvoice(ctx, cmd.InvoiceID)
	if err != nil {
		return nil, err
	}
	if !invoice.CanSync() {
		return nil, errors.ErrConflict(fmt.Sprintf("invoice %s is already synced", invoice.InvoiceNumber))
	}

	payload := buildInvoicePayload(invoice)
	externalID, pushErr := s.pusher.PushInvoice(ctx, payload)
	if pushErr != nil {
		invoice.MarkSyncFailed(pushErr.Error())
		if saveErr := s.invoices.Save(ctx, invoice); saveErr != nil {
			s.logger.WithError(saveErr).Error("Failed to record sync failure", "invoiceNumber", invoice.InvoiceNumber)
			return nil, fmt.Errorf("failed to record sync failure: %w", saveErr)
		}
		if s.metrics != nil {
			s.metrics.RecordInvoiceSync(false)
		}
		s.logger.WithError(pushErr).Warn("Invoice sync failed", "invoiceNumber", invoice.InvoiceNumber)
		return nil, errors.ErrServiceUnavailable("xero").Wrap(pushErr)
	}

	if err := invoice.MarkSynced(externalID); err != nil {
		return nil, errors.MapDomainError(err)
	}
	if err := s.invoices.Save(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	if s.metrics != nil {
		s.metrics.RecordInvoiceSync(true)
	}
	s.logger.Audit(ctx, "invoice.synced", "invoice", invoice.ID.Hex(), cmd.SyncedBy, map[string]any{
		"invoiceNumber": invoice.InvoiceNumber,
		"xeroInvoiceId": externalID,
	})
	s.publishSynced(ctx, invoice)

	return ToInvoiceDTO(invoice), nil
}

func (s *InvoiceService) findInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	invoice, err := s.invoices.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if invoice == nil {
		return nil, errors.ErrNotFoundWithID("invoice", id)
	}
	return invoice, nil
}

func (s *InvoiceService) publishSynced(ctx context.Context, invoice *domain.Invoice) {
	if s.producer == nil {
		return
	}
	event := domain.InvoiceSyncedEvent{
		BaseEvent:     domain.BaseEvent{Type: domain.EventInvoiceSynced, ID: invoice.ID.Hex(), Timestamp: nowUTC()},
		InvoiceNumber: invoice.InvoiceNumber,
		ExternalID:    invoice.XeroInvoiceID,
	}
	evt := kafka.NewEvent(event.EventType(), eventSource, invoice.InvoiceNumber, event)
	if err := s.producer.PublishEvent(ctx, s.topic, evt); err != nil {
		s.logger.WithError(err).Warn("Failed to publish invoice event", "type", event.EventType())
	}
}

func buildInvoicePayload(invoice *domain.Invoice) InvoicePayload {
	lines := make([]InvoicePayloadLine, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		lines = append(lines, InvoicePayloadLine{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitAmount:  item.UnitPrice,
			LineAmount:  item.LineTotal,
		})
	}
	return InvoicePayload{
		InvoiceNumber: invoice.InvoiceNumber,
		ClientName:    invoice.ClientName,
		Reference:     invoice.OrderNumber,
		LineItems:     lines,
		SubTotal:      invoice.Subtotal,
		TotalTax:      invoice.GST,
		Total:         invoice.Total,
	}
}
