package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/domain"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/errors"
)

func newTestInvoiceService(invoices *stubInvoiceRepo, orders *stubOrderRepo, pusher *stubPusher) *InvoiceService {
	return NewInvoiceService(invoices, orders, pusher, nil, "", nil, testLogger())
}

func invoiceableOrder(t *testing.T) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder("ADM-2025-0042", "client-1", "Acme Paper", []domain.OrderItem{
		{ProductID: "prod-1", ProductCode: "THERM-80", Description: "Thermal roll 80mm", Quantity: 100, UnitPrice: 1.25},
		{ProductID: "prod-2", ProductCode: "CORE-76", Description: "Core 76mm", Quantity: 40, UnitPrice: 0.55},
	}, time.Now().Add(7*24*time.Hour), "sales")
	require.NoError(t, err)
	order.Stage = domain.StageInvoicing
	order.ClearDomainEvents()
	return order
}

func TestCreateInvoiceComputesTotals(t *testing.T) {
	order := invoiceableOrder(t)
	var saved *domain.Invoice

	orders := &stubOrderRepo{
		FindByIDFn: func(ctx context.Context, id string) (*domain.Order, error) {
			return order, nil
		},
	}
	invoices := &stubInvoiceRepo{
		NextInvoiceNumberFn: func(ctx context.Context, year int) (string, error) {
			return fmt.Sprintf("INV-%d-0042", year), nil
		},
		SaveFn: func(ctx context.Context, i *domain.Invoice) error {
			saved = i
			return nil
		},
	}
	svc := newTestInvoiceService(invoices, orders, &stubPusher{})

	dto, err := svc.CreateInvoice(context.Background(), CreateInvoiceCommand{OrderID: order.ID.Hex(), CreatedBy: "manager"})

	require.NoError(t, err)
	// 100*1.25 + 40*0.55 = 147.00, GST 10%
	assert.Equal(t, 147.00, dto.Subtotal)
	assert.Equal(t, 14.70, dto.GST)
	assert.Equal(t, 161.70, dto.Total)
	assert.Equal(t, string(domain.SyncPending), dto.SyncStatus)
	require.NotNil(t, saved)
	assert.Equal(t, "ADM-2025-0042", saved.OrderNumber)
}

func TestCreateInvoiceRejectsSecondInvoiceForOrder(t *testing.T) {
	order := invoiceableOrder(t)
	existing, err := domain.NewInvoiceFromOrder("INV-2025-0001", order)
	require.NoError(t, err)

	orders := &stubOrderRepo{
		FindByIDFn: func(ctx context.Context, id string) (*domain.Order, error) {
			return order, nil
		},
	}
	invoices := &stubInvoiceRepo{
		FindByOrderFn: func(ctx context.Context, orderID string) (*domain.Invoice, error) {
			return existing, nil
		},
		SaveFn: func(ctx context.Context, i *domain.Invoice) error {
			t.Fatal("a second invoice must not be saved")
			return nil
		},
	}
	svc := newTestInvoiceService(invoices, orders, &stubPusher{})

	_, err = svc.CreateInvoice(context.Background(), CreateInvoiceCommand{OrderID: order.ID.Hex(), CreatedBy: "manager"})

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeConflict, appErr.Code)
}

func TestCreateInvoiceRejectsOrderBeforeInvoicing(t *testing.T) {
	order := invoiceableOrder(t)
	order.Stage = domain.StageWinding

	orders := &stubOrderRepo{
		FindByIDFn: func(ctx context.Context, id string) (*domain.Order, error) {
			return order, nil
		},
	}
	svc := newTestInvoiceService(&stubInvoiceRepo{}, orders, &stubPusher{})

	_, err := svc.CreateInvoice(context.Background(), CreateInvoiceCommand{OrderID: order.ID.Hex(), CreatedBy: "manager"})

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeInvalidState, appErr.Code)
}

func TestSyncInvoiceRecordsExternalID(t *testing.T) {
	order := invoiceableOrder(t)
	invoice, err := domain.NewInvoiceFromOrder("INV-2025-0042", order)
	require.NoError(t, err)

	var saved *domain.Invoice
	invoices := &stubInvoiceRepo{
		FindByIDFn: func(ctx context.Context, id string) (*domain.Invoice, error) {
			return invoice, nil
		},
		SaveFn: func(ctx context.Context, i *domain.Invoice) error {
			saved = i
			return nil
		},
	}
	pusher := &stubPusher{
		PushInvoiceFn: func(ctx context.Context, payload InvoicePayload) (string, error) {
			assert.Equal(t, "INV-2025-0042", payload.InvoiceNumber)
			assert.Equal(t, "ADM-2025-0042", payload.Reference)
			assert.Len(t, payload.LineItems, 2)
			return "xero-abc", nil
		},
	}
	svc := newTestInvoiceService(invoices, &stubOrderRepo{}, pusher)

	dto, err := svc.SyncInvoice(context.Background(), SyncInvoiceCommand{InvoiceID: invoice.ID.Hex(), SyncedBy: "manager"})

	require.NoError(t, err)
	assert.Equal(t, string(domain.SyncSynced), dto.SyncStatus)
	assert.Equal(t, "xero-abc", dto.XeroInvoiceID)
	require.NotNil(t, saved)
	require.NotNil(t, saved.LastSyncedAt)
}

func TestSyncInvoicePersistsFailure(t *testing.T) {
	order := invoiceableOrder(t)
	invoice, err := domain.NewInvoiceFromOrder("INV-2025-0042", order)
	require.NoError(t, err)

	var saved *domain.Invoice
	invoices := &stubInvoiceRepo{
		FindByIDFn: func(ctx context.Context, id string) (*domain.Invoice, error) {
			return invoice, nil
		},
		SaveFn: func(ctx context.Context, i *domain.Invoice) error {
			saved = i
			return nil
		},
	}
	pusher := &stubPusher{
		PushInvoiceFn: func(ctx context.Context, payload InvoicePayload) (string, error) {
			return "", fmt.Errorf("xero: 503")
		},
	}
	svc := newTestInvoiceService(invoices, &stubOrderRepo{}, pusher)

	_, err = svc.SyncInvoice(context.Background(), SyncInvoiceCommand{InvoiceID: invoice.ID.Hex(), SyncedBy: "manager"})

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeServiceUnavailable, appErr.Code)
	require.NotNil(t, saved)
	assert.Equal(t, domain.SyncFailed, saved.SyncStatus)
	assert.Equal(t, "xero: 503", saved.LastSyncError)
}

func TestSyncInvoiceRejectsAlreadySynced(t *testing.T) {
	order := invoiceableOrder(t)
	invoice, err := domain.NewInvoiceFromOrder("INV-2025-0042", order)
	require.NoError(t, err)
	require.NoError(t, invoice.MarkSynced("xero-abc"))

	invoices := &stubInvoiceRepo{
		FindByIDFn: func(ctx context.Context, id string) (*domain.Invoice, error) {
			return invoice, nil
		},
	}
	pusher := &stubPusher{
		PushInvoiceFn: func(ctx context.Context, payload InvoicePayload) (string, error) {
			t.Fatal("a synced invoice must not be pushed again")
			return "", nil
		},
	}
	svc := newTestInvoiceService(invoices, &stubOrderRepo{}, pusher)

	_, err = svc.SyncInvoice(context.Background(), SyncInvoiceCommand{InvoiceID: invoice.ID.Hex(), SyncedBy: "manager"})

	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeConflict, appErr.Code)
}

func TestSyncFailedInvoiceMayRetry(t *testing.T) {
	order := invoiceableOrder(t)
	invoice, err := domain.NewInvoiceFromOrder("INV-2025-0042", order)
	require.NoError(t, err)
	invoice.MarkSyncFailed("xero: 503")

	invoices := &stubInvoiceRepo{
		FindByIDFn: func(ctx context.Context, id string) (*domain.Invoice, error) {
			return invoice, nil
		},
		SaveFn: func(ctx context.Context, i *domain.Invoice) error {
			return nil
		},
	}
	svc := newTestInvoiceService(invoices, &stubOrderRepo{}, &stubPusher{})

	dto, err := svc.SyncInvoice(context.Background(), SyncInvoiceCommand{InvoiceID: invoice.ID.Hex(), SyncedBy: "manager"})

	require.NoError(t, err)
	assert.Equal(t, string(domain.SyncSynced), dto.SyncStatus)
	assert.Empty(t, dto.LastSyncError)
}
