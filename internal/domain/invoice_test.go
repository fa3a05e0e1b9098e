package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvoiceFromOrder(t *testing.T) {
	order := createTestOrder(t)

	// Too early on the board
	_, err := NewInvoiceFromOrder("INV-2025-0001", order)
	assert.ErrorIs(t, err, ErrOrderNotInvoiceable)

	require.NoError(t, order.JumpToStage(StageInvoicing, "manager"))

	inv, err := NewInvoiceFromOrder("INV-2025-0001", order)
	require.NoError(t, err)
	assert.Equal(t, SyncPending, inv.SyncStatus)
	assert.Equal(t, order.Subtotal, inv.Subtotal)
	assert.Equal(t, order.GST, inv.GST)
	assert.Equal(t, order.Total, inv.Total)
	assert.Equal(t, order.OrderNumber, inv.OrderNumber)
	assert.True(t, inv.CanSync())
}

func TestInvoiceSyncTransitions(t *testing.T) {
	order := createTestOrder(t)
	require.NoError(t, order.JumpToStage(StageInvoicing, "manager"))
	inv, err := NewInvoiceFromOrder("INV-2025-0001", order)
	require.NoError(t, err)

	inv.MarkSyncFailed("xero: 503 service unavailable")
	assert.Equal(t, SyncFailed, inv.SyncStatus)
	assert.Equal(t, "xero: 503 service unavailable", inv.LastSyncError)
	assert.True(t, inv.CanSync())

	require.NoError(t, inv.MarkSynced("xero-abc-123"))
	assert.Equal(t, SyncSynced, inv.SyncStatus)
	assert.Equal(t, "xero-abc-123", inv.XeroInvoiceID)
	assert.Empty(t, inv.LastSyncError)
	assert.NotNil(t, inv.LastSyncedAt)
	assert.False(t, inv.CanSync())

	// Re-syncing a synced invoice is rejected
	assert.ErrorIs(t, inv.MarkSynced("xero-other"), ErrInvoiceNotSyncable)
}
