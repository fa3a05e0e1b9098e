package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test fixtures
func createTestItems() []OrderItem {
	return []OrderItem{
		{
			ProductID:   "prod-1",
			ProductCode: "THERM-80",
			Description: "Thermal roll 80mm",
			Quantity:    100,
			UnitPrice:   1.25,
		},
		{
			ProductID:   "prod-2",
			ProductCode: "BOND-76",
			Description: "Bond roll 76mm",
			Quantity:    50,
			UnitPrice:   0.90,
		},
	}
}

func createTestOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder("ADM-2025-0001", "client-1", "Acme Paper", createTestItems(), time.Now().Add(7*24*time.Hour), "sales@misty")
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func TestNewOrder(t *testing.T) {
	tests := []struct {
		name        string
		items       []OrderItem
		expectError error
	}{
		{
			name:        "valid order",
			items:       createTestItems(),
			expectError: nil,
		},
		{
			name:        "no line items",
			items:       []OrderItem{},
			expectError: ErrNoLineItems,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := NewOrder("ADM-2025-0001", "client-1", "Acme Paper", tt.items, time.Now(), "sales@misty")

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, order)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, StageOrderEntered, order.Stage)
			assert.Equal(t, OrderOpen, order.Status)
			assert.Len(t, order.GetDomainEvents(), 1)
			assert.Equal(t, EventOrderCreated, order.GetDomainEvents()[0].EventType())
		})
	}
}

func TestRecalculateTotals(t *testing.T) {
	order := createTestOrder(t)

	// 100 * 1.25 + 50 * 0.90 = 170.00, GST 10% = 17.00
	assert.Equal(t, 170.00, order.Subtotal)
	assert.Equal(t, 17.00, order.GST)
	assert.Equal(t, 187.00, order.Total)
	assert.Equal(t, 125.00, order.Items[0].LineTotal)
	assert.Equal(t, 45.00, order.Items[1].LineTotal)
}

func TestRecalculateTotalsRounding(t *testing.T) {
	order, err := NewOrder("ADM-2025-0002", "client-1", "Acme Paper", []OrderItem{
		{ProductCode: "THERM-80", Quantity: 3, UnitPrice: 0.115},
	}, time.Now(), "sales@misty")
	require.NoError(t, err)

	// 3 * 0.115 = 0.345 exactly, no float drift
	assert.Equal(t, 0.35, order.Subtotal)
	assert.Equal(t, 0.03, order.GST)
	assert.Equal(t, 0.38, order.Total)
}

func TestAdvanceStage(t *testing.T) {
	order := createTestOrder(t)

	expected := []Stage{
		StagePendingMaterial,
		StagePaperSlitting,
		StageWinding,
		StageFinishing,
		StageDelivery,
		StageInvoicing,
		StageCleared,
	}

	for _, want := range expected {
		require.NoError(t, order.AdvanceStage("operator"))
		assert.Equal(t, want, order.Stage)
	}

	// Cannot advance past cleared
	assert.ErrorIs(t, order.AdvanceStage("operator"), ErrOrderCompleted)
	assert.Equal(t, OrderCompleted, order.Status)
	assert.NotNil(t, order.CompletedAt)
	assert.Len(t, order.ProductionLog, len(expected))
}

func TestRegressStage(t *testing.T) {
	order := createTestOrder(t)

	// Cannot go below the first stage
	assert.ErrorIs(t, order.RegressStage("operator"), ErrInvalidStage)

	require.NoError(t, order.AdvanceStage("operator"))
	require.NoError(t, order.RegressStage("operator"))
	assert.Equal(t, StageOrderEntered, order.Stage)
	assert.Len(t, order.ProductionLog, 2)
}

func TestJumpToStage(t *testing.T) {
	tests := []struct {
		name        string
		target      Stage
		expectError error
		wantNote    bool
	}{
		{
			name:        "jump forward skipping stages",
			target:      StageFinishing,
			expectError: nil,
			wantNote:    true,
		},
		{
			name:        "jump to next stage has no skip note",
			target:      StagePendingMaterial,
			expectError: nil,
			wantNote:    false,
		},
		{
			name:        "jump to current stage rejected",
			target:      StageOrderEntered,
			expectError: ErrSameStage,
		},
		{
			name:        "unknown stage rejected",
			target:      Stage("polishing"),
			expectError: ErrInvalidStage,
		},
		{
			name:        "accounting unreachable outside invoicing",
			target:      StageAccountingTransaction,
			expectError: ErrStageNotReachable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := createTestOrder(t)
			err := order.JumpToStage(tt.target, "manager")

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Equal(t, StageOrderEntered, order.Stage)
				assert.Empty(t, order.ProductionLog)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.target, order.Stage)
			require.Len(t, order.ProductionLog, 1)
			if tt.wantNote {
				assert.Contains(t, order.ProductionLog[0].Note, "skipped stages")
			} else {
				assert.Empty(t, order.ProductionLog[0].Note)
			}
		})
	}
}

func TestEnterAccounting(t *testing.T) {
	order := createTestOrder(t)
	require.NoError(t, order.JumpToStage(StageInvoicing, "manager"))

	require.NoError(t, order.JumpToStage(StageAccountingTransaction, "accounts"))
	assert.True(t, order.InAccounting)
	// The board stage does not change
	assert.Equal(t, StageInvoicing, order.Stage)

	// Re-entering is a conflict
	assert.ErrorIs(t, order.JumpToStage(StageAccountingTransaction, "accounts"), ErrSameStage)

	// Any stage transition clears the flag
	require.NoError(t, order.AdvanceStage("accounts"))
	assert.False(t, order.InAccounting)
	assert.Equal(t, StageCleared, order.Stage)
}

func TestUpdateDetails(t *testing.T) {
	order := createTestOrder(t)

	newItems := []OrderItem{{ProductCode: "THERM-80", Quantity: 10, UnitPrice: 2.00}}
	require.NoError(t, order.UpdateDetails(newItems, order.DueDate, "rush job"))
	assert.Equal(t, 20.00, order.Subtotal)

	require.NoError(t, order.AdvanceStage("operator"))
	assert.ErrorIs(t, order.UpdateDetails(newItems, order.DueDate, ""), ErrOrderNotEditable)
}

func TestEnsureDeletable(t *testing.T) {
	tests := []struct {
		stage       Stage
		expectError error
	}{
		{StageOrderEntered, nil},
		{StagePendingMaterial, nil},
		{StagePaperSlitting, ErrOrderInProduction},
		{StageWinding, ErrOrderInProduction},
		{StageFinishing, ErrOrderInProduction},
		{StageDelivery, nil},
		{StageInvoicing, nil},
		{StageCleared, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			order := createTestOrder(t)
			order.Stage = tt.stage

			err := order.EnsureDeletable()
			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStageEvents(t *testing.T) {
	order := createTestOrder(t)

	require.NoError(t, order.JumpToStage(StageCleared, "manager"))

	events := order.GetDomainEvents()
	require.Len(t, events, 2)

	changed, ok := events[0].(OrderStageChangedEvent)
	require.True(t, ok)
	assert.True(t, changed.Jumped)
	assert.Equal(t, StageCleared, changed.ToStage)

	cleared, ok := events[1].(OrderClearedEvent)
	require.True(t, ok)
	assert.Equal(t, "ADM-2025-0001", cleared.OrderNumber)

	order.ClearDomainEvents()
	assert.Empty(t, order.GetDomainEvents())
}

func TestNewArchivedOrder(t *testing.T) {
	order := createTestOrder(t)
	require.NoError(t, order.JumpToStage(StageCleared, "manager"))

	archived := NewArchivedOrder(order, "manager")
	assert.Equal(t, order.ID.Hex(), archived.OrderID)
	assert.Equal(t, order.OrderNumber, archived.OrderNumber)
	assert.Equal(t, order.Total, archived.Total)
	assert.Equal(t, order.ProductionLog, archived.ProductionLog)
	assert.Equal(t, "manager", archived.ClearedBy)
	assert.False(t, archived.ClearedAt.IsZero())
}
