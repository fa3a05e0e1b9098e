package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStockEntry() *StockEntry {
	return NewStockEntry("client-1", "prod-1", "THERM-80", "Thermal roll 80mm", "rolls", 100, 20, "rack A3")
}

func TestNewStockEntry(t *testing.T) {
	entry := createTestStockEntry()

	assert.Equal(t, 100.0, entry.QuantityOnHand)
	assert.Equal(t, 20.0, entry.MinimumStockLevel)
	assert.False(t, entry.IsArchived)
}

func TestStockEntryIsLow(t *testing.T) {
	tests := []struct {
		name    string
		onHand  float64
		minimum float64
		want    bool
	}{
		{"well above minimum", 100, 20, false},
		{"exactly at minimum", 20, 20, true},
		{"below minimum", 5, 20, true},
		{"no minimum configured", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := createTestStockEntry()
			entry.QuantityOnHand = tt.onHand
			entry.MinimumStockLevel = tt.minimum

			assert.Equal(t, tt.want, entry.IsLow())
		})
	}
}

func TestNewStockMovement(t *testing.T) {
	entry := createTestStockEntry()

	tests := []struct {
		name        string
		movType     MovementType
		qty         float64
		wantSigned  float64
		expectError error
	}{
		{"addition is positive", MovementAddition, 50, 50, nil},
		{"return is positive", MovementReturn, 30, 30, nil},
		{"consumption is negative", MovementConsumption, 25, -25, nil},
		{"allocation is negative", MovementAllocation, 40, -40, nil},
		{"zero quantity rejected", MovementAddition, 0, 0, ErrNonPositiveQuantity},
		{"negative quantity rejected", MovementAddition, -5, 0, ErrNonPositiveQuantity},
		{"unknown type rejected", MovementType("transfer"), 5, 0, ErrInvalidMovementType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mov, err := NewStockMovement(entry, tt.movType, tt.qty, "order-1", "ADM-2025-0001", "", "storeman")

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, mov)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSigned, mov.Quantity)
			assert.Equal(t, tt.qty, mov.AbsQuantity())
			assert.Equal(t, entry.ID.Hex(), mov.StockID)
			assert.False(t, mov.IsArchived)
		})
	}
}

func TestIsActiveAllocation(t *testing.T) {
	entry := createTestStockEntry()

	alloc, err := NewStockMovement(entry, MovementAllocation, 30, "order-1", "ADM-2025-0001", "", "storeman")
	require.NoError(t, err)
	assert.True(t, alloc.IsActiveAllocation())

	alloc.IsArchived = true
	assert.False(t, alloc.IsActiveAllocation())

	add, err := NewStockMovement(entry, MovementAddition, 30, "", "", "", "storeman")
	require.NoError(t, err)
	assert.False(t, add.IsActiveAllocation())
}
