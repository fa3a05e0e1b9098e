package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLeaveRequest(t *testing.T) {
	start := time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC)
	end := start.Add(4 * 24 * time.Hour)

	tests := []struct {
		name        string
		leaveType   LeaveType
		hours       float64
		expectError error
	}{
		{"valid annual leave", LeaveAnnual, 38, nil},
		{"valid sick leave", LeaveSick, 7.6, nil},
		{"unknown type", LeaveType("sabbatical"), 38, ErrInvalidLeaveType},
		{"zero hours", LeavePersonal, 0, ErrNonPositiveQuantity},
		{"negative hours", LeaveAnnual, -8, ErrNonPositiveQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewLeaveRequest("emp-1", "Dana Wu", tt.leaveType, tt.hours, start, end, "family trip")

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, req)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, LeavePending, req.Status)
			assert.Equal(t, tt.hours, req.Hours)
		})
	}
}

func TestNewLeaveAdjustment(t *testing.T) {
	tests := []struct {
		name        string
		leaveType   LeaveType
		hours       float64
		reason      string
		expectError error
	}{
		{"positive adjustment", LeaveAnnual, 7.6, "EBA backpay", nil},
		{"negative adjustment", LeaveSick, -4, "data entry correction", nil},
		{"zero delta rejected", LeaveAnnual, 0, "noop", ErrNonPositiveQuantity},
		{"missing reason rejected", LeaveAnnual, 7.6, "", ErrEmptyReason},
		{"unknown type rejected", LeaveType("lsl"), 7.6, "long service", ErrInvalidLeaveType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj, err := NewLeaveAdjustment("emp-1", tt.leaveType, tt.hours, tt.reason, "payroll")

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, adj)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.hours, adj.Hours)
			assert.Equal(t, "payroll", adj.AdjustedBy)
		})
	}
}

func TestEmployeeBalanceFor(t *testing.T) {
	emp := createTestEmployee()

	assert.Equal(t, 76.0, emp.BalanceFor(LeaveAnnual))
	assert.Equal(t, 40.0, emp.BalanceFor(LeaveSick))
	assert.Equal(t, 8.0, emp.BalanceFor(LeavePersonal))
	assert.Equal(t, 0.0, emp.BalanceFor(LeaveType("unknown")))
}
