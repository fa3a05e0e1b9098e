package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestEmployee() *EmployeeProfile {
	emp := NewEmployeeProfile("Dana Wu", "production_staff", "dana@misty", 32.50, 1.5)
	emp.LeaveBalances = LeaveBalances{Annual: 76, Sick: 40, Personal: 8}
	emp.AccrualAnnualPerWeek = 2.923
	emp.AccrualSickPerWeek = 1.461
	return emp
}

func createTestTimesheet() *Timesheet {
	week := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	return NewTimesheet("emp-1", "Dana Wu", week, []TimesheetEntry{
		{Day: "monday", OrdinaryHours: 8},
		{Day: "tuesday", OrdinaryHours: 8},
		{Day: "wednesday", OrdinaryHours: 8, OvertimeHours: 2},
		{Day: "thursday", OrdinaryHours: 8},
		{Day: "friday", OrdinaryHours: 8, OvertimeHours: 1},
	})
}

func TestTimesheetTotals(t *testing.T) {
	ts := createTestTimesheet()

	assert.Equal(t, 40.0, ts.OrdinaryHours())
	assert.Equal(t, 3.0, ts.OvertimeHours())
	assert.Equal(t, TimesheetDraft, ts.Status)
}

func TestTimesheetSubmit(t *testing.T) {
	ts := createTestTimesheet()

	require.NoError(t, ts.Submit())
	assert.Equal(t, TimesheetSubmitted, ts.Status)
	assert.NotNil(t, ts.SubmittedAt)

	assert.ErrorIs(t, ts.Submit(), ErrTimesheetNotDraft)
}

func TestTimesheetUpdateEntries(t *testing.T) {
	ts := createTestTimesheet()

	require.NoError(t, ts.UpdateEntries([]TimesheetEntry{{Day: "monday", OrdinaryHours: 4}}))
	assert.Equal(t, 4.0, ts.OrdinaryHours())

	require.NoError(t, ts.Submit())
	assert.ErrorIs(t, ts.UpdateEntries(nil), ErrTimesheetNotEditable)
}

func TestNewPayrollRecord(t *testing.T) {
	ts := createTestTimesheet()
	emp := createTestEmployee()
	require.NoError(t, ts.Submit())

	record := NewPayrollRecord(ts, emp, "manager")

	// 40h * 32.50 = 1300.00 ordinary, 3h * 32.50 * 1.5 = 146.25 overtime
	assert.Equal(t, 1300.00, record.OrdinaryPay)
	assert.Equal(t, 146.25, record.OvertimePay)
	assert.Equal(t, 1446.25, record.GrossPay)
	assert.Equal(t, 40.0, record.OrdinaryHours)
	assert.Equal(t, 3.0, record.OvertimeHours)
	assert.Equal(t, emp.AccrualAnnualPerWeek, record.AccruedAnnual)
	assert.Equal(t, emp.AccrualSickPerWeek, record.AccruedSick)
	assert.Equal(t, ts.ID.Hex(), record.TimesheetID)
	assert.Equal(t, "manager", record.ApprovedBy)
}

func TestPayrollRecordRounding(t *testing.T) {
	week := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	ts := NewTimesheet("emp-1", "Dana Wu", week, []TimesheetEntry{
		{Day: "monday", OrdinaryHours: 7.6},
	})
	emp := NewEmployeeProfile("Dana Wu", "production_staff", "", 31.115, 1.5)

	record := NewPayrollRecord(ts, emp, "manager")

	// 7.6 * 31.115 = 236.474, rounds to 236.47
	assert.Equal(t, 236.47, record.OrdinaryPay)
	assert.Equal(t, 236.47, record.GrossPay)
}
