package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TimesheetStatus represents the lifecycle of a weekly timesheet
type TimesheetStatus string

const (
	TimesheetDraft     TimesheetStatus = "draft"
	TimesheetSubmitted TimesheetStatus = "submitted"
	TimesheetApproved  TimesheetStatus = "approved"
	TimesheetRejected  TimesheetStatus = "rejected"
)

// IsValid checks if the status is valid
func (s TimesheetStatus) IsValid() bool {
	switch s {
	case TimesheetDraft, TimesheetSubmitted, TimesheetApproved, TimesheetRejected:
		return true
	default:
		return false
	}
}

// Timesheet is one employee week of recorded hours
type Timesheet struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID   string             `bson:"employee_id" json:"employee_id"`
	EmployeeName string             `bson:"employee_name" json:"employee_name"`
	WeekStarting time.Time          `bson:"week_starting" json:"week_starting"`
	Entries      []TimesheetEntry   `bson:"entries" json:"entries"`
	Status       TimesheetStatus    `bson:"status" json:"status"`
	SubmittedAt  *time.Time         `bson:"submitted_at,omitempty" json:"submitted_at,omitempty"`
	DecidedBy    string             `bson:"decided_by,omitempty" json:"decided_by,omitempty"`
	DecidedAt    *time.Time         `bson:"decided_at,omitempty" json:"decided_at,omitempty"`
	RejectReason string             `bson:"reject_reason,omitempty" json:"reject_reason,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// TimesheetEntry is one day on a timesheet
type TimesheetEntry struct {
	Day           string  `bson:"day" json:"day"`
	OrdinaryHours float64 `bson:"ordinary_hours" json:"ordinary_hours"`
	OvertimeHours float64 `bson:"overtime_hours" json:"overtime_hours"`
	Notes         string  `bson:"notes,omitempty" json:"notes,omitempty"`
}

// NewTimesheet creates a draft timesheet for one employee week
func NewTimesheet(employeeID, employeeName string, weekStarting time.Time, entries []TimesheetEntry) *Timesheet {
	now := time.Now().UTC()
	return &Timesheet{
		ID:           primitive.NewObjectID(),
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		WeekStarting: weekStarting,
		Entries:      entries,
		Status:       TimesheetDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// UpdateEntries replaces the recorded hours. Only drafts can be edited.
func (t *Timesheet) UpdateEntries(entries []TimesheetEntry) error {
	if t.Status != TimesheetDraft {
		return ErrTimesheetNotEditable
	}
	t.Entries = entries
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Submit moves the timesheet from draft to submitted
func (t *Timesheet) Submit() error {
	if t.Status != TimesheetDraft {
		return ErrTimesheetNotDraft
	}
	now := time.Now().UTC()
	t.Status = TimesheetSubmitted
	t.SubmittedAt = &now
	t.UpdatedAt = now
	return nil
}

// OrdinaryHours returns the total ordinary hours on the timesheet
func (t *Timesheet) OrdinaryHours() float64 {
	total := 0.0
	for _, e := range t.Entries {
		total += e.OrdinaryHours
	}
	return total
}

// OvertimeHours returns the total overtime hours on the timesheet
func (t *Timesheet) OvertimeHours() float64 {
	total := 0.0
	for _, e := range t.Entries {
		total += e.OvertimeHours
	}
	return total
}

// PayrollRecord is the immutable pay outcome of one approved timesheet
type PayrollRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TimesheetID   string             `bson:"timesheet_id" json:"timesheet_id"`
	EmployeeID    string             `bson:"employee_id" json:"employee_id"`
	EmployeeName  string             `bson:"employee_name" json:"employee_name"`
	WeekStarting  time.Time          `bson:"week_starting" json:"week_starting"`
	OrdinaryHours float64            `bson:"ordinary_hours" json:"ordinary_hours"`
	OvertimeHours float64            `bson:"overtime_hours" json:"overtime_hours"`
	HourlyRate    float64            `bson:"hourly_rate" json:"hourly_rate"`
	OrdinaryPay   float64            `bson:"ordinary_pay" json:"ordinary_pay"`
	OvertimePay   float64            `bson:"overtime_pay" json:"overtime_pay"`
	GrossPay      float64            `bson:"gross_pay" json:"gross_pay"`
	AccruedAnnual float64            `bson:"accrued_annual" json:"accrued_annual"`
	AccruedSick   float64            `bson:"accrued_sick" json:"accrued_sick"`
	ApprovedBy    string             `bson:"approved_by" json:"approved_by"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// NewPayrollRecord calculates pay for an approved timesheet against the
// employee profile. Amounts are computed exactly and stored rounded to cents.
func NewPayrollRecord(t *Timesheet, emp *EmployeeProfile, approvedBy string) *PayrollRecord {
	rate := decimal.NewFromFloat(emp.HourlyRate)
	ordinary := rate.Mul(decimal.NewFromFloat(t.OrdinaryHours()))
	overtime := rate.
		Mul(decimal.NewFromFloat(emp.OvertimeMultiplier)).
		Mul(decimal.NewFromFloat(t.OvertimeHours()))

	return &PayrollRecord{
		ID:            primitive.NewObjectID(),
		TimesheetID:   t.ID.Hex(),
		EmployeeID:    t.EmployeeID,
		EmployeeName:  t.EmployeeName,
		WeekStarting:  t.WeekStarting,
		OrdinaryHours: t.OrdinaryHours(),
		OvertimeHours: t.OvertimeHours(),
		HourlyRate:    emp.HourlyRate,
		OrdinaryPay:   ordinary.Round(2).InexactFloat64(),
		OvertimePay:   overtime.Round(2).InexactFloat64(),
		GrossPay:      ordinary.Add(overtime).Round(2).InexactFloat64(),
		AccruedAnnual: emp.AccrualAnnualPerWeek,
		AccruedSick:   emp.AccrualSickPerWeek,
		ApprovedBy:    approvedBy,
		CreatedAt:     time.Now().UTC(),
	}
}
