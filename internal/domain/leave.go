package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LeaveType classifies a leave request against a balance bucket
type LeaveType string

const (
	LeaveAnnual   LeaveType = "annual"
	LeaveSick     LeaveType = "sick"
	LeavePersonal LeaveType = "personal"
)

// IsValid checks if the leave type is valid
func (t LeaveType) IsValid() bool {
	switch t {
	case LeaveAnnual, LeaveSick, LeavePersonal:
		return true
	default:
		return false
	}
}

// LeaveStatus represents the lifecycle of a leave request
type LeaveStatus string

const (
	LeavePending   LeaveStatus = "pending"
	LeaveApproved  LeaveStatus = "approved"
	LeaveRejected  LeaveStatus = "rejected"
	LeaveCancelled LeaveStatus = "cancelled"
)

// IsValid checks if the status is valid
func (s LeaveStatus) IsValid() bool {
	switch s {
	case LeavePending, LeaveApproved, LeaveRejected, LeaveCancelled:
		return true
	default:
		return false
	}
}

// LeaveRequest is one employee request for paid leave. Creating a request
// never touches balances, only approval debits them.
type LeaveRequest struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID   string             `bson:"employee_id" json:"employee_id"`
	EmployeeName string             `bson:"employee_name" json:"employee_name"`
	Type         LeaveType          `bson:"type" json:"type"`
	Hours        float64            `bson:"hours" json:"hours"`
	StartDate    time.Time          `bson:"start_date" json:"start_date"`
	EndDate      time.Time          `bson:"end_date" json:"end_date"`
	Reason       string             `bson:"reason" json:"reason"`
	Status       LeaveStatus        `bson:"status" json:"status"`
	DecidedBy    string             `bson:"decided_by,omitempty" json:"decided_by,omitempty"`
	DecidedAt    *time.Time         `bson:"decided_at,omitempty" json:"decided_at,omitempty"`
	DecisionNote string             `bson:"decision_note,omitempty" json:"decision_note,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// NewLeaveRequest creates a pending leave request
func NewLeaveRequest(employeeID, employeeName string, leaveType LeaveType, hours float64, start, end time.Time, reason string) (*LeaveRequest, error) {
	if !leaveType.IsValid() {
		return nil, ErrInvalidLeaveType
	}
	if hours <= 0 {
		return nil, ErrNonPositiveQuantity
	}

	now := time.Now().UTC()
	return &LeaveRequest{
		ID:           primitive.NewObjectID(),
		EmployeeID:   employeeID,
		EmployeeName: employeeName,
		Type:         leaveType,
		Hours:        hours,
		StartDate:    start,
		EndDate:      end,
		Reason:       reason,
		Status:       LeavePending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// LeaveAdjustment records a manual signed change to one balance bucket.
// Adjustments always carry a reason and form an audit trail alongside the
// request history.
type LeaveAdjustment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID string             `bson:"employee_id" json:"employee_id"`
	Type       LeaveType          `bson:"type" json:"type"`
	Hours      float64            `bson:"hours" json:"hours"`
	Reason     string             `bson:"reason" json:"reason"`
	AdjustedBy string             `bson:"adjusted_by" json:"adjusted_by"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// NewLeaveAdjustment creates an adjustment row. Hours is a signed delta.
func NewLeaveAdjustment(employeeID string, leaveType LeaveType, hours float64, reason, adjustedBy string) (*LeaveAdjustment, error) {
	if !leaveType.IsValid() {
		return nil, ErrInvalidLeaveType
	}
	if hours == 0 {
		return nil, ErrNonPositiveQuantity
	}
	if reason == "" {
		return nil, ErrEmptyReason
	}

	return &LeaveAdjustment{
		ID:         primitive.NewObjectID(),
		EmployeeID: employeeID,
		Type:       leaveType,
		Hours:      hours,
		Reason:     reason,
		AdjustedBy: adjustedBy,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
