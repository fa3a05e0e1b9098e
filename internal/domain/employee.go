package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmployeeProfile holds the pay and leave configuration for one employee.
// Leave balances are only mutated through filtered updates in the repository.
type EmployeeProfile struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                 string             `bson:"name" json:"name"`
	Role                 string             `bson:"role" json:"role"`
	Email                string             `bson:"email,omitempty" json:"email,omitempty"`
	HourlyRate           float64            `bson:"hourly_rate" json:"hourly_rate"`
	OvertimeMultiplier   float64            `bson:"overtime_multiplier" json:"overtime_multiplier"`
	LeaveBalances        LeaveBalances      `bson:"leave_balances" json:"leave_balances"`
	AccrualAnnualPerWeek float64            `bson:"accrual_annual_per_week" json:"accrual_annual_per_week"`
	AccrualSickPerWeek   float64            `bson:"accrual_sick_per_week" json:"accrual_sick_per_week"`
	IsActive             bool               `bson:"is_active" json:"is_active"`
	CreatedAt            time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time          `bson:"updated_at" json:"updated_at"`
}

// LeaveBalances tracks remaining leave hours per type
type LeaveBalances struct {
	Annual   float64 `bson:"annual" json:"annual"`
	Sick     float64 `bson:"sick" json:"sick"`
	Personal float64 `bson:"personal" json:"personal"`
}

// NewEmployeeProfile creates an active employee profile
func NewEmployeeProfile(name, role, email string, hourlyRate, overtimeMultiplier float64) *EmployeeProfile {
	now := time.Now().UTC()
	if overtimeMultiplier <= 0 {
		overtimeMultiplier = 1.5
	}
	return &EmployeeProfile{
		ID:                 primitive.NewObjectID(),
		Name:               name,
		Role:               role,
		Email:              email,
		HourlyRate:         hourlyRate,
		OvertimeMultiplier: overtimeMultiplier,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// BalanceFor returns the remaining hours for a leave type
func (e *EmployeeProfile) BalanceFor(leaveType LeaveType) float64 {
	switch leaveType {
	case LeaveAnnual:
		return e.LeaveBalances.Annual
	case LeaveSick:
		return e.LeaveBalances.Sick
	case LeavePersonal:
		return e.LeaveBalances.Personal
	default:
		return 0
	}
}
