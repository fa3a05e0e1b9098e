package domain

import (
	"context"
	"time"
)

// OrderFilter narrows order listings
type OrderFilter struct {
	Stage    Stage
	Status   OrderStatus
	ClientID string
}

// OrderRepository persists board orders. NextOrderNumber allocates from a
// per-year counter, so generated numbers never collide.
type OrderRepository interface {
	Save(ctx context.Context, order *Order) error
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	List(ctx context.Context, filter OrderFilter, skip, limit int64) ([]*Order, int64, error)
	CountByStage(ctx context.Context) (map[Stage]int64, error)
	NextOrderNumber(ctx context.Context, year int) (string, error)
	Delete(ctx context.Context, id string) error
}

// ArchivedOrderRepository stores immutable snapshots of cleared orders
type ArchivedOrderRepository interface {
	Save(ctx context.Context, archived *ArchivedOrder) error
	FindByOrderNumber(ctx context.Context, orderNumber string) (*ArchivedOrder, error)
	List(ctx context.Context, clientID string, skip, limit int64) ([]*ArchivedOrder, int64, error)
}

// StockRepository persists stock entries. AdjustQuantity applies a signed
// delta guarded by a filter; for decrements the filter requires
// quantity_on_hand >= -delta, and no match returns (nil, nil) so callers can
// report a conflict without a read-then-write race.
type StockRepository interface {
	Save(ctx context.Context, entry *StockEntry) error
	FindByID(ctx context.Context, id string) (*StockEntry, error)
	FindByProductCode(ctx context.Context, productCode string) (*StockEntry, error)
	List(ctx context.Context, clientID string, lowOnly bool, skip, limit int64) ([]*StockEntry, int64, error)
	AdjustQuantity(ctx context.Context, id string, delta float64) (*StockEntry, error)
	Archive(ctx context.Context, id string) error
}

// MovementFilter narrows ledger queries
type MovementFilter struct {
	StockID string
	OrderID string
	Type    MovementType
}

// MovementRepository is the append-only stock ledger
type MovementRepository interface {
	Append(ctx context.Context, movement *StockMovement) error
	FindByID(ctx context.Context, id string) (*StockMovement, error)
	List(ctx context.Context, filter MovementFilter, skip, limit int64) ([]*StockMovement, int64, error)
	FindActiveAllocationsByOrder(ctx context.Context, orderID string) ([]*StockMovement, error)
	ArchiveByOrder(ctx context.Context, orderID, archivedBy string) (int64, error)
	ArchiveOne(ctx context.Context, id, archivedBy string) error
}

// TimesheetRepository persists timesheets. TransitionStatus performs a
// conditional update filtered on the expected status and returns the document
// as it was before the update; (nil, nil) means no document matched.
type TimesheetRepository interface {
	Save(ctx context.Context, timesheet *Timesheet) error
	FindByID(ctx context.Context, id string) (*Timesheet, error)
	List(ctx context.Context, employeeID string, status TimesheetStatus, skip, limit int64) ([]*Timesheet, int64, error)
	FindByEmployeeAndWeek(ctx context.Context, employeeID string, weekStarting time.Time) (*Timesheet, error)
	TransitionStatus(ctx context.Context, id string, from, to TimesheetStatus, decidedBy, reason string) (*Timesheet, error)
	Delete(ctx context.Context, id string) error
}

// PayrollRepository stores pay outcomes of approved timesheets
type PayrollRepository interface {
	Save(ctx context.Context, record *PayrollRecord) error
	FindByID(ctx context.Context, id string) (*PayrollRecord, error)
	FindByTimesheet(ctx context.Context, timesheetID string) (*PayrollRecord, error)
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]*PayrollRecord, error)
	ListByPeriod(ctx context.Context, from, to time.Time) ([]*PayrollRecord, error)
}

// EmployeeRepository persists employee profiles. The leave balance mutators
// are filtered $inc updates: DebitLeave matches only when the balance covers
// the hours, AdjustLeave only when the result stays non-negative. Both return
// (nil, nil) when no document matched.
type EmployeeRepository interface {
	Save(ctx context.Context, employee *EmployeeProfile) error
	FindByID(ctx context.Context, id string) (*EmployeeProfile, error)
	List(ctx context.Context, activeOnly bool, skip, limit int64) ([]*EmployeeProfile, int64, error)
	DebitLeave(ctx context.Context, id string, leaveType LeaveType, hours float64) (*EmployeeProfile, error)
	CreditLeave(ctx context.Context, id string, leaveType LeaveType, hours float64) (*EmployeeProfile, error)
	AdjustLeave(ctx context.Context, id string, leaveType LeaveType, delta float64) (*EmployeeProfile, error)
	AccrueLeave(ctx context.Context, id string, annual, sick float64) error
}

// LeaveRepository persists leave requests. TransitionStatus follows the same
// conditional pre-image contract as TimesheetRepository.
type LeaveRepository interface {
	Save(ctx context.Context, request *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	List(ctx context.Context, employeeID string, status LeaveStatus, skip, limit int64) ([]*LeaveRequest, int64, error)
	TransitionStatus(ctx context.Context, id string, from, to LeaveStatus, decidedBy, note string) (*LeaveRequest, error)
}

// LeaveAdjustmentRepository is the audit trail of manual balance changes
type LeaveAdjustmentRepository interface {
	Save(ctx context.Context, adjustment *LeaveAdjustment) error
	ListByEmployee(ctx context.Context, employeeID string) ([]*LeaveAdjustment, error)
}

// ClientRepository persists clients
type ClientRepository interface {
	Save(ctx context.Context, client *Client) error
	FindByID(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context, skip, limit int64) ([]*Client, int64, error)
	Delete(ctx context.Context, id string) error
}

// ProductRepository persists products
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindByCode(ctx context.Context, code string) (*Product, error)
	List(ctx context.Context, clientID string, skip, limit int64) ([]*Product, int64, error)
	CountByClient(ctx context.Context, clientID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

// InvoiceRepository persists invoices
type InvoiceRepository interface {
	Save(ctx context.Context, invoice *Invoice) error
	FindByID(ctx context.Context, id string) (*Invoice, error)
	FindByOrder(ctx context.Context, orderID string) (*Invoice, error)
	List(ctx context.Context, status SyncStatus, skip, limit int64) ([]*Invoice, int64, error)
	NextInvoiceNumber(ctx context.Context, year int) (string, error)
}
