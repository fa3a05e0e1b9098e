package application

import (
	"time"

	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/domain"
)

// CreateClientCommand creates a client
type CreateClientCommand struct {
	Name           string
	ContactName    string
	ContactEmail   string
	ContactPhone   string
	BillingAddress string
	ABN            string
}

// UpdateClientCommand updates a client
type UpdateClientCommand struct {
	ClientID       string
	Name           string
	ContactName    string
	ContactEmail   string
	ContactPhone   string
	BillingAddress string
	ABN            string
}

// CreateProductCommand creates a product owned by a client
type CreateProductCommand struct {
	Code        string
	Description string
	ClientID    string
	CoreSize    float64
	Width       float64
	Diameter    float64
	Unit        string
	UnitPrice   float64
}

// UpdateProductCommand updates a product
type UpdateProductCommand struct {
	ProductID   string
	Description string
	CoreSize    float64
	Width       float64
	Diameter    float64
	Unit        string
	UnitPrice   float64
}

// OrderItemInput is one requested line on an order
type OrderItemInput struct {
	ProductID string
	Quantity  float64
	UnitPrice float64
}

// CreateOrderCommand places a new order on the board
type CreateOrderCommand struct {
	OrderNumber string
	ClientID    string
	Items       []OrderItemInput
	DueDate     time.Time
	CreatedBy   string
}

// UpdateOrderCommand updates order details before production starts
type UpdateOrderCommand struct {
	OrderID string
	Items   []OrderItemInput
	DueDate time.Time
	Notes   string
}

// MoveStageCommand advances or regresses an order one stage
type MoveStageCommand struct {
	OrderID   string
	Direction string // "forward" or "back"
	ChangedBy string
}

// JumpStageCommand moves an order directly to a stage
type JumpStageCommand struct {
	OrderID   string
	Target    domain.Stage
	ChangedBy string
}

// DeleteOrderCommand removes an order and returns its allocations to stock
type DeleteOrderCommand struct {
	OrderID   string
	DeletedBy string
}

// ListOrdersQuery lists orders with filters
type ListOrdersQuery struct {
	Stage    domain.Stage
	Status   domain.OrderStatus
	ClientID string
	Page     int64
	PageSize int64
}

// CreateStockEntryCommand registers a stocked product
type CreateStockEntryCommand struct {
	ClientID          string
	ProductID         string
	OpeningQuantity   float64
	MinimumStockLevel float64
	Location          string
	CreatedBy         string
}

// AddStockCommand records received stock
type AddStockCommand struct {
	StockID   string
	Quantity  float64
	Note      string
	CreatedBy string
}

// ConsumeStockCommand records stock used outside an order
type ConsumeStockCommand struct {
	StockID   string
	Quantity  float64
	Note      string
	CreatedBy string
}

// AllocateStockCommand reserves stock against an order
type AllocateStockCommand struct {
	StockID     string
	OrderID     string
	Quantity    float64
	Note        string
	AllocatedBy string
}

// StockHistoryQuery filters the movement ledger
type StockHistoryQuery struct {
	StockID  string
	OrderID  string
	Type     domain.MovementType
	Page     int64
	PageSize int64
}

// CreateEmployeeCommand creates an employee profile
type CreateEmployeeCommand struct {
	Name               string
	Role               string
	Email              string
	HourlyRate         float64
	OvertimeMultiplier float64
	AnnualPerWeek      float64
	SickPerWeek        float64
}

// TimesheetEntryInput is one day of recorded hours
type TimesheetEntryInput struct {
	Day           string
	OrdinaryHours float64
	OvertimeHours float64
	Notes         string
}

// CreateTimesheetCommand creates a draft timesheet
type CreateTimesheetCommand struct {
	EmployeeID   string
	WeekStarting time.Time
	Entries      []TimesheetEntryInput
}

// UpdateTimesheetCommand replaces a draft timesheet's entries
type UpdateTimesheetCommand struct {
	TimesheetID string
	Entries     []TimesheetEntryInput
}

// ApproveTimesheetCommand approves a submitted timesheet
type ApproveTimesheetCommand struct {
	TimesheetID string
	ApprovedBy  string
}

// RejectTimesheetCommand rejects a submitted timesheet
type RejectTimesheetCommand struct {
	TimesheetID string
	RejectedBy  string
	Reason      string
}

// CreateLeaveRequestCommand files a leave request
type CreateLeaveRequestCommand struct {
	EmployeeID string
	Type       domain.LeaveType
	Hours      float64
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
}

// DecideLeaveCommand approves or rejects a pending leave request
type DecideLeaveCommand struct {
	RequestID string
	DecidedBy string
	Note      string
}

// AdjustLeaveCommand applies a manual signed balance change
type AdjustLeaveCommand struct {
	EmployeeID string
	Type       domain.LeaveType
	Hours      float64
	Reason     string
	AdjustedBy string
}

// CreateInvoiceCommand raises an invoice from an order
type CreateInvoiceCommand struct {
	OrderID   string
	CreatedBy string
}

// SyncInvoiceCommand pushes an invoice to the accounting provider
type SyncInvoiceCommand struct {
	InvoiceID string
	SyncedBy  string
}

// TimesheetReportQuery aggregates per-employee hours over a period
type TimesheetReportQuery struct {
	From time.Time
	To   time.Time
}
