package domain

import "time"

// DomainEvent is implemented by every event raised inside the domain layer.
// Events are collected on the aggregate and published by the application
// service after a successful save.
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
	AggregateID() string
}

// BaseEvent carries the fields common to all domain events.
type BaseEvent struct {
	Type      string    `json:"type"`
	ID        string    `json:"aggregate_id"`
	Timestamp time.Time `json:"occurred_at"`
}

func (e BaseEvent) EventType() string { return e.Type }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }
func (e BaseEvent) AggregateID() string { return e.ID }

func newBaseEvent(eventType, aggregateID string) BaseEvent {
	return BaseEvent{Type: eventType, ID: aggregateID, Timestamp: time.Now().UTC()}
}

// OrderCreatedEvent is raised when a new order enters the board.
type OrderCreatedEvent struct {
	BaseEvent
	OrderNumber string  `json:"order_number"`
	ClientID    string  `json:"client_id"`
	Total       float64 `json:"total"`
}

// OrderStageChangedEvent is raised on every stage transition, including jumps.
type OrderStageChangedEvent struct {
	BaseEvent
	OrderNumber string `json:"order_number"`
	FromStage   Stage  `json:"from_stage"`
	ToStage     Stage  `json:"to_stage"`
	Jumped      bool   `json:"jumped"`
	ChangedBy   string `json:"changed_by"`
}

// OrderClearedEvent is raised when an order reaches the cleared stage and its
// snapshot has been archived.
type OrderClearedEvent struct {
	BaseEvent
	OrderNumber string `json:"order_number"`
	ClientID    string `json:"client_id"`
}

// OrderDeletedEvent is raised after an order is removed from the board.
type OrderDeletedEvent struct {
	BaseEvent
	OrderNumber   string `json:"order_number"`
	ReturnedItems int    `json:"returned_items"`
}

// StockAllocatedEvent is raised when stock is reserved against an order.
type StockAllocatedEvent struct {
	BaseEvent
	ProductCode string  `json:"product_code"`
	OrderNumber string  `json:"order_number"`
	Quantity    float64 `json:"quantity"`
}

// StockReturnedEvent is raised when a previously allocated quantity is put back.
type StockReturnedEvent struct {
	BaseEvent
	ProductCode string  `json:"product_code"`
	OrderNumber string  `json:"order_number"`
	Quantity    float64 `json:"quantity"`
}

// LowStockEvent is raised when an entry drops to or below its reorder level.
type LowStockEvent struct {
	BaseEvent
	ProductCode  string  `json:"product_code"`
	OnHand       float64 `json:"on_hand"`
	ReorderLevel float64 `json:"reorder_level"`
}

// TimesheetApprovedEvent is raised when a timesheet is approved and the
// matching payroll record has been created.
type TimesheetApprovedEvent struct {
	BaseEvent
	EmployeeID      string  `json:"employee_id"`
	WeekEnding      string  `json:"week_ending"`
	GrossPay        float64 `json:"gross_pay"`
	PayrollRecordID string  `json:"payroll_record_id"`
}

// LeaveDecisionEvent is raised when a leave request is approved, rejected or
// cancelled.
type LeaveDecisionEvent struct {
	BaseEvent
	EmployeeID string  `json:"employee_id"`
	LeaveType  string  `json:"leave_type"`
	Hours      float64 `json:"hours"`
	Decision   string  `json:"decision"`
}

// InvoiceSyncedEvent is raised when an invoice has been pushed to the
// accounting provider.
type InvoiceSyncedEvent struct {
	BaseEvent
	InvoiceNumber string `json:"invoice_number"`
	ExternalID    string `json:"external_id"`
}

// Event type names, used as the Kafka event-type header.
const (
	EventOrderCreated      = "order.created"
	EventOrderStageChanged = "order.stage_changed"
	EventOrderCleared      = "order.cleared"
	EventOrderDeleted      = "order.deleted"
	EventStockAllocated    = "stock.allocated"
	EventStockReturned     = "stock.returned"
	EventLowStock          = "stock.low"
	EventTimesheetApproved = "timesheet.approved"
	EventLeaveDecision     = "leave.decision"
	EventInvoiceSynced     = "invoice.synced"
)
