package domain

import "errors"

// Errors shared across aggregates
var (
	ErrOrderInProduction    = errors.New("cannot delete an order while it is in production")
	ErrOrderNotEditable     = errors.New("order details can only be changed at order entry")
	ErrSameStage            = errors.New("order is already in the requested stage")
	ErrInvalidStage         = errors.New("invalid production stage")
	ErrStageNotReachable    = errors.New("accounting transaction is only reachable from invoicing")
	ErrOrderCompleted       = errors.New("order has already been completed")
	ErrNoLineItems          = errors.New("order must have at least one line item")
	ErrTimesheetNotEditable = errors.New("timesheet can only be edited while in draft")
	ErrTimesheetNotDraft    = errors.New("timesheet has already been submitted")
	ErrInvalidLeaveType     = errors.New("invalid leave type")
	ErrEmptyReason          = errors.New("a reason is required")
	ErrInsufficientStock    = errors.New("insufficient stock on hand")
	ErrInvalidMovementType  = errors.New("invalid stock movement type")
	ErrNonPositiveQuantity  = errors.New("quantity must be positive")
	ErrMovementArchived     = errors.New("stock movement is already archived")
	ErrClientHasProducts    = errors.New("cannot delete a client that still owns products")
	ErrInvoiceNotSyncable   = errors.New("invoice has already been synced")
	ErrOrderNotInvoiceable  = errors.New("cannot invoice an order before the invoicing stage")
)
