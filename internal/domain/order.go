package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stage represents a production stage on the board
type Stage string

const (
	StageOrderEntered    Stage = "order_entered"
	StagePendingMaterial Stage = "pending_material"
	StagePaperSlitting   Stage = "paper_slitting"
	StageWinding         Stage = "winding"
	StageFinishing       Stage = "finishing"
	StageDelivery        Stage = "delivery"
	StageInvoicing       Stage = "invoicing"
	StageCleared         Stage = "cleared"

	// StageAccountingTransaction is a side stage reachable only from invoicing.
	// It is not part of the linear sequence.
	StageAccountingTransaction Stage = "accounting_transaction"
)

// stageSequence is the linear production flow, in order.
var stageSequence = []Stage{
	StageOrderEntered,
	StagePendingMaterial,
	StagePaperSlitting,
	StageWinding,
	StageFinishing,
	StageDelivery,
	StageInvoicing,
	StageCleared,
}

// Stages returns the linear production flow.
func Stages() []Stage {
	out := make([]Stage, len(stageSequence))
	copy(out, stageSequence)
	return out
}

// IsValid checks if the stage is a known stage
func (s Stage) IsValid() bool {
	if s == StageAccountingTransaction {
		return true
	}
	return s.Index() >= 0
}

// Index returns the position of the stage in the linear sequence,
// or -1 for the accounting side stage and unknown values.
func (s Stage) Index() int {
	for i, st := range stageSequence {
		if st == s {
			return i
		}
	}
	return -1
}

// inProductionStages are stages during which an order cannot be deleted.
var inProductionStages = map[Stage]bool{
	StagePaperSlitting: true,
	StageWinding:       true,
	StageFinishing:     true,
}

// GSTRate is the goods and services tax applied to order totals.
var GSTRate = decimal.NewFromFloat(0.10)

// OrderStatus represents the overall lifecycle of an order
type OrderStatus string

const (
	OrderOpen      OrderStatus = "open"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderOpen, OrderCompleted, OrderCancelled:
		return true
	default:
		return false
	}
}

// Order is the aggregate root for the production board
type Order struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	OrderNumber   string               `bson:"order_number" json:"order_number"`
	ClientID      string               `bson:"client_id" json:"client_id"`
	ClientName    string               `bson:"client_name" json:"client_name"`
	Items         []OrderItem          `bson:"items" json:"items"`
	Stage         Stage                `bson:"stage" json:"stage"`
	Status        OrderStatus          `bson:"status" json:"status"`
	InAccounting  bool                 `bson:"in_accounting" json:"in_accounting"`
	CompletedAt   *time.Time           `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	Subtotal      float64              `bson:"subtotal" json:"subtotal"`
	GST           float64              `bson:"gst" json:"gst"`
	Total         float64              `bson:"total" json:"total"`
	DueDate       time.Time            `bson:"due_date" json:"due_date"`
	Notes         string               `bson:"notes,omitempty" json:"notes,omitempty"`
	ProductionLog []ProductionLogEntry `bson:"production_log" json:"production_log"`
	CreatedBy     string               `bson:"created_by" json:"created_by"`
	CreatedAt     time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time            `bson:"updated_at" json:"updated_at"`

	// Domain events - transient, not persisted
	domainEvents []DomainEvent `bson:"-" json:"-"`
}

// OrderItem is a line on an order
type OrderItem struct {
	ProductID   string  `bson:"product_id" json:"product_id"`
	ProductCode string  `bson:"product_code" json:"product_code"`
	Description string  `bson:"description" json:"description"`
	Quantity    float64 `bson:"quantity" json:"quantity"`
	UnitPrice   float64 `bson:"unit_price" json:"unit_price"`
	LineTotal   float64 `bson:"line_total" json:"line_total"`
}

// ProductionLogEntry records a single stage transition on the order
type ProductionLogEntry struct {
	FromStage Stage     `bson:"from_stage" json:"from_stage"`
	ToStage   Stage     `bson:"to_stage" json:"to_stage"`
	ChangedBy string    `bson:"changed_by" json:"changed_by"`
	ChangedAt time.Time `bson:"changed_at" json:"changed_at"`
	Note      string    `bson:"note,omitempty" json:"note,omitempty"`
}

// NewOrder creates a new Order aggregate in the order_entered stage
func NewOrder(orderNumber, clientID, clientName string, items []OrderItem, dueDate time.Time, createdBy string) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrNoLineItems
	}

	now := time.Now().UTC()
	order := &Order{
		ID:            primitive.NewObjectID(),
		OrderNumber:   orderNumber,
		ClientID:      clientID,
		ClientName:    clientName,
		Items:         items,
		Stage:         StageOrderEntered,
		Status:        OrderOpen,
		DueDate:       dueDate,
		ProductionLog: make([]ProductionLogEntry, 0),
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
		domainEvents:  make([]DomainEvent, 0),
	}

	order.RecalculateTotals()

	order.addDomainEvent(OrderCreatedEvent{
		BaseEvent:   newBaseEvent(EventOrderCreated, order.ID.Hex()),
		OrderNumber: orderNumber,
		ClientID:    clientID,
		Total:       order.Total,
	})

	return order, nil
}

// RecalculateTotals recomputes line totals, subtotal, GST and total.
// Amounts are computed exactly and stored rounded to cents.
func (o *Order) RecalculateTotals() {
	subtotal := decimal.Zero
	for i := range o.Items {
		line := decimal.NewFromFloat(o.Items[i].UnitPrice).
			Mul(decimal.NewFromFloat(o.Items[i].Quantity))
		o.Items[i].LineTotal = line.Round(2).InexactFloat64()
		subtotal = subtotal.Add(line)
	}
	gst := subtotal.Mul(GSTRate)
	o.Subtotal = subtotal.Round(2).InexactFloat64()
	o.GST = gst.Round(2).InexactFloat64()
	o.Total = subtotal.Add(gst).Round(2).InexactFloat64()
}

// UpdateDetails replaces the editable fields of the order. Details can only be
// changed before production starts.
func (o *Order) UpdateDetails(items []OrderItem, dueDate time.Time, notes string) error {
	if o.Stage != StageOrderEntered {
		return ErrOrderNotEditable
	}
	if len(items) == 0 {
		return ErrNoLineItems
	}

	o.Items = items
	o.DueDate = dueDate
	o.Notes = notes
	o.RecalculateTotals()
	o.UpdatedAt = time.Now().UTC()

	return nil
}

// AdvanceStage moves the order to the next stage in the linear flow
func (o *Order) AdvanceStage(changedBy string) error {
	if o.Stage == StageCleared {
		return ErrOrderCompleted
	}

	idx := o.Stage.Index()
	if idx < 0 || idx+1 >= len(stageSequence) {
		return ErrInvalidStage
	}

	return o.transition(stageSequence[idx+1], changedBy, "")
}

// RegressStage moves the order back to the previous stage in the linear flow
func (o *Order) RegressStage(changedBy string) error {
	idx := o.Stage.Index()
	if idx <= 0 {
		return ErrInvalidStage
	}

	return o.transition(stageSequence[idx-1], changedBy, "")
}

// JumpToStage moves the order directly to an arbitrary stage. Skipped stages
// are noted in the production log. A jump to the current stage is rejected.
func (o *Order) JumpToStage(target Stage, changedBy string) error {
	if !target.IsValid() {
		return ErrInvalidStage
	}
	if target == o.Stage {
		return ErrSameStage
	}
	if target == StageAccountingTransaction {
		return o.EnterAccounting(changedBy)
	}

	note := ""
	fromIdx, toIdx := o.Stage.Index(), target.Index()
	if fromIdx >= 0 && toIdx > fromIdx+1 {
		skipped := make([]string, 0, toIdx-fromIdx-1)
		for _, st := range stageSequence[fromIdx+1 : toIdx] {
			skipped = append(skipped, string(st))
		}
		note = fmt.Sprintf("skipped stages: %v", skipped)
	}

	return o.transition(target, changedBy, note)
}

// EnterAccounting flags the order as being processed by accounting. This is a
// side state, the order keeps its board stage, which must be invoicing.
func (o *Order) EnterAccounting(changedBy string) error {
	if o.Stage != StageInvoicing {
		return ErrStageNotReachable
	}
	if o.InAccounting {
		return ErrSameStage
	}

	now := time.Now().UTC()
	o.InAccounting = true
	o.UpdatedAt = now
	o.ProductionLog = append(o.ProductionLog, ProductionLogEntry{
		FromStage: o.Stage,
		ToStage:   StageAccountingTransaction,
		ChangedBy: changedBy,
		ChangedAt: now,
	})

	o.addDomainEvent(OrderStageChangedEvent{
		BaseEvent:   newBaseEvent(EventOrderStageChanged, o.ID.Hex()),
		OrderNumber: o.OrderNumber,
		FromStage:   o.Stage,
		ToStage:     StageAccountingTransaction,
		ChangedBy:   changedBy,
	})

	return nil
}

func (o *Order) transition(target Stage, changedBy, note string) error {
	now := time.Now().UTC()
	from := o.Stage

	o.ProductionLog = append(o.ProductionLog, ProductionLogEntry{
		FromStage: from,
		ToStage:   target,
		ChangedBy: changedBy,
		ChangedAt: now,
		Note:      note,
	})
	o.Stage = target
	o.UpdatedAt = now
	// The accounting flag is tied to the invoicing stage
	o.InAccounting = false
	if target == StageCleared {
		o.Status = OrderCompleted
		o.CompletedAt = &now
	} else {
		o.Status = OrderOpen
		o.CompletedAt = nil
	}

	o.addDomainEvent(OrderStageChangedEvent{
		BaseEvent:   newBaseEvent(EventOrderStageChanged, o.ID.Hex()),
		OrderNumber: o.OrderNumber,
		FromStage:   from,
		ToStage:     target,
		Jumped:      note != "",
		ChangedBy:   changedBy,
	})

	if target == StageCleared {
		o.addDomainEvent(OrderClearedEvent{
			BaseEvent:   newBaseEvent(EventOrderCleared, o.ID.Hex()),
			OrderNumber: o.OrderNumber,
			ClientID:    o.ClientID,
		})
	}

	return nil
}

// IsInProduction returns true while the order occupies a machine stage
func (o *Order) IsInProduction() bool {
	return inProductionStages[o.Stage]
}

// EnsureDeletable returns an error if the order cannot currently be deleted
func (o *Order) EnsureDeletable() error {
	if o.IsInProduction() {
		return ErrOrderInProduction
	}
	return nil
}

// IsCleared returns true once the order has left the board
func (o *Order) IsCleared() bool {
	return o.Stage == StageCleared
}

// TotalQuantity returns the summed quantity across all line items
func (o *Order) TotalQuantity() float64 {
	total := 0.0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

func (o *Order) addDomainEvent(event DomainEvent) {
	o.domainEvents = append(o.domainEvents, event)
}

// GetDomainEvents returns the uncommitted events on the aggregate
func (o *Order) GetDomainEvents() []DomainEvent {
	return o.domainEvents
}

// ClearDomainEvents clears the uncommitted events after publishing
func (o *Order) ClearDomainEvents() {
	o.domainEvents = make([]DomainEvent, 0)
}

// ArchivedOrder is the immutable snapshot stored when an order clears the board
type ArchivedOrder struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	OrderID       string               `bson:"order_id" json:"order_id"`
	OrderNumber   string               `bson:"order_number" json:"order_number"`
	ClientID      string               `bson:"client_id" json:"client_id"`
	ClientName    string               `bson:"client_name" json:"client_name"`
	Items         []OrderItem          `bson:"items" json:"items"`
	Subtotal      float64              `bson:"subtotal" json:"subtotal"`
	GST           float64              `bson:"gst" json:"gst"`
	Total         float64              `bson:"total" json:"total"`
	ProductionLog []ProductionLogEntry `bson:"production_log" json:"production_log"`
	OrderedAt     time.Time            `bson:"ordered_at" json:"ordered_at"`
	ClearedAt     time.Time            `bson:"cleared_at" json:"cleared_at"`
	ClearedBy     string               `bson:"cleared_by" json:"cleared_by"`
}

// NewArchivedOrder snapshots a cleared order for the archive collection
func NewArchivedOrder(o *Order, clearedBy string) *ArchivedOrder {
	return &ArchivedOrder{
		ID:            primitive.NewObjectID(),
		OrderID:       o.ID.Hex(),
		OrderNumber:   o.OrderNumber,
		ClientID:      o.ClientID,
		ClientName:    o.ClientName,
		Items:         o.Items,
		Subtotal:      o.Subtotal,
		GST:           o.GST,
		Total:         o.Total,
		ProductionLog: o.ProductionLog,
		OrderedAt:     o.CreatedAt,
		ClearedAt:     time.Now().UTC(),
		ClearedBy:     clearedBy,
	}
}
