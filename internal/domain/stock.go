package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MovementType classifies a stock movement
type MovementType string

const (
	MovementAddition    MovementType = "addition"
	MovementConsumption MovementType = "consumption"
	MovementAllocation  MovementType = "allocation"
	MovementReturn      MovementType = "return"
)

// IsValid checks if the movement type is valid
func (m MovementType) IsValid() bool {
	switch m {
	case MovementAddition, MovementConsumption, MovementAllocation, MovementReturn:
		return true
	default:
		return false
	}
}

// StockEntry is the aggregate for one stocked product. QuantityOnHand is a
// denormalized cache of the movement ledger and is only mutated through
// filtered updates in the repository.
type StockEntry struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClientID          string             `bson:"client_id" json:"client_id"`
	ProductID         string             `bson:"product_id" json:"product_id"`
	ProductCode       string             `bson:"product_code" json:"product_code"`
	Description       string             `bson:"description" json:"description"`
	Unit              string             `bson:"unit" json:"unit"`
	QuantityOnHand    float64            `bson:"quantity_on_hand" json:"quantity_on_hand"`
	MinimumStockLevel float64            `bson:"minimum_stock_level" json:"minimum_stock_level"`
	Location          string             `bson:"location,omitempty" json:"location,omitempty"`
	IsArchived        bool               `bson:"is_archived" json:"is_archived"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}

// NewStockEntry creates a stock entry with an opening balance
func NewStockEntry(clientID, productID, productCode, description, unit string, opening, minimumLevel float64, location string) *StockEntry {
	now := time.Now().UTC()
	return &StockEntry{
		ID:                primitive.NewObjectID(),
		ClientID:          clientID,
		ProductID:         productID,
		ProductCode:       productCode,
		Description:       description,
		Unit:              unit,
		QuantityOnHand:    opening,
		MinimumStockLevel: minimumLevel,
		Location:          location,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// IsLow returns true when the cached balance is at or below the minimum level
func (s *StockEntry) IsLow() bool {
	return s.MinimumStockLevel > 0 && s.QuantityOnHand <= s.MinimumStockLevel
}

// StockMovement is one append-only row in the stock ledger. Quantity is signed:
// positive for additions and returns, negative for consumption and allocation.
// Movements are never deleted, clearing or deleting an order archives them.
type StockMovement struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	StockID     string             `bson:"stock_id" json:"stock_id"`
	ProductCode string             `bson:"product_code" json:"product_code"`
	Type        MovementType       `bson:"type" json:"type"`
	Quantity    float64            `bson:"quantity" json:"quantity"`
	OrderID     string             `bson:"order_id,omitempty" json:"order_id,omitempty"`
	OrderNumber string             `bson:"order_number,omitempty" json:"order_number,omitempty"`
	Note        string             `bson:"note,omitempty" json:"note,omitempty"`
	IsArchived  bool               `bson:"is_archived" json:"is_archived"`
	ArchivedBy  string             `bson:"archived_by,omitempty" json:"archived_by,omitempty"`
	ArchivedAt  *time.Time         `bson:"archived_at,omitempty" json:"archived_at,omitempty"`
	CreatedBy   string             `bson:"created_by" json:"created_by"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// NewStockMovement creates a ledger row with the sign convention applied
func NewStockMovement(entry *StockEntry, movType MovementType, qty float64, orderID, orderNumber, note, createdBy string) (*StockMovement, error) {
	if !movType.IsValid() {
		return nil, ErrInvalidMovementType
	}
	if qty <= 0 {
		return nil, ErrNonPositiveQuantity
	}

	signed := qty
	if movType == MovementConsumption || movType == MovementAllocation {
		signed = -qty
	}

	return &StockMovement{
		ID:          primitive.NewObjectID(),
		StockID:     entry.ID.Hex(),
		ProductCode: entry.ProductCode,
		Type:        movType,
		Quantity:    signed,
		OrderID:     orderID,
		OrderNumber: orderNumber,
		Note:        note,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// AbsQuantity returns the unsigned magnitude of the movement
func (m *StockMovement) AbsQuantity() float64 {
	if m.Quantity < 0 {
		return -m.Quantity
	}
	return m.Quantity
}

// IsActiveAllocation reports whether this row still reserves stock for an order
func (m *StockMovement) IsActiveAllocation() bool {
	return m.Type == MovementAllocation && !m.IsArchived
}
