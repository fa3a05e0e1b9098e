package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client is a customer the factory manufactures for
type Client struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	ContactName    string             `bson:"contact_name,omitempty" json:"contact_name,omitempty"`
	ContactEmail   string             `bson:"contact_email,omitempty" json:"contact_email,omitempty"`
	ContactPhone   string             `bson:"contact_phone,omitempty" json:"contact_phone,omitempty"`
	BillingAddress string             `bson:"billing_address,omitempty" json:"billing_address,omitempty"`
	ABN            string             `bson:"abn,omitempty" json:"abn,omitempty"`
	LogoRef        string             `bson:"logo_ref,omitempty" json:"logo_ref,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// NewClient creates a client
func NewClient(name, contactName, contactEmail, contactPhone, billingAddress, abn string) *Client {
	now := time.Now().UTC()
	return &Client{
		ID:             primitive.NewObjectID(),
		Name:           name,
		ContactName:    contactName,
		ContactEmail:   contactEmail,
		ContactPhone:   contactPhone,
		BillingAddress: billingAddress,
		ABN:            abn,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Product is a manufactured item owned by one client
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code        string             `bson:"code" json:"code"`
	Description string             `bson:"description" json:"description"`
	ClientID    string             `bson:"client_id" json:"client_id"`
	CoreSize    float64            `bson:"core_size,omitempty" json:"core_size,omitempty"`
	Width       float64            `bson:"width,omitempty" json:"width,omitempty"`
	Diameter    float64            `bson:"diameter,omitempty" json:"diameter,omitempty"`
	Unit        string             `bson:"unit" json:"unit"`
	UnitPrice   float64            `bson:"unit_price" json:"unit_price"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// NewProduct creates a product owned by a client
func NewProduct(code, description, clientID, unit string, unitPrice, coreSize, width, diameter float64) *Product {
	now := time.Now().UTC()
	return &Product{
		ID:          primitive.NewObjectID(),
		Code:        code,
		Description: description,
		ClientID:    clientID,
		CoreSize:    coreSize,
		Width:       width,
		Diameter:    diameter,
		Unit:        unit,
		UnitPrice:   unitPrice,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
