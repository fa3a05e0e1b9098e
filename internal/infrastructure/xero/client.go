package xero

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/application"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/logging"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/resilience"
)

// Config holds Xero connection settings
type Config struct {
	BaseURL     string
	TenantID    string
	AccessToken string
	Timeout     time.Duration
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "https://api.xero.com/api.xro/2.0",
		Timeout: 30 * time.Second,
	}
}

// Client pushes invoices to Xero. Calls go through a circuit breaker so a
// Xero outage fails fast instead of tying up request handlers.
type Client struct {
	config     *Config
	httpClient *http.Client
	breaker    *resilience.CircuitBreaker
	logger     *logging.Logger
}

// NewClient creates a new Xero client
func NewClient(config *Config, logger *logging.Logger) *Client {
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		breaker:    resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("xero"), logger.Logger),
		logger:     logger,
	}
}

type invoiceRequest struct {
	Type            string        `json:"Type"`
	Contact         contactRef    `json:"Contact"`
	InvoiceNumber   string        `json:"InvoiceNumber"`
	Reference       string        `json:"Reference,omitempty"`
	LineItems       []invoiceLine `json:"LineItems"`
	Status          string        `json:"Status"`
	LineAmountTypes string        `json:"LineAmountTypes"`
}

type contactRef struct {
	Name string `json:"Name"`
}

type invoiceLine struct {
	Description string  `json:"Description"`
	Quantity    float64 `json:"Quantity"`
	UnitAmount  float64 `json:"UnitAmount"`
	LineAmount  float64 `json:"LineAmount"`
	TaxType     string  `json:"TaxType"`
}

type invoiceResponse struct {
	Invoices []struct {
		InvoiceID     string `json:"InvoiceID"`
		InvoiceNumber string `json:"InvoiceNumber"`
	} `json:"Invoices"`
}

// PushInvoice sends the invoice to Xero and returns Xero's invoice id
func (c *Client) PushInvoice(ctx context.Context, payload application.InvoicePayload) (string, error) {
	body := invoiceRequest{
		Type:            "ACCREC",
		Contact:         contactRef{Name: payload.ClientName},
		InvoiceNumber:   payload.InvoiceNumber,
		Reference:       payload.Reference,
		Status:          "AUTHORISED",
		LineAmountTypes: "Exclusive",
		LineItems:       make([]invoiceLine, 0, len(payload.LineItems)),
	}
	for _, line := range payload.LineItems {
		body.LineItems = append(body.LineItems, invoiceLine{
			Description: line.Description,
			Quantity:    line.Quantity,
			UnitAmount:  line.UnitAmount,
			LineAmount:  line.LineAmount,
			TaxType:     "OUTPUT",
		})
	}

	result, err := c.breaker.Execute(ctx, func() (interface{}, error) {
		return c.postInvoice(ctx, body)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (c *Client) postInvoice(ctx context.Context, body invoiceRequest) (string, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode invoice: %w", err)
	}

	url := c.config.BaseURL + "/Invoices"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)
	if c.config.TenantID != "" {
		req.Header.Set("Xero-Tenant-Id", c.config.TenantID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to push invoice: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.logger.Warn("Xero rejected invoice",
			"invoiceNumber", body.InvoiceNumber, "status", resp.StatusCode, "body", string(detail))
		return "", fmt.Errorf("xero returned status %d", resp.StatusCode)
	}

	var decoded invoiceResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode invoice response: %w", err)
	}
	if len(decoded.Invoices) == 0 {
		return "", fmt.Errorf("xero response contained no invoices")
	}
	return decoded.Invoices[0].InvoiceID, nil
}
