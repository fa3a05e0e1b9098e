package application

import "time"

// ClientDTO represents a client in responses
type ClientDTO struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	ContactName    string    `json:"contactName,omitempty"`
	ContactEmail   string    `json:"contactEmail,omitempty"`
	ContactPhone   string    `json:"contactPhone,omitempty"`
	BillingAddress string    `json:"billingAddress,omitempty"`
	ABN            string    `json:"abn,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ProductDTO represents a product in responses
type ProductDTO struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	ClientID    string    `json:"clientId"`
	CoreSize    float64   `json:"coreSize,omitempty"`
	Width       float64   `json:"width,omitempty"`
	Diameter    float64   `json:"diameter,omitempty"`
	Unit        string    `json:"unit"`
	UnitPrice   float64   `json:"unitPrice"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// OrderItemDTO is one line on an order
type OrderItemDTO struct {
	ProductID   string  `json:"productId"`
	ProductCode string  `json:"productCode"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	LineTotal   float64 `json:"lineTotal"`
}

// ProductionLogDTO is one stage transition on an order
type ProductionLogDTO struct {
	FromStage string    `json:"fromStage"`
	ToStage   string    `json:"toStage"`
	ChangedBy string    `json:"changedBy"`
	ChangedAt time.Time `json:"changedAt"`
	Note      string    `json:"note,omitempty"`
}

// OrderDTO represents a board order in responses
type OrderDTO struct {
	ID            string             `json:"id"`
	OrderNumber   string             `json:"orderNumber"`
	ClientID      string             `json:"clientId"`
	ClientName    string             `json:"clientName"`
	Items         []OrderItemDTO     `json:"items"`
	Stage         string             `json:"stage"`
	Status        string             `json:"status"`
	InAccounting  bool               `json:"inAccounting"`
	Subtotal      float64            `json:"subtotal"`
	GST           float64            `json:"gst"`
	Total         float64            `json:"total"`
	DueDate       time.Time          `json:"dueDate"`
	Notes         string             `json:"notes,omitempty"`
	ProductionLog []ProductionLogDTO `json:"productionLog"`
	CompletedAt   *time.Time         `json:"completedAt,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// ArchivedOrderDTO represents a cleared-order snapshot
type ArchivedOrderDTO struct {
	ID            string             `json:"id"`
	OrderID       string             `json:"orderId"`
	OrderNumber   string             `json:"orderNumber"`
	ClientID      string             `json:"clientId"`
	ClientName    string             `json:"clientName"`
	Items         []OrderItemDTO     `json:"items"`
	Subtotal      float64            `json:"subtotal"`
	GST           float64            `json:"gst"`
	Total         float64            `json:"total"`
	ProductionLog []ProductionLogDTO `json:"productionLog"`
	OrderedAt     time.Time          `json:"orderedAt"`
	ClearedAt     time.Time          `json:"clearedAt"`
	ClearedBy     string             `json:"clearedBy"`
}

// DeleteOrderResultDTO reports the outcome of an order deletion
type DeleteOrderResultDTO struct {
	OrderNumber      string  `json:"orderNumber"`
	ItemsReturned    int     `json:"itemsReturned"`
	QuantityReturned float64 `json:"quantityReturned"`
}

// StockEntryDTO represents a stock entry in responses
type StockEntryDTO struct {
	ID                string    `json:"id"`
	ClientID          string    `json:"clientId"`
	ProductID         string    `json:"productId"`
	ProductCode       string    `json:"productCode"`
	Description       string    `json:"description"`
	Unit              string    `json:"unit"`
	QuantityOnHand    float64   `json:"quantityOnHand"`
	MinimumStockLevel float64   `json:"minimumStockLevel"`
	Location          string    `json:"location,omitempty"`
	IsLow             bool      `json:"isLow"`
	IsArchived        bool      `json:"isArchived"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// StockMovementDTO is one row of the stock ledger
type StockMovementDTO struct {
	ID          string     `json:"id"`
	StockID     string     `json:"stockId"`
	ProductCode string     `json:"productCode"`
	Type        string     `json:"type"`
	Quantity    float64    `json:"quantity"`
	OrderID     string     `json:"orderId,omitempty"`
	OrderNumber string     `json:"orderNumber,omitempty"`
	Note        string     `json:"note,omitempty"`
	IsArchived  bool       `json:"isArchived"`
	ArchivedBy  string     `json:"archivedBy,omitempty"`
	ArchivedAt  *time.Time `json:"archivedAt,omitempty"`
	CreatedBy   string     `json:"createdBy"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// StockReportLineDTO is one entry of the stock report with its ledger totals
type StockReportLineDTO struct {
	Entry          *StockEntryDTO `json:"entry"`
	TotalAdded     float64        `json:"totalAdded"`
	TotalConsumed  float64        `json:"totalConsumed"`
	TotalAllocated float64        `json:"totalAllocated"`
	TotalReturned  float64        `json:"totalReturned"`
	MovementCount  int64          `json:"movementCount"`
}

// StockReportDTO summarises stock entries against their movement ledgers
type StockReportDTO struct {
	Lines    []StockReportLineDTO `json:"lines"`
	LowStock []*StockEntryDTO     `json:"lowStock"`
}

// EmployeeDTO represents an employee profile in responses
type EmployeeDTO struct {
	ID                 string           `json:"id"`
	Name               string           `json:"name"`
	Role               string           `json:"role"`
	Email              string           `json:"email,omitempty"`
	HourlyRate         float64          `json:"hourlyRate"`
	OvertimeMultiplier float64          `json:"overtimeMultiplier"`
	LeaveBalances      LeaveBalancesDTO `json:"leaveBalances"`
	IsActive           bool             `json:"isActive"`
	CreatedAt          time.Time        `json:"createdAt"`
	UpdatedAt          time.Time        `json:"updatedAt"`
}

// LeaveBalancesDTO is the per-type remaining leave hours
type LeaveBalancesDTO struct {
	Annual   float64 `json:"annual"`
	Sick     float64 `json:"sick"`
	Personal float64 `json:"personal"`
}

// TimesheetEntryDTO is one day on a timesheet
type TimesheetEntryDTO struct {
	Day           string  `json:"day"`
	OrdinaryHours float64 `json:"ordinaryHours"`
	OvertimeHours float64 `json:"overtimeHours"`
	Notes         string  `json:"notes,omitempty"`
}

// TimesheetDTO represents a timesheet in responses
type TimesheetDTO struct {
	ID            string              `json:"id"`
	EmployeeID    string              `json:"employeeId"`
	EmployeeName  string              `json:"employeeName"`
	WeekStarting  time.Time           `json:"weekStarting"`
	Entries       []TimesheetEntryDTO `json:"entries"`
	OrdinaryHours float64             `json:"ordinaryHours"`
	OvertimeHours float64             `json:"overtimeHours"`
	Status        string              `json:"status"`
	SubmittedAt   *time.Time          `json:"submittedAt,omitempty"`
	DecidedBy     string              `json:"decidedBy,omitempty"`
	DecidedAt     *time.Time          `json:"decidedAt,omitempty"`
	RejectReason  string              `json:"rejectReason,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// PayrollRecordDTO is the pay outcome of one approved timesheet
type PayrollRecordDTO struct {
	ID            string    `json:"id"`
	TimesheetID   string    `json:"timesheetId"`
	EmployeeID    string    `json:"employeeId"`
	EmployeeName  string    `json:"employeeName"`
	WeekStarting  time.Time `json:"weekStarting"`
	OrdinaryHours float64   `json:"ordinaryHours"`
	OvertimeHours float64   `json:"overtimeHours"`
	HourlyRate    float64   `json:"hourlyRate"`
	OrdinaryPay   float64   `json:"ordinaryPay"`
	OvertimePay   float64   `json:"overtimePay"`
	GrossPay      float64   `json:"grossPay"`
	AccruedAnnual float64   `json:"accruedAnnual"`
	AccruedSick   float64   `json:"accruedSick"`
	ApprovedBy    string    `json:"approvedBy"`
	CreatedAt     time.Time `json:"createdAt"`
}

// LeaveRequestDTO represents a leave request in responses
type LeaveRequestDTO struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	EmployeeName string     `json:"employeeName"`
	Type         string     `json:"type"`
	Hours        float64    `json:"hours"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	DecidedBy    string     `json:"decidedBy,omitempty"`
	DecidedAt    *time.Time `json:"decidedAt,omitempty"`
	DecisionNote string     `json:"decisionNote,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// LeaveAdjustmentDTO is one manual balance change
type LeaveAdjustmentDTO struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Type       string    `json:"type"`
	Hours      float64   `json:"hours"`
	Reason     string    `json:"reason"`
	AdjustedBy string    `json:"adjustedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// InvoiceDTO represents an invoice in responses
type InvoiceDTO struct {
	ID            string         `json:"id"`
	InvoiceNumber string         `json:"invoiceNumber"`
	OrderID       string         `json:"orderId"`
	OrderNumber   string         `json:"orderNumber"`
	ClientID      string         `json:"clientId"`
	ClientName    string         `json:"clientName"`
	Items         []OrderItemDTO `json:"items"`
	Subtotal      float64        `json:"subtotal"`
	GST           float64        `json:"gst"`
	Total         float64        `json:"total"`
	SyncStatus    string         `json:"syncStatus"`
	XeroInvoiceID string         `json:"xeroInvoiceId,omitempty"`
	LastSyncError string         `json:"lastSyncError,omitempty"`
	LastSyncedAt  *time.Time     `json:"lastSyncedAt,omitempty"`
	IssuedAt      time.Time      `json:"issuedAt"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// BoardColumnDTO is one stage column of the production board report
type BoardColumnDTO struct {
	Stage  string     `json:"stage"`
	Count  int64      `json:"count"`
	Orders []OrderDTO `json:"orders,omitempty"`
}

// BoardReportDTO is the production board grouped by stage
type BoardReportDTO struct {
	Columns     []BoardColumnDTO `json:"columns"`
	TotalOrders int64            `json:"totalOrders"`
	GeneratedAt time.Time        `json:"generatedAt"`
}

// EmployeeHoursDTO is one row of the timesheet report
type EmployeeHoursDTO struct {
	EmployeeID    string  `json:"employeeId"`
	EmployeeName  string  `json:"employeeName"`
	OrdinaryHours float64 `json:"ordinaryHours"`
	OvertimeHours float64 `json:"overtimeHours"`
	GrossPay      float64 `json:"grossPay"`
	Weeks         int     `json:"weeks"`
}

// TimesheetReportDTO aggregates hours per employee over a period
type TimesheetReportDTO struct {
	From        time.Time          `json:"from"`
	To          time.Time          `json:"to"`
	Employees   []EmployeeHoursDTO `json:"employees"`
	GeneratedAt time.Time          `json:"generatedAt"`
}

// LeaveBalanceSummaryDTO is the balance view for one employee
type LeaveBalanceSummaryDTO struct {
	EmployeeID   string               `json:"employeeId"`
	EmployeeName string               `json:"employeeName"`
	Balances     LeaveBalancesDTO     `json:"balances"`
	Pending      []LeaveRequestDTO    `json:"pending,omitempty"`
	Adjustments  []LeaveAdjustmentDTO `json:"adjustments,omitempty"`
}
