package application

import "github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/domain"

// ToClientDTO converts a domain Client to ClientDTO
func ToClientDTO(c *domain.Client) *ClientDTO {
	if c == nil {
		return nil
	}
	return &ClientDTO{
		ID:             c.ID.Hex(),
		Name:           c.Name,
		ContactName:    c.ContactName,
		ContactEmail:   c.ContactEmail,
		ContactPhone:   c.ContactPhone,
		BillingAddress: c.BillingAddress,
		ABN:            c.ABN,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

// ToProductDTO converts a domain Product to ProductDTO
func ToProductDTO(p *domain.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:          p.ID.Hex(),
		Code:        p.Code,
		Description: p.Description,
		ClientID:    p.ClientID,
		CoreSize:    p.CoreSize,
		Width:       p.Width,
		Diameter:    p.Diameter,
		Unit:        p.Unit,
		UnitPrice:   p.UnitPrice,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToOrderItemDTO converts one order line
func ToOrderItemDTO(item domain.OrderItem) OrderItemDTO {
	return OrderItemDTO{
		ProductID:   item.ProductID,
		ProductCode: item.ProductCode,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		LineTotal:   item.LineTotal,
	}
}

func toOrderItemDTOs(items []domain.OrderItem) []OrderItemDTO {
	out := make([]OrderItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, ToOrderItemDTO(item))
	}
	return out
}

func toProductionLogDTOs(log []domain.ProductionLogEntry) []ProductionLogDTO {
	out := make([]ProductionLogDTO, 0, len(log))
	for _, entry := range log {
		out = append(out, ProductionLogDTO{
			FromStage: string(entry.FromStage),
			ToStage:   string(entry.ToStage),
			ChangedBy: entry.ChangedBy,
			ChangedAt: entry.ChangedAt,
			Note:      entry.Note,
		})
	}
	return out
}

// ToOrderDTO converts a domain Order to OrderDTO
func ToOrderDTO(o *domain.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	return &OrderDTO{
		ID:            o.ID.Hex(),
		OrderNumber:   o.OrderNumber,
		ClientID:      o.ClientID,
		ClientName:    o.ClientName,
		Items:         toOrderItemDTOs(o.Items),
		Stage:         string(o.Stage),
		Status:        string(o.Status),
		InAccounting:  o.InAccounting,
		Subtotal:      o.Subtotal,
		GST:           o.GST,
		Total:         o.Total,
		DueDate:       o.DueDate,
		Notes:         o.Notes,
		ProductionLog: toProductionLogDTOs(o.ProductionLog),
		CompletedAt:   o.CompletedAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// ToArchivedOrderDTO converts a cleared-order snapshot
func ToArchivedOrderDTO(a *domain.ArchivedOrder) *ArchivedOrderDTO {
	if a == nil {
		return nil
	}
	return &ArchivedOrderDTO{
		ID:            a.ID.Hex(),
		OrderID:       a.OrderID,
		OrderNumber:   a.OrderNumber,
		ClientID:      a.ClientID,
		ClientName:    a.ClientName,
		Items:         toOrderItemDTOs(a.Items),
		Subtotal:      a.Subtotal,
		GST:           a.GST,
		Total:         a.Total,
		ProductionLog: toProductionLogDTOs(a.ProductionLog),
		OrderedAt:     a.OrderedAt,
		ClearedAt:     a.ClearedAt,
		ClearedBy:     a.ClearedBy,
	}
}

// ToStockEntryDTO converts a domain StockEntry to StockEntryDTO
func ToStockEntryDTO(s *domain.StockEntry) *StockEntryDTO {
	if s == nil {
		return nil
	}
	return &StockEntryDTO{
		ID:                s.ID.Hex(),
		ClientID:          s.ClientID,
		ProductID:         s.ProductID,
		ProductCode:       s.ProductCode,
		Description:       s.Description,
		Unit:              s.Unit,
		QuantityOnHand:    s.QuantityOnHand,
		MinimumStockLevel: s.MinimumStockLevel,
		Location:          s.Location,
		IsLow:             s.IsLow(),
		IsArchived:        s.IsArchived,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

// ToStockMovementDTO converts one ledger row
func ToStockMovementDTO(m *domain.StockMovement) *StockMovementDTO {
	if m == nil {
		return nil
	}
	return &StockMovementDTO{
		ID:          m.ID.Hex(),
		StockID:     m.StockID,
		ProductCode: m.ProductCode,
		Type:        string(m.Type),
		Quantity:    m.Quantity,
		OrderID:     m.OrderID,
		OrderNumber: m.OrderNumber,
		Note:        m.Note,
		IsArchived:  m.IsArchived,
		ArchivedBy:  m.ArchivedBy,
		ArchivedAt:  m.ArchivedAt,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}

// ToEmployeeDTO converts a domain EmployeeProfile to EmployeeDTO
func ToEmployeeDTO(e *domain.EmployeeProfile) *EmployeeDTO {
	if e == nil {
		return nil
	}
	return &EmployeeDTO{
		ID:                 e.ID.Hex(),
		Name:               e.Name,
		Role:               e.Role,
		Email:              e.Email,
		HourlyRate:         e.HourlyRate,
		OvertimeMultiplier: e.OvertimeMultiplier,
		LeaveBalances: LeaveBalancesDTO{
			Annual:   e.LeaveBalances.Annual,
			Sick:     e.LeaveBalances.Sick,
			Personal: e.LeaveBalances.Personal,
		},
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// ToTimesheetDTO converts a domain Timesheet to TimesheetDTO
func ToTimesheetDTO(t *domain.Timesheet) *TimesheetDTO {
	if t == nil {
		return nil
	}
	entries := make([]TimesheetEntryDTO, 0, len(t.Entries))
	for _, e := range t.Entries {
		entries = append(entries, TimesheetEntryDTO{
			Day:           e.Day,
			OrdinaryHours: e.OrdinaryHours,
			OvertimeHours: e.OvertimeHours,
			Notes:         e.Notes,
		})
	}
	return &TimesheetDTO{
		ID:            t.ID.Hex(),
		EmployeeID:    t.EmployeeID,
		EmployeeName:  t.EmployeeName,
		WeekStarting:  t.WeekStarting,
		Entries:       entries,
		OrdinaryHours: t.OrdinaryHours(),
		OvertimeHours: t.OvertimeHours(),
		Status:        string(t.Status),
		SubmittedAt:   t.SubmittedAt,
		DecidedBy:     t.DecidedBy,
		DecidedAt:     t.DecidedAt,
		RejectReason:  t.RejectReason,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ToPayrollRecordDTO converts a domain PayrollRecord to PayrollRecordDTO
func ToPayrollRecordDTO(r *domain.PayrollRecord) *PayrollRecordDTO {
	if r == nil {
		return nil
	}
	return &PayrollRecordDTO{
		ID:            r.ID.Hex(),
		TimesheetID:   r.TimesheetID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		WeekStarting:  r.WeekStarting,
		OrdinaryHours: r.OrdinaryHours,
		OvertimeHours: r.OvertimeHours,
		HourlyRate:    r.HourlyRate,
		OrdinaryPay:   r.OrdinaryPay,
		OvertimePay:   r.OvertimePay,
		GrossPay:      r.GrossPay,
		AccruedAnnual: r.AccruedAnnual,
		AccruedSick:   r.AccruedSick,
		ApprovedBy:    r.ApprovedBy,
		CreatedAt:     r.CreatedAt,
	}
}

// ToLeaveRequestDTO converts a domain LeaveRequest to LeaveRequestDTO
func ToLeaveRequestDTO(r *domain.LeaveRequest) *LeaveRequestDTO {
	if r == nil {
		return nil
	}
	return &LeaveRequestDTO{
		ID:           r.ID.Hex(),
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Type:         string(r.Type),
		Hours:        r.Hours,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Reason:       r.Reason,
		Status:       string(r.Status),
		DecidedBy:    r.DecidedBy,
		DecidedAt:    r.DecidedAt,
		DecisionNote: r.DecisionNote,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ToLeaveAdjustmentDTO converts a domain LeaveAdjustment to LeaveAdjustmentDTO
func ToLeaveAdjustmentDTO(a *domain.LeaveAdjustment) *LeaveAdjustmentDTO {
	if a == nil {
		return nil
	}
	return &LeaveAdjustmentDTO{
		ID:         a.ID.Hex(),
		EmployeeID: a.EmployeeID,
		Type:       string(a.Type),
		Hours:      a.Hours,
		Reason:     a.Reason,
		AdjustedBy: a.AdjustedBy,
		CreatedAt:  a.CreatedAt,
	}
}

// ToInvoiceDTO converts a domain Invoice to InvoiceDTO
func ToInvoiceDTO(i *domain.Invoice) *InvoiceDTO {
	if i == nil {
		return nil
	}
	return &InvoiceDTO{
		ID:            i.ID.Hex(),
		InvoiceNumber: i.InvoiceNumber,
		OrderID:       i.OrderID,
		OrderNumber:   i.OrderNumber,
		ClientID:      i.ClientID,
		ClientName:    i.ClientName,
		Items:         toOrderItemDTOs(i.Items),
		Subtotal:      i.Subtotal,
		GST:           i.GST,
		Total:         i.Total,
		SyncStatus:    string(i.SyncStatus),
		XeroInvoiceID: i.XeroInvoiceID,
		LastSyncError: i.LastSyncError,
		LastSyncedAt:  i.LastSyncedAt,
		IssuedAt:      i.IssuedAt,
		CreatedAt:     i.CreatedAt,
	}
}
