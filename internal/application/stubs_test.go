package application

import (
	"context"
	"time"

	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/domain"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/logging"
)

func testLogger() *logging.Logger {
	return logging.New(logging.DefaultConfig("test"))
}

// stubTx runs the function directly, standing in for a storage transaction
type stubTx struct{}

func (stubTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubOrderRepo struct {
	SaveFn              func(ctx context.Context, order *domain.Order) error
	FindByIDFn          func(ctx context.Context, id string) (*domain.Order, error)
	FindByOrderNumberFn func(ctx context.Context, orderNumber string) (*domain.Order, error)
	ListFn              func(ctx context.Context, filter domain.OrderFilter, skip, limit int64) ([]*domain.Order, int64, error)
	CountByStageFn      func(ctx context.Context) (map[domain.Stage]int64, error)
	NextOrderNumberFn   func(ctx context.Context, year int) (string, error)
	DeleteFn            func(ctx context.Context, id string) error
}

func (s *stubOrderRepo) Save(ctx context.Context, order *domain.Order) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, order)
	}
	return nil
}

func (s *stubOrderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	if s.FindByIDFn != nil {
		return s.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *stubOrderRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	if s.FindByOrderNumberFn != nil {
		return s.FindByOrderNumberFn(ctx, orderNumber)
	}
	return nil, nil
}

func (s *stubOrderRepo) List(ctx context.Context, filter domain.OrderFilter, skip, limit int64) ([]*domain.Order, int64, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter, skip, limit)
	}
	return nil, 0, nil
}

func (s *stubOrderRepo) CountByStage(ctx context.Context) (map[domain.Stage]int64, error) {
	if s.CountByStageFn != nil {
		return s.CountByStageFn(ctx)
	}
	return map[domain.Stage]int64{}, nil
}

func (s *stubOrderRepo) NextOrderNumber(ctx context.Context, year int) (string, error) {
	if s.NextOrderNumberFn != nil {
		return s.NextOrderNumberFn(ctx, year)
	}
	return "ADM-2025-0001", nil
}

func (s *stubOrderRepo) Delete(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

type stubArchivedRepo struct {
	SaveFn              func(ctx context.Context, archived *domain.ArchivedOrder) error
	FindByOrderNumberFn func(ctx context.Context, orderNumber string) (*domain.ArchivedOrder, error)
	ListFn              func(ctx context.Context, clientID string, skip, limit int64) ([]*domain.ArchivedOrder, int64, error)
}

func (s *stubArchivedRepo) Save(ctx context.Context, archived *domain.ArchivedOrder) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, archived)
	}
	return nil
}

func (s *stubArchivedRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (*domain.ArchivedOrder, error) {
	if s.FindByOrderNumberFn != nil {
		return s.FindByOrderNumberFn(ctx, orderNumber)
	}
	return nil, nil
}

func (s *stubArchivedRepo) List(ctx context.Context, clientID string, skip, limit int64) ([]*domain.ArchivedOrder, int64, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, clientID, skip, limit)
	}
	return nil, 0, nil
}

type stubStockRepo struct {
	SaveFn              func(ctx context.Context, entry *domain.StockEntry) error
	FindByIDFn          func(ctx context.Context, id string) (*domain.StockEntry, error)
	FindByProductCodeFn func(ctx context.Context, productCode string) (*domain.StockEntry, error)
	ListFn              func(ctx context.Context, clientID string, lowOnly bool, skip, limit int64) ([]*domain.StockEntry, int64, error)
	AdjustQuantityFn    func(ctx context.Context, id string, delta float64) (*domain.StockEntry, error)
	ArchiveFn           func(ctx context.Context, id string) error
}

func (s *stubStockRepo) Save(ctx context.Context, entry *domain.StockEntry) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, entry)
	}
	return nil
}

func (s *stubStockRepo) FindByID(ctx context.Context, id string) (*domain.StockEntry, error) {
	if s.FindByIDFn != nil {
		return s.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *stubStockRepo) FindByProductCode(ctx context.Context, productCode string) (*domain.StockEntry, error) {
	if s.FindByProductCodeFn != nil {
		return s.FindByProductCodeFn(ctx, productCode)
	}
	return nil, nil
}

func (s *stubStockRepo) List(ctx context.Context, clientID string, lowOnly bool, skip, limit int64) ([]*domain.StockEntry, int64, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, clientID, lowOnly, skip, limit)
	}
	return nil, 0, nil
}

func (s *stubStockRepo) AdjustQuantity(ctx context.Context, id string, delta float64) (*domain.StockEntry, error) {
	if s.AdjustQuantityFn != nil {
		return s.AdjustQuantityFn(ctx, id, delta)
	}
	return nil, nil
}

func (s *stubStockRepo) Archive(ctx context.Context, id string) error {
	if s.ArchiveFn != nil {
		return s.ArchiveFn(ctx, id)
	}
	return nil
}

type stubMovementRepo struct {
	AppendFn                       func(ctx context.Context, movement *domain.StockMovement) error
	FindByIDFn                     func(ctx context.Context, id string) (*domain.StockMovement, error)
	ListFn                         func(ctx context.Context, filter domain.MovementFilter, skip, limit int64) ([]*domain.StockMovement, int64, error)
	FindActiveAllocationsByOrderFn func(ctx context.Context, orderID string) ([]*domain.StockMovement, error)
	ArchiveByOrderFn               func(ctx context.Context, orderID, archivedBy string) (int64, error)
	ArchiveOneFn                   func(ctx context.Context, id, archivedBy string) error
}

func (s *stubMovementRepo) Append(ctx context.Context, movement *domain.StockMovement) error {
	if s.AppendFn != nil {
		return s.AppendFn(ctx, movement)
	}
	return nil
}

func (s *stubMovementRepo) FindByID(ctx context.Context, id string) (*domain.StockMovement, error) {
	if s.FindByIDFn != nil {
		return s.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *stubMovementRepo) List(ctx context.Context, filter domain.MovementFilter, skip, limit int64) ([]*domain.StockMovement, int64, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter, skip, limit)
	}
	return nil, 0, nil
}

func (s *stubMovementRepo) FindActiveAllocationsByOrder(ctx context.Context, orderID string) ([]*domain.StockMovement, error) {
	if s.FindActiveAllocationsByOrderFn != nil {
		return s.FindActiveAllocationsByOrderFn(ctx, orderID)
	}
	return nil, nil
}

func (s *stubMovementRepo) ArchiveByOrder(ctx context.Context, orderID, archivedBy string) (int64, error) {
	if s.ArchiveByOrderFn != nil {
		return s.ArchiveByOrderFn(ctx, orderID, archivedBy)
	}
	return 0, nil
}

func (s *stubMovementRepo) ArchiveOne(ctx context.Context, id, archivedBy string) error {
	if s.ArchiveOneFn != nil {
		return s.ArchiveOneFn(ctx, id, archivedBy)
	}
	return nil
}

type stubClientRepo struct {
	SaveFn     func(ctx context.Context, client *domain.Client) error
	FindByIDFn func(ctx context.Context, id string) (*domain.Client, error)
	ListFn     func(ctx context.Context, skip, limit int64) ([]*domain.Client, int64, error)
	DeleteFn   func(ctx context.Context, id string) error
}

func (s *stubClientRepo) Save(ctx context.Context, client *domain.Client) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, client)
	}
	return nil
}

func (s *stubClientRepo) FindByID(ctx context.Context, id string) (*domain.Client, error) {
	if s.FindByIDFn != nil {
		return s.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *stubClientRepo) List(ctx context.Context, skip, limit int64) ([]*domain.Client, int64, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, skip, limit)
	}
	return nil, 0, nil
}

func (s *stubClientRepo) Delete(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

type stubProductRepo struct {
	SaveFn          func(ctx context.Context, product *domain.Product) error
	FindByIDFn      func(ctx context.Context, id string) (*domain.Product, error)
	FindByCodeFn    func(ctx context.Context, code string) (*domain.Product, error)
	ListFn          func(ctx context.Context, clientID string, skip, limit int64) ([]*domain.Product, int64, error)
	CountByClientFn func(ctx context.Context, clientID string) (int64, error)
	DeleteFn        func(ctx context.Context, id string) error
}

func (s *stubProductRepo) Save(ctx context.Context, product *domain.Product) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, product)
	}
	return nil
}

func (s *stubProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	if s.FindByIDFn != nil {
		return s.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *stubProductRepo) FindByCode(ctx context.Context, code string) (*domain.Product, error) {
	if s.FindByCodeFn != nil {
		return s.FindByCodeFn(ctx, code)
	}
	return nil, nil
}

func (s *stubProductRepo) List(ctx context.Context, clientID string, skip, limit int64) ([]*domain.Product, int64, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, clientID, skip, limit)
	}
	return nil, 0, nil
}

func (s *stubProductRepo) CountByClient(ctx context.Context, clientID string) (int64, error) {
	if s.CountByClientFn != nil {
		return s.CountByClientFn(ctx, clientID)
	}
	return 0, nil
}

func (s *stubProductRepo) Delete(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

type stubTimesheetRepo struct {
	SaveFn                  func(ctx context.Context, timesheet *domain.Timesheet) error
	FindByIDFn              func(ctx context.Context, id string) (*domain.Timesheet, error)
	ListFn                  func(ctx context.Context, employeeID string, status domain.TimesheetStatus, skip, limit int64) ([]*domain.Timesheet, int64, error)
	FindByEmployeeAndWeekFn func(ctx context.Context, employeeID string, weekStarting time.Time) (*domain.Timesheet, error)
	TransitionStatusFn      func(ctx context.Context, id string, from, to domain.TimesheetStatus, decidedBy, reason string) (*domain.Timesheet, error)
	DeleteFn                func(ctx context.Context, id string) error
}

func (s *stubTimesheetRepo) Save(ctx context.Context, timesheet *domain.Timesheet) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, timesheet)
	}
	return nil
}

func (s *stubTimesheetRepo) FindByID(ctx context.Context, id string) (*domain.Timesheet, error) {
	if s.FindByIDFn != nil {
		return s.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *stubTimesheetRepo) List(ctx context.Context, employeeID string, status domain.TimesheetStatus, skip, limit int64) ([]*domain.Timesheet, int64, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, employeeID, status, skip, limit)
	}
	return nil, 0, nil
}

func (s *stubTimesheetRepo) FindByEmployeeAndWeek(ctx context.Context, employeeID string, weekStarting time.Time) (*domain.Timesheet, error) {
	if s.FindByEmployeeAndWeekFn != nil {
		return s.FindByEmployeeAndWeekFn(ctx, employeeID, weekStarting)
	}
	return nil, nil
}

func (s *stubTimesheetRepo) TransitionStatus(ctx context.Context, id string, from, to domain.TimesheetStatus, decidedBy, reason string) (*domain.Timesheet, error) {
	if s.TransitionStatusFn != nil {
		return s.TransitionStatusFn(ctx, id, from, to, decidedBy, reason)
	}
	return nil, nil
}

func (s *stubTimesheetRepo) Delete(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

type stubPayrollRepo struct {
	SaveFn            func(ctx context.Context, record *domain.PayrollRecord) error
	FindByIDFn        func(ctx context.Context, id string) (*domain.PayrollRecord, error)
	FindByTimesheetFn func(ctx context.Context, timesheetID string) (*domain.PayrollRecord, error)
	ListByEmployeeFn  func(ctx context.Context, employeeID string, from, to time.Time) ([]*domain.PayrollRecord, error)
	ListByPeriodFn    func(ctx context.Context, from, to time.Time) ([]*domain.PayrollRecord, error)
}

func (s *stubPayrollRepo) Save(ctx context.Context, record *domain.PayrollRecord) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, record)
	}
	return nil
}

func (s *stubPayrollRepo) FindByID(ctx context.Context, id string) (*domain.PayrollRecord, error) {
	if s.FindByIDFn != nil {
		return s.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *stubPayrollRepo) FindByTimesheet(ctx context.Context, timesheetID string) (*domain.PayrollRecord, error) {
	if s.FindByTimesheetFn != nil {
		return s.FindByTimesheetFn(ctx, timesheetID)
	}
	return nil, nil
}

func (s *stubPayrollRepo) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]*domain.PayrollRecord, error) {
	if s.ListByEmployeeFn != nil {
		return s.ListByEmployeeFn(ctx, employeeID, from, to)
	}
	return nil, nil
}

func (s *stubPayrollRepo) ListByPeriod(ctx context.Context, from, to time.Time) ([]*domain.PayrollRecord, error) {
	if s.ListByPeriodFn != nil {
		return s.ListByPeriodFn(ctx, from, to)
	}
	return nil, nil
}

type stubEmployeeRepo struct {
	SaveFn        func(ctx context.Context, employee *domain.EmployeeProfile) error
	FindByIDFn    func(ctx context.Context, id string) (*domain.EmployeeProfile, error)
	ListFn        func(ctx context.Context, activeOnly bool, skip, limit int64) ([]*domain.EmployeeProfile, int64, error)
	DebitLeaveFn  func(ctx context.Context, id string, leaveType domain.LeaveType, hours float64) (*domain.EmployeeProfile, error)
	CreditLeaveFn func(ctx context.Context, id string, leaveType domain.LeaveType, hours float64) (*domain.EmployeeProfile, error)
	AdjustLeaveFn func(ctx context.Context, id string, leaveType domain.LeaveType, delta float64) (*domain.EmployeeProfile, error)
	AccrueLeaveFn func(ctx context.Context, id string, annual, sick float64) error
}

func (s *stubEmployeeRepo) Save(ctx context.Context, employee *domain.EmployeeProfile) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, employee)
	}
	return nil
}

func (s *stubEmployeeRepo) FindByID(ctx context.Context, id string) (*domain.EmployeeProfile, error) {
	if s.FindByIDFn != nil {
		return s.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *stubEmployeeRepo) List(ctx context.Context, activeOnly bool, skip, limit int64) ([]*domain.EmployeeProfile, int64, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, activeOnly, skip, limit)
	}
	return nil, 0, nil
}

func (s *stubEmployeeRepo) DebitLeave(ctx context.Context, id string, leaveType domain.LeaveType, hours float64) (*domain.EmployeeProfile, error) {
	if s.DebitLeaveFn != nil {
		return s.DebitLeaveFn(ctx, id, leaveType, hours)
	}
	return nil, nil
}

func (s *stubEmployeeRepo) CreditLeave(ctx context.Context, id string, leaveType domain.LeaveType, hours float64) (*domain.EmployeeProfile, error) {
	if s.CreditLeaveFn != nil {
		return s.CreditLeaveFn(ctx, id, leaveType, hours)
	}
	return nil, nil
}

func (s *stubEmployeeRepo) AdjustLeave(ctx context.Context, id string, leaveType domain.LeaveType, delta float64) (*domain.EmployeeProfile, error) {
	if s.AdjustLeaveFn != nil {
		return s.AdjustLeaveFn(ctx, id, leaveType, delta)
	}
	return nil, nil
}

func (s *stubEmployeeRepo) AccrueLeave(ctx context.Context, id string, annual, sick float64) error {
	if s.AccrueLeaveFn != nil {
		return s.AccrueLeaveFn(ctx, id, annual, sick)
	}
	return nil
}

type stubLeaveRepo struct {
	SaveFn             func(ctx context.Context, request *domain.LeaveRequest) error
	FindByIDFn         func(ctx context.Context, id string) (*domain.LeaveRequest, error)
	ListFn             func(ctx context.Context, employeeID string, status domain.LeaveStatus, skip, limit int64) ([]*domain.LeaveRequest, int64, error)
	TransitionStatusFn func(ctx context.Context, id string, from, to domain.LeaveStatus, decidedBy, note string) (*domain.LeaveRequest, error)
}

func (s *stubLeaveRepo) Save(ctx context.Context, request *domain.LeaveRequest) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, request)
	}
	return nil
}

func (s *stubLeaveRepo) FindByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	if s.FindByIDFn != nil {
		return s.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *stubLeaveRepo) List(ctx context.Context, employeeID string, status domain.LeaveStatus, skip, limit int64) ([]*domain.LeaveRequest, int64, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, employeeID, status, skip, limit)
	}
	return nil, 0, nil
}

func (s *stubLeaveRepo) TransitionStatus(ctx context.Context, id string, from, to domain.LeaveStatus, decidedBy, note string) (*domain.LeaveRequest, error) {
	if s.TransitionStatusFn != nil {
		return s.TransitionStatusFn(ctx, id, from, to, decidedBy, note)
	}
	return nil, nil
}

type stubAdjustmentRepo struct {
	SaveFn           func(ctx context.Context, adjustment *domain.LeaveAdjustment) error
	ListByEmployeeFn func(ctx context.Context, employeeID string) ([]*domain.LeaveAdjustment, error)
}

func (s *stubAdjustmentRepo) Save(ctx context.Context, adjustment *domain.LeaveAdjustment) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, adjustment)
	}
	return nil
}

func (s *stubAdjustmentRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*domain.LeaveAdjustment, error) {
	if s.ListByEmployeeFn != nil {
		return s.ListByEmployeeFn(ctx, employeeID)
	}
	return nil, nil
}

type stubInvoiceRepo struct {
	SaveFn              func(ctx context.Context, invoice *domain.Invoice) error
	FindByIDFn          func(ctx context.Context, id string) (*domain.Invoice, error)
	FindByOrderFn       func(ctx context.Context, orderID string) (*domain.Invoice, error)
	ListFn              func(ctx context.Context, status domain.SyncStatus, skip, limit int64) ([]*domain.Invoice, int64, error)
	NextInvoiceNumberFn func(ctx context.Context, year int) (string, error)
}

func (s *stubInvoiceRepo) Save(ctx context.Context, invoice *domain.Invoice) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, invoice)
	}
	return nil
}

func (s *stubInvoiceRepo) FindByID(ctx context.Context, id string) (*domain.Invoice, error) {
	if s.FindByIDFn != nil {
		return s.FindByIDFn(ctx, id)
	}
	return nil, nil
}

func (s *stubInvoiceRepo) FindByOrder(ctx context.Context, orderID string) (*domain.Invoice, error) {
	if s.FindByOrderFn != nil {
		return s.FindByOrderFn(ctx, orderID)
	}
	return nil, nil
}

func (s *stubInvoiceRepo) List(ctx context.Context, status domain.SyncStatus, skip, limit int64) ([]*domain.Invoice, int64, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, status, skip, limit)
	}
	return nil, 0, nil
}

func (s *stubInvoiceRepo) NextInvoiceNumber(ctx context.Context, year int) (string, error) {
	if s.NextInvoiceNumberFn != nil {
		return s.NextInvoiceNumberFn(ctx, year)
	}
	return "INV-2025-0001", nil
}

type stubPusher struct {
	PushInvoiceFn func(ctx context.Context, payload InvoicePayload) (string, error)
}

func (s *stubPusher) PushInvoice(ctx context.Context, payload InvoicePayload) (string, error) {
	if s.PushInvoiceFn != nil {
		return s.PushInvoiceFn(ctx, payload)
	}
	return "xero-1", nil
}
