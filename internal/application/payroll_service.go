package application

import (
	"context"
	"fmt"
	"sort"

	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/domain"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/api"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/errors"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/kafka"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/logging"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/metrics"
	"github.com/shopspring/decimal"
)

// PayrollService handles employees, timesheets and pay outcomes
type PayrollService struct {
	timesheets domain.TimesheetRepository
	payroll    domain.PayrollRepository
	employees  domain.EmployeeRepository
	tx         TxRunner
	producer   EventPublisher
	topic      string
	metrics    *metrics.Metrics
	logger     *logging.Logger
}

// NewPayrollService creates a new PayrollService
func NewPayrollService(
	timesheets domain.TimesheetRepository,
	payroll domain.PayrollRepository,
	employees domain.EmployeeRepository,
	tx TxRunner,
	producer EventPublisher,
	topic string,
	m *metrics.Metrics,
	logger *logging.Logger,
) *PayrollService {
	return &PayrollService{
		timesheets: timesheets,
		payroll:    payroll,
		employees:  employees,
		tx:         tx,
		producer:   producer,
		topic:      topic,
		metrics:    m,
		logger:     logger,
	}
}

// CreateEmployee creates an employee profile
func (s *PayrollService) CreateEmployee(ctx context.Context, cmd CreateEmployeeCommand) (*EmployeeDTO, error) {
	emp := domain.NewEmployeeProfile(cmd.Name, cmd.Role, cmd.Email, cmd.HourlyRate, cmd.OvertimeMultiplier)
	emp.AccrualAnnualPerWeek = cmd.AnnualPerWeek
	emp.AccrualSickPerWeek = cmd.SickPerWeek

	if err := s.employees.Save(ctx, emp); err != nil {
		s.logger.WithError(err).Error("Failed to save employee", "name", cmd.Name)
		return nil, fmt.Errorf("failed to save employee: %w", err)
	}

	s.logger.Info("Created employee", "employeeId", emp.ID.Hex(), "name", emp.Name)
	return ToEmployeeDTO(emp), nil
}

// GetEmployee retrieves an employee by ID
func (s *PayrollService) GetEmployee(ctx context.Context, id string) (*EmployeeDTO, error) {
	emp, err := s.findEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToEmployeeDTO(emp), nil
}

// ListEmployees lists employee profiles
func (s *PayrollService) ListEmployees(ctx context.Context, activeOnly bool, page api.PageRequest) (api.PageResponse[*EmployeeDTO], error) {
	employees, total, err := s.employees.List(ctx, activeOnly, page.Skip(), page.Limit())
	if err != nil {
		return api.PageResponse[*EmployeeDTO]{}, fmt.Errorf("failed to list employees: %w", err)
	}

	dtos := make([]*EmployeeDTO, 0, len(employees))
	for _, e := range employees {
		dtos = append(dtos, ToEmployeeDTO(e))
	}
	return api.NewPageResponse(dtos, page.Page, page.PageSize, total), nil
}

// CreateTimesheet creates a draft timesheet for one employee week
func (s *PayrollService) CreateTimesheet(ctx context.Context, cmd CreateTimesheetCommand) (*TimesheetDTO, error) {
	emp, err := s.findEmployee(ctx, cmd.EmployeeID)
	if err != nil {
		return nil, err
	}

	existing, err := s.timesheets.FindByEmployeeAndWeek(ctx, cmd.EmployeeID, cmd.WeekStarting)
	if err != nil {
		return nil, fmt.Errorf("failed to check timesheet: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrConflict(fmt.Sprintf("timesheet for week %s already exists", cmd.WeekStarting.Format("2006-01-02")))
	}

	ts := domain.NewTimesheet(cmd.EmployeeID, emp.Name, cmd.WeekStarting, toTimesheetEntries(cmd.Entries))
	if err := s.timesheets.Save(ctx, ts); err != nil {
		s.logger.WithError(err).Error("Failed to save timesheet", "employeeId", cmd.EmployeeID)
		return nil, fmt.Errorf("failed to save timesheet: %w", err)
	}

	return ToTimesheetDTO(ts), nil
}

// GetTimesheet retrieves a timesheet by ID
func (s *PayrollService) GetTimesheet(ctx context.Context, id string) (*TimesheetDTO, error) {
	ts, err := s.findTimesheet(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToTimesheetDTO(ts), nil
}

// ListTimesheets lists timesheets with filters
func (s *PayrollService) ListTimesheets(ctx context.Context, employeeID string, status domain.TimesheetStatus, page api.PageRequest) (api.PageResponse[*TimesheetDTO], error) {
	timesheets, total, err := s.timesheets.List(ctx, employeeID, status, page.Skip(), page.Limit())
	if err != nil {
		return api.PageResponse[*TimesheetDTO]{}, fmt.Errorf("failed to list timesheets: %w", err)
	}

	dtos := make([]*TimesheetDTO, 0, len(timesheets))
	for _, t := range timesheets {
		dtos = append(dtos, ToTimesheetDTO(t))
	}
	return api.NewPageResponse(dtos, page.Page, page.PageSize, total), nil
}

// UpdateTimesheet replaces a draft timesheet's entries
func (s *PayrollService) UpdateTimesheet(ctx context.Context, cmd UpdateTimesheetCommand) (*TimesheetDTO, error) {
	ts, err := s.findTimesheet(ctx, cmd.TimesheetID)
	if err != nil {
		return nil, err
	}

	if err := ts.UpdateEntries(toTimesheetEntries(cmd.Entries)); err != nil {
		return nil, errors.MapDomainError(err)
	}

	if err := s.timesheets.Save(ctx, ts); err != nil {
		return nil, fmt.Errorf("failed to save timesheet: %w", err)
	}
	return ToTimesheetDTO(ts), nil
}

// DeleteTimesheet removes a draft timesheet
func (s *PayrollService) DeleteTimesheet(ctx context.Context, id string) error {
	ts, err := s.findTimesheet(ctx, id)
	if err != nil {
		return err
	}
	if ts.Status != domain.TimesheetDraft {
		return errors.ErrInvalidState(domain.ErrTimesheetNotEditable.Error())
	}
	if err := s.timesheets.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete timesheet: %w", err)
	}
	return nil
}

// SubmitTimesheet moves a draft timesheet to submitted
func (s *PayrollService) SubmitTimesheet(ctx context.Context, id string) (*TimesheetDTO, error) {
	ts, err := s.findTimesheet(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ts.Submit(); err != nil {
		return nil, errors.MapDomainError(err)
	}

	if err := s.timesheets.Save(ctx, ts); err != nil {
		return nil, fmt.Errorf("failed to save timesheet: %w", err)
	}
	return ToTimesheetDTO(ts), nil
}

// ApproveTimesheet approves a submitted timesheet and creates its payroll
// record. The status flip is a conditional update on submitted, so of two
// concurrent approvals exactly one wins and exactly one payroll record is
// written. The whole approval runs in one transaction.
func (s *PayrollService) ApproveTimesheet(ctx context.Context, cmd ApproveTimesheetCommand) (*PayrollRecordDTO, error) {
	var record *domain.PayrollRecord

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		previous, err := s.timesheets.TransitionStatus(ctx, cmd.TimesheetID,
			domain.TimesheetSubmitted, domain.TimesheetApproved, cmd.ApprovedBy, "")
		if err != nil {
			return fmt.Errorf("failed to approve timesheet: %w", err)
		}
		if previous == nil {
			return errors.ErrConflict("timesheet is not awaiting approval")
		}

		emp, err := s.employees.FindByID(ctx, previous.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		if emp == nil {
			return errors.ErrNotFoundWithID("employee", previous.EmployeeID)
		}

		record = domain.NewPayrollRecord(previous, emp, cmd.ApprovedBy)
		if err := s.payroll.Save(ctx, record); err != nil {
			return fmt.Errorf("failed to save payroll record: %w", err)
		}

		if err := s.employees.AccrueLeave(ctx, emp.ID.Hex(), record.AccruedAnnual, record.AccruedSick); err != nil {
			return fmt.Errorf("failed to accrue leave: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Audit(ctx, "timesheet.approved", "timesheet", cmd.TimesheetID, cmd.ApprovedBy, map[string]any{
		"employeeId": record.EmployeeID,
		"grossPay":   record.GrossPay,
	})
	if s.metrics != nil {
		s.metrics.RecordTimesheetApproved()
	}
	s.publishPayrollEvent(ctx, domain.TimesheetApprovedEvent{
		BaseEvent:       domain.BaseEvent{Type: domain.EventTimesheetApproved, ID: cmd.TimesheetID, Timestamp: nowUTC()},
		EmployeeID:      record.EmployeeID,
		WeekEnding:      record.WeekStarting.AddDate(0, 0, 6).Format("2006-01-02"),
		GrossPay:        record.GrossPay,
		PayrollRecordID: record.ID.Hex(),
	}, record.EmployeeID)

	return ToPayrollRecordDTO(record), nil
}

// RejectTimesheet rejects a submitted timesheet with a reason
func (s *PayrollService) RejectTimesheet(ctx context.Context, cmd RejectTimesheetCommand) (*TimesheetDTO, error) {
	if cmd.Reason == "" {
		return nil, errors.ErrValidation("a rejection reason is required")
	}

	previous, err := s.timesheets.TransitionStatus(ctx, cmd.TimesheetID,
		domain.TimesheetSubmitted, domain.TimesheetRejected, cmd.RejectedBy, cmd.Reason)
	if err != nil {
		return nil, fmt.Errorf("failed to reject timesheet: %w", err)
	}
	if previous == nil {
		return nil, errors.ErrConflict("timesheet is not awaiting approval")
	}

	s.logger.Audit(ctx, "timesheet.rejected", "timesheet", cmd.TimesheetID, cmd.RejectedBy, map[string]any{
		"reason": cmd.Reason,
	})

	ts, err := s.findTimesheet(ctx, cmd.TimesheetID)
	if err != nil {
		return nil, err
	}
	return ToTimesheetDTO(ts), nil
}

// GetPayslip derives a payslip from the stored payroll record of a timesheet
func (s *PayrollService) GetPayslip(ctx context.Context, timesheetID string) (*PayrollRecordDTO, error) {
	record, err := s.payroll.FindByTimesheet(ctx, timesheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payroll record: %w", err)
	}
	if record == nil {
		return nil, errors.ErrNotFound("payslip")
	}
	return ToPayrollRecordDTO(record), nil
}

// TimesheetReport aggregates per-employee totals over a period from the
// stored payroll records
func (s *PayrollService) TimesheetReport(ctx context.Context, query TimesheetReportQuery) (*TimesheetReportDTO, error) {
	if query.To.Before(query.From) {
		return nil, errors.ErrValidation("report period end precedes start")
	}

	records, err := s.payroll.ListByPeriod(ctx, query.From, query.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load payroll records: %w", err)
	}

	type rollup struct {
		name     string
		ordinary float64
		overtime float64
		gross    decimal.Decimal
		weeks    int
	}
	byEmployee := make(map[string]*rollup)
	for _, r := range records {
		agg, ok := byEmployee[r.EmployeeID]
		if !ok {
			agg = &rollup{name: r.EmployeeName}
			byEmployee[r.EmployeeID] = agg
		}
		agg.ordinary += r.OrdinaryHours
		agg.overtime += r.OvertimeHours
		agg.gross = agg.gross.Add(decimal.NewFromFloat(r.GrossPay))
		agg.weeks++
	}

	report := &TimesheetReportDTO{From: query.From, To: query.To, GeneratedAt: nowUTC()}
	for id, agg := range byEmployee {
		report.Employees = append(report.Employees, EmployeeHoursDTO{
			EmployeeID:    id,
			EmployeeName:  agg.name,
			OrdinaryHours: agg.ordinary,
			OvertimeHours: agg.overtime,
			GrossPay:      agg.gross.Round(2).InexactFloat64(),
			Weeks:         agg.weeks,
		})
	}
	sort.Slice(report.Employees, func(i, j int) bool {
		return report.Employees[i].EmployeeName < report.Employees[j].EmployeeName
	})

	return report, nil
}

func (s *PayrollService) findEmployee(ctx context.Context, id string) (*domain.EmployeeProfile, error) {
	emp, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp == nil {
		return nil, errors.ErrNotFoundWithID("employee", id)
	}
	return emp, nil
}

func (s *PayrollService) findTimesheet(ctx context.Context, id string) (*domain.Timesheet, error) {
	ts, err := s.timesheets.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get timesheet: %w", err)
	}
	if ts == nil {
		return nil, errors.ErrNotFoundWithID("timesheet", id)
	}
	return ts, nil
}

func (s *PayrollService) publishPayrollEvent(ctx context.Context, event domain.DomainEvent, subject string) {
	if s.producer == nil {
		return
	}
	evt := kafka.NewEvent(event.EventType(), eventSource, subject, event)
	if err := s.producer.PublishEvent(ctx, s.topic, evt); err != nil {
		s.logger.WithError(err).Warn("Failed to publish payroll event", "type", event.EventType())
	}
}

func toTimesheetEntries(inputs []TimesheetEntryInput) []domain.TimesheetEntry {
	entries := make([]domain.TimesheetEntry, 0, len(inputs))
	for _, in := range inputs {
		entries = append(entries, domain.TimesheetEntry{
			Day:           in.Day,
			OrdinaryHours: in.OrdinaryHours,
			OvertimeHours: in.OvertimeHours,
			Notes:         in.Notes,
		})
	}
	return entries
}
