package application

import (
	"context"
	"fmt"

	"github.com/Adela-Cal/Misty-Manufacturing-sub000/internal/domain"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/api"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/errors"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/kafka"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/logging"
	"github.com/Adela-Cal/Misty-Manufacturing-sub000/pkg/metrics"
)

// LeaveService handles leave requests and balance movements. Balances are only
// changed through filtered updates, creating a request never touches them.
type LeaveService struct {
	requests    domain.LeaveRepository
	adjustments domain.LeaveAdjustmentRepository
	employees   domain.EmployeeRepository
	tx          TxRunner
	producer    EventPublisher
	topic       string
	metrics     *metrics.Metrics
	logger      *logging.Logger
}

// NewLeaveService creates a new LeaveService
func NewLeaveService(
	requests domain.LeaveRepository,
	adjustments domain.LeaveAdjustmentRepository,
	employees domain.EmployeeRepository,
	tx TxRunner,
	producer EventPublisher,
	topic string,
	m *metrics.Metrics,
	logger *logging.Logger,
) *LeaveService {
	return &LeaveService{
		requests:    requests,
		adjustments: adjustments,
		employees:   employees,
		tx:          tx,
		producer:    producer,
		topic:       topic,
		metrics:     m,
		logger:      logger,
	}
}

// CreateRequest files a pending leave request
func (s *LeaveService) CreateRequest(ctx context.Context, cmd CreateLeaveRequestCommand) (*LeaveRequestDTO, error) {
	emp, err := s.findEmployee(ctx, cmd.EmployeeID)
	if err != nil {
		return nil, err
	}

	req, err := domain.NewLeaveRequest(cmd.EmployeeID, emp.Name, cmd.Type, cmd.Hours, cmd.StartDate, cmd.EndDate, cmd.Reason)
	if err != nil {
		return nil, errors.MapDomainError(err)
	}

	if err := s.requests.Save(ctx, req); err != nil {
		s.logger.WithError(err).Error("Failed to save leave request", "employeeId", cmd.EmployeeID)
		return nil, fmt.Errorf("failed to save leave request: %w", err)
	}

	s.logger.Info("Created leave request", "requestId", req.ID.Hex(), "type", req.Type, "hours", req.Hours)
	return ToLeaveRequestDTO(req), nil
}

// GetRequest retrieves a leave request by ID
func (s *LeaveService) GetRequest(ctx context.Context, id string) (*LeaveRequestDTO, error) {
	req, err := s.findRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToLeaveRequestDTO(req), nil
}

// ListRequests lists leave requests with filters
func (s *LeaveService) ListRequests(ctx context.Context, employeeID string, status domain.LeaveStatus, page api.PageRequest) (api.PageResponse[*LeaveRequestDTO], error) {
	requests, total, err := s.requests.List(ctx, employeeID, status, page.Skip(), page.Limit())
	if err != nil {
		return api.PageResponse[*LeaveRequestDTO]{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	dtos := make([]*LeaveRequestDTO, 0, len(requests))
	for _, r := range requests {
		dtos = append(dtos, ToLeaveRequestDTO(r))
	}
	return api.NewPageResponse(dtos, page.Page, page.PageSize, total), nil
}

// ApproveRequest approves a pending request and debits the balance. The debit
// only matches when the balance covers the hours. When it does not, the
// request status is rolled back to pending and the caller gets a conflict
// spelling out both numbers. The whole approval runs in one transaction.
func (s *LeaveService) ApproveRequest(ctx context.Context, cmd DecideLeaveCommand) (*LeaveRequestDTO, error) {
	var approved *domain.LeaveRequest

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		previous, err := s.requests.TransitionStatus(ctx, cmd.RequestID,
			domain.LeavePending, domain.LeaveApproved, cmd.DecidedBy, cmd.Note)
		if err != nil {
			return fmt.Errorf("failed to approve leave request: %w", err)
		}
		if previous == nil {
			return errors.ErrConflict("leave request is not pending")
		}

		emp, err := s.employees.DebitLeave(ctx, previous.EmployeeID, previous.Type, previous.Hours)
		if err != nil {
			return fmt.Errorf("failed to debit leave balance: %w", err)
		}
		if emp == nil {
			// Roll the request back so it can be decided again
			if _, rbErr := s.requests.TransitionStatus(ctx, cmd.RequestID,
				domain.LeaveApproved, domain.LeavePending, "", ""); rbErr != nil {
				return fmt.Errorf("failed to roll back leave request: %w", rbErr)
			}

			current, err := s.findEmployee(ctx, previous.EmployeeID)
			if err != nil {
				return err
			}
			return errors.ErrConflict(fmt.Sprintf("Insufficient balance. Available: %gh, Requested: %gh",
				current.BalanceFor(previous.Type), previous.Hours))
		}

		approved = previous
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Audit(ctx, "leave.approved", "leave_request", cmd.RequestID, cmd.DecidedBy, map[string]any{
		"employeeId": approved.EmployeeID,
		"type":       string(approved.Type),
		"hours":      approved.Hours,
	})
	s.recordDecision(ctx, approved, "approved")

	req, err := s.findRequest(ctx, cmd.RequestID)
	if err != nil {
		return nil, err
	}
	return ToLeaveRequestDTO(req), nil
}

// RejectRequest rejects a pending request with a reason
func (s *LeaveService) RejectRequest(ctx context.Context, cmd DecideLeaveCommand) (*LeaveRequestDTO, error) {
	if cmd.Note == "" {
		return nil, errors.ErrValidation("a rejection reason is required")
	}

	previous, err := s.requests.TransitionStatus(ctx, cmd.RequestID,
		domain.LeavePending, domain.LeaveRejected, cmd.DecidedBy, cmd.Note)
	if err != nil {
		return nil, fmt.Errorf("failed to reject leave request: %w", err)
	}
	if previous == nil {
		return nil, errors.ErrConflict("leave request is not pending")
	}

	s.recordDecision(ctx, previous, "rejected")

	req, err := s.findRequest(ctx, cmd.RequestID)
	if err != nil {
		return nil, err
	}
	return ToLeaveRequestDTO(req), nil
}

// CancelRequest cancels an approved request and credits the hours back.
// Cancelling anything but an approved request is a conflict, so a double
// cancel cannot credit twice.
func (s *LeaveService) CancelRequest(ctx context.Context, cmd DecideLeaveCommand) (*LeaveRequestDTO, error) {
	var cancelled *domain.LeaveRequest

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		previous, err := s.requests.TransitionStatus(ctx, cmd.RequestID,
			domain.LeaveApproved, domain.LeaveCancelled, cmd.DecidedBy, cmd.Note)
		if err != nil {
			return fmt.Errorf("failed to cancel leave request: %w", err)
		}
		if previous == nil {
			return errors.ErrConflict("only approved leave requests can be cancelled")
		}

		if _, err := s.employees.CreditLeave(ctx, previous.EmployeeID, previous.Type, previous.Hours); err != nil {
			return fmt.Errorf("failed to credit leave balance: %w", err)
		}

		cancelled = previous
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Audit(ctx, "leave.cancelled", "leave_request", cmd.RequestID, cmd.DecidedBy, map[string]any{
		"employeeId": cancelled.EmployeeID,
		"hours":      cancelled.Hours,
	})
	s.recordDecision(ctx, cancelled, "cancelled")

	req, err := s.findRequest(ctx, cmd.RequestID)
	if err != nil {
		return nil, err
	}
	return ToLeaveRequestDTO(req), nil
}

// AdjustBalance applies a manual signed balance change. The update is filtered
// so the balance can never go negative, and every adjustment is recorded.
func (s *LeaveService) AdjustBalance(ctx context.Context, cmd AdjustLeaveCommand) (*EmployeeDTO, error) {
	adj, err := domain.NewLeaveAdjustment(cmd.EmployeeID, cmd.Type, cmd.Hours, cmd.Reason, cmd.AdjustedBy)
	if err != nil {
		return nil, errors.MapDomainError(err)
	}

	var emp *domain.EmployeeProfile
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		emp, err = s.employees.AdjustLeave(ctx, cmd.EmployeeID, cmd.Type, cmd.Hours)
		if err != nil {
			return fmt.Errorf("failed to adjust leave balance: %w", err)
		}
		if emp == nil {
			return errors.ErrConflict("adjustment would leave a negative balance")
		}
		return s.adjustments.Save(ctx, adj)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Audit(ctx, "leave.adjusted", "employee", cmd.EmployeeID, cmd.AdjustedBy, map[string]any{
		"type":   string(cmd.Type),
		"hours":  cmd.Hours,
		"reason": cmd.Reason,
	})
	return ToEmployeeDTO(emp), nil
}

// BalanceSummary returns an employee's balances with pending requests and the
// adjustment trail
func (s *LeaveService) BalanceSummary(ctx context.Context, employeeID string) (*LeaveBalanceSummaryDTO, error) {
	emp, err := s.findEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	pending, _, err := s.requests.List(ctx, employeeID, domain.LeavePending, 0, 50)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}

	adjustments, err := s.adjustments.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list adjustments: %w", err)
	}

	summary := &LeaveBalanceSummaryDTO{
		EmployeeID:   employeeID,
		EmployeeName: emp.Name,
		Balances: LeaveBalancesDTO{
			Annual:   emp.LeaveBalances.Annual,
			Sick:     emp.LeaveBalances.Sick,
			Personal: emp.LeaveBalances.Personal,
		},
	}
	for _, r := range pending {
		summary.Pending = append(summary.Pending, *ToLeaveRequestDTO(r))
	}
	for _, a := range adjustments {
		summary.Adjustments = append(summary.Adjustments, *ToLeaveAdjustmentDTO(a))
	}
	return summary, nil
}

func (s *LeaveService) findEmployee(ctx context.Context, id string) (*domain.EmployeeProfile, error) {
	emp, err := s.employees.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	if emp == nil {
		return nil, errors.ErrNotFoundWithID("employee", id)
	}
	return emp, nil
}

func (s *LeaveService) findRequest(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	req, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave request: %w", err)
	}
	if req == nil {
		return nil, errors.ErrNotFoundWithID("leave request", id)
	}
	return req, nil
}

func (s *LeaveService) recordDecision(ctx context.Context, req *domain.LeaveRequest, decision string) {
	if s.metrics != nil {
		s.metrics.RecordLeaveDecision(decision)
	}
	if s.producer == nil {
		return
	}
	event := domain.LeaveDecisionEvent{
		BaseEvent:  domain.BaseEvent{Type: domain.EventLeaveDecision, ID: req.ID.Hex(), Timestamp: nowUTC()},
		EmployeeID: req.EmployeeID,
		LeaveType:  string(req.Type),
		Hours:      req.Hours,
		Decision:   decision,
	}
	evt := kafka.NewEvent(event.EventType(), eventSource, req.EmployeeID, event)
	if err := s.producer.PublishEvent(ctx, s.topic, evt); err != nil {
		s.logger.WithError(err).Warn("Failed to publish leave event", "type", event.EventType())
	}
}
