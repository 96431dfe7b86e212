package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-leaveflow/internal/balance"
	"go-leaveflow/internal/directory"
	"go-leaveflow/internal/events"
	leaveerrors "go-leaveflow/internal/leave/errors"
	"go-leaveflow/internal/messaging/kafka"
	"go-leaveflow/internal/role"
	"go-leaveflow/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Cap enforcement policy for submissions. The observed institution
// treats the annual cap as advisory: reports surface the overage but
// submissions are not blocked. Enforce mode opts into a hard failure.
const (
	CapModeAdvisory = "advisory"
	CapModeEnforce  = "enforce"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, filter ListLeavesFilter) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	DepartmentReview(ctx context.Context, actorID, id string, req DepartmentReviewRequest) (LeaveResponse, error)
	AdminDecide(ctx context.Context, actor Actor, id string, req AdminDecisionRequest) (LeaveResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory directory.Service
	resolver  role.Resolver
	balances  balance.Service
	outbox    kafka.OutboxRepository
	capMode   string
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	dir directory.Service,
	resolver role.Resolver,
	balances balance.Service,
	outbox kafka.OutboxRepository,
	capMode string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if capMode != CapModeEnforce {
		capMode = CapModeAdvisory
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: dir,
		resolver:  resolver,
		balances:  balances,
		outbox:    outbox,
		capMode:   capMode,
		logger:    l,
	}
}

func (s *service) Submit(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	createdBy, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, err
	}

	totalDays, err := balance.DaysInRange(startDate, endDate)
	if err != nil {
		s.logger.Warn("submit leave with inverted range",
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	profile, err := s.directory.Lookup(ctx, req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, err
	}

	year := startDate.Year()
	exceeds, remainingAfter, err := s.balances.WouldExceed(ctx, req.EmployeeID, year, totalDays)
	if err != nil {
		s.logger.Error("submit leave balance check failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	var balanceWarning *string
	if exceeds {
		if s.capMode == CapModeEnforce {
			s.logger.Warn("submit leave blocked by annual cap",
				zap.String("employee_id", req.EmployeeID),
				zap.Int("year", year),
				zap.Int("remaining_after", remainingAfter),
			)
			return LeaveResponse{}, leaveerrors.ErrCapExceeded
		}
		warning := fmt.Sprintf("approval would exceed the annual allowance by %d day(s)", -remainingAfter)
		balanceWarning = &warning
		s.logger.Warn("submit leave over annual cap, advisory only",
			zap.String("employee_id", req.EmployeeID),
			zap.Int("year", year),
			zap.Int("remaining_after", remainingAfter),
		)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	l := &LeaveRequest{
		ID:             uuid.New(),
		EmployeeID:     profile.EmployeeID,
		EmployeeName:   profile.FullName,
		DepartmentID:   profile.DepartmentID,
		DepartmentName: profile.DepartmentName,
		LeaveType:      req.LeaveType,
		StartDate:      startDate,
		EndDate:        endDate,
		TotalDays:      totalDays,
		Reason:         req.Reason,
		Status:         StatusPending,
		CreatedBy:      createdBy,
	}

	if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
		mapped := mapRepositoryError(err)
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, mapped
	}

	if err := s.enqueueSubmittedEvent(ctx, tx, l); err != nil {
		s.logger.Error("submit leave outbox failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("total_days", totalDays),
	)

	resp := mapToResponse(*l)
	resp.BalanceWarning = balanceWarning
	return resp, nil
}

func (s *service) GetAll(ctx context.Context, filter ListLeavesFilter) ([]LeaveResponse, error) {
	if filter.Status != "" && !ValidStatus(filter.Status) {
		return nil, leaveerrors.ErrInvalidStatusFilter
	}
	if filter.EmployeeID != "" {
		if _, err := uuid.Parse(filter.EmployeeID); err != nil {
			return nil, leaveerrors.ErrInvalidEmployeeID
		}
	}
	if filter.DepartmentID != "" {
		if _, err := uuid.Parse(filter.DepartmentID); err != nil {
			return nil, leaveerrors.ErrInvalidDepartmentID
		}
	}

	leaves, err := s.repo.ListByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*l), nil
}

// DepartmentReview executes the first-stage recommendation. The actor
// must hold a department-head assignment whose department matches the
// record's snapshot department.
func (s *service) DepartmentReview(ctx context.Context, actorID, id string, req DepartmentReviewRequest) (LeaveResponse, error) {
	s.logger.Debug("department review requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("action", req.Action),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	scope, err := s.resolver.Resolve(ctx, actorID)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !scope.IsDepartmentHead {
		s.logger.Warn("department review by non-head", zap.String("actor_id", actorID))
		return LeaveResponse{}, leaveerrors.ErrNotDepartmentHead
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if scope.DepartmentID != l.DepartmentID {
		s.logger.Warn("department review scope mismatch",
			zap.String("actor_id", actorID),
			zap.String("actor_department", scope.DepartmentID.String()),
			zap.String("request_department", l.DepartmentID.String()),
		)
		return LeaveResponse{}, leaveerrors.ErrDepartmentScopeMismatch
	}

	target, err := reviewTarget(req.Action)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !CanTransition(RoleDepartmentHead, l.Status, target) {
		if IsTerminal(l.Status) {
			return LeaveResponse{}, leaveerrors.ErrAlreadyDecided
		}
		return LeaveResponse{}, leaveerrors.ErrAlreadyReviewed
	}

	now := time.Now().UTC()
	changes := map[string]any{"status": target}
	if req.Comment != "" {
		changes["dept_head_comment"] = req.Comment
	}
	switch target {
	case StatusDepartmentApproved:
		changes["dept_head_approved_by"] = actorUUID
		changes["dept_head_approved_at"] = now
	case StatusRejected:
		changes["decided_by"] = actorUUID
		changes["decided_at"] = now
	}

	var updated *LeaveRequest
	if target == StatusRejected {
		updated, err = s.decideInTx(ctx, id, StatusPending, changes, actorUUID, leaveerrors.ErrAlreadyReviewed)
	} else {
		updated, err = s.applyGuarded(ctx, s.repo, id, StatusPending, changes, leaveerrors.ErrAlreadyReviewed)
	}
	if err != nil {
		return LeaveResponse{}, err
	}

	s.logger.Info("department review success",
		zap.String("leave_id", id),
		zap.String("status", updated.Status),
		zap.String("reviewed_by", actorID),
	)
	return mapToResponse(*updated), nil
}

// AdminDecide renders the terminal decision. Approval is only
// reachable from DEPARTMENT_APPROVED; rejection is also allowed while
// the request is still PENDING.
func (s *service) AdminDecide(ctx context.Context, actor Actor, id string, req AdminDecisionRequest) (LeaveResponse, error) {
	s.logger.Debug("admin decision requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actor.EmployeeID),
		zap.String("action", req.Action),
	)

	if actor.Role != RoleAdmin {
		return LeaveResponse{}, leaveerrors.ErrAdminRequired
	}

	actorUUID, err := uuid.Parse(actor.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}

	target, err := decisionTarget(req.Action)
	if err != nil {
		return LeaveResponse{}, err
	}

	if !CanTransition(RoleAdmin, l.Status, target) {
		if target == StatusApproved && l.Status == StatusPending {
			s.logger.Warn("admin approval attempted before department review",
				zap.String("leave_id", id),
				zap.String("actor_id", actor.EmployeeID),
			)
			return LeaveResponse{}, leaveerrors.ErrApprovalRequiresReview
		}
		return LeaveResponse{}, leaveerrors.ErrAlreadyDecided
	}

	now := time.Now().UTC()
	changes := map[string]any{
		"status":     target,
		"decided_by": actorUUID,
		"decided_at": now,
	}

	updated, err := s.decideInTx(ctx, id, l.Status, changes, actorUUID, leaveerrors.ErrAlreadyDecided)
	if err != nil {
		return LeaveResponse{}, err
	}

	if updated.Status == StatusApproved {
		s.balances.Invalidate(ctx, updated.EmployeeID.String(), updated.StartDate.Year())
	}

	s.logger.Info("admin decision success",
		zap.String("leave_id", id),
		zap.String("status", updated.Status),
		zap.String("decided_by", actor.EmployeeID),
	)
	return mapToResponse(*updated), nil
}

// applyGuarded runs the compare-and-swap and translates a lost race
// into the conflict error appropriate for the calling stage.
func (s *service) applyGuarded(ctx context.Context, repo Repository, id, expectedStatus string, changes map[string]any, conflictErr error) (*LeaveRequest, error) {
	updated, err := repo.ApplyTransition(ctx, id, expectedStatus, changes)
	if err != nil {
		if errors.Is(err, ErrStatusChanged) {
			s.logger.Warn("transition lost race",
				zap.String("leave_id", id),
				zap.String("expected_status", expectedStatus),
			)
			return nil, conflictErr
		}
		return nil, mapRepositoryError(err)
	}
	return updated, nil
}

func (s *service) enqueueSubmittedEvent(ctx context.Context, tx *sql.Tx, l *LeaveRequest) error {
	event := events.LeaveSubmittedEvent{
		EventType:    "leave_submitted",
		LeaveID:      l.ID.String(),
		EmployeeID:   l.EmployeeID.String(),
		DepartmentID: l.DepartmentID.String(),
		StartDate:    l.StartDate.Format("2006-01-02"),
		EndDate:      l.EndDate.Format("2006-01-02"),
		TotalDays:    l.TotalDays,
		OccurredAt:   time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.NewLeaveRequestEvent(
		contextutil.GetRequestID(ctx), l.ID.String(), event.EventType, events.LeaveSubmittedTopic, payload,
	))
}

// decideInTx applies a terminal transition and writes its outbox event
// inside one transaction, so the decision and its announcement commit
// or roll back together.
func (s *service) decideInTx(ctx context.Context, id, expectedStatus string, changes map[string]any, decidedBy uuid.UUID, conflictErr error) (*LeaveRequest, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decision begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	updated, err := s.applyGuarded(ctx, s.repo.WithTx(tx), id, expectedStatus, changes, conflictErr)
	if err != nil {
		return nil, err
	}

	if err := s.enqueueDecisionEvent(ctx, s.outbox.WithTx(tx), updated, decidedBy); err != nil {
		s.logger.Error("decision event enqueue failed",
			zap.String("leave_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decision commit failed", zap.String("leave_id", id), zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func (s *service) enqueueDecisionEvent(ctx context.Context, outbox kafka.OutboxRepository, l *LeaveRequest, decidedBy uuid.UUID) error {
	event := events.LeaveDecidedEvent{
		EventType:    "leave_decided",
		LeaveID:      l.ID.String(),
		EmployeeID:   l.EmployeeID.String(),
		DepartmentID: l.DepartmentID.String(),
		Status:       l.Status,
		DecidedBy:    decidedBy.String(),
		Year:         l.StartDate.Year(),
		OccurredAt:   time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return outbox.Create(ctx, kafka.NewLeaveRequestEvent(
		contextutil.GetRequestID(ctx), l.ID.String(), event.EventType, events.LeaveDecisionTopic, payload,
	))
}

func reviewTarget(action string) (string, error) {
	switch action {
	case ActionApprove:
		return StatusDepartmentApproved, nil
	case ActionReject:
		return StatusRejected, nil
	}
	return "", leaveerrors.ErrInvalidAction
}

func decisionTarget(action string) (string, error) {
	switch action {
	case ActionApprove:
		return StatusApproved, nil
	case ActionReject:
		return StatusRejected, nil
	}
	return "", leaveerrors.ErrInvalidAction
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:             l.ID.String(),
		EmployeeID:     l.EmployeeID.String(),
		EmployeeName:   l.EmployeeName,
		DepartmentID:   l.DepartmentID.String(),
		DepartmentName: l.DepartmentName,
		LeaveType:      l.LeaveType,
		StartDate:      l.StartDate.Format("2006-01-02"),
		EndDate:        l.EndDate.Format("2006-01-02"),
		TotalDays:      l.TotalDays,
		Reason:         l.Reason,
		Status:         l.Status,
		CreatedBy:      l.CreatedBy.String(),
		CreatedAt:      l.CreatedAt.UTC().Format(time.RFC3339),
	}
	resp.DeptHeadComment = l.DeptHeadComment
	if l.DeptHeadApprovedBy != nil {
		v := l.DeptHeadApprovedBy.String()
		resp.DeptHeadApprovedBy = &v
	}
	if l.DeptHeadApprovedAt != nil {
		v := l.DeptHeadApprovedAt.Format(time.RFC3339)
		resp.DeptHeadApprovedAt = &v
	}
	if l.DecidedBy != nil {
		v := l.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
