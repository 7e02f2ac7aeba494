package leave

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/filter"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/query"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	users user.UserRepository
	now   func() time.Time
}

func NewLeaveService(leaveRequestRepository leave.LeaveRequestRepository, userRepository user.UserRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepository,
		users:                  userRepository,
		now:                    time.Now,
	}
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, f leave.ListFilter) (leave.ListResponse, error) {
	if err := f.Validate(); err != nil {
		return leave.ListResponse{}, err
	}
	requests, err := s.LeaveRequestRepository.List(ctx)
	if err != nil {
		return leave.ListResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return query.Run(requests, leave.Schema, f.Criteria(), leave.Table, f.List, leave.NewStats)
}

// Filtered implements leave.LeaveService.
func (s *LeaveServiceImpl) Filtered(ctx context.Context, f leave.ListFilter) ([]leave.LeaveRequest, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	requests, err := s.LeaveRequestRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return query.Rows(requests, leave.Schema, f.Criteria(), leave.Table, f.List)
}

// Calendar implements leave.LeaveService.
func (s *LeaveServiceImpl) Calendar(ctx context.Context, req leave.CalendarRequest) (leave.CalendarResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.CalendarResponse{}, err
	}
	month, _ := validator.IsValidMonth(req.Month)

	requests, err := s.LeaveRequestRepository.List(ctx)
	if err != nil {
		return leave.CalendarResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	first := month
	last := month.AddDate(0, 1, -1)
	inMonth := filter.Apply(requests, leave.Schema, filter.Criteria{
		Categories: map[string]string{"status": req.Status},
		Range:      filter.NewDateRange(first, last),
	})
	return leave.BuildCalendar(month, inMonth), nil
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return s.LeaveRequestRepository.GetByID(ctx, id)
}

// Create implements leave.LeaveService.
func (s *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	requester, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to generate leave request id: %w", err)
	}

	now := s.now()
	start, end := req.Dates()
	request := leave.LeaveRequest{
		ID:            id.String(),
		UserID:        requester.ID,
		UserName:      requester.Name,
		UserEmail:     requester.Email,
		LeaveType:     leave.LeaveType(req.LeaveType),
		StartDate:     start,
		EndDate:       end,
		TotalDays:     leave.TotalDays(start, end),
		Status:        leave.StatusPending,
		SubmittedDate: now,
		Reason:        req.Reason,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.Info("Leave request created", "leave_id", created.ID, "user_id", created.UserID, "days", created.TotalDays)
	return created, nil
}

// Update implements leave.LeaveService.
func (s *LeaveServiceImpl) Update(ctx context.Context, req leave.UpdateLeaveRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	req.Apply(&request)
	request.UpdatedAt = s.now()

	if err := s.LeaveRequestRepository.Update(ctx, request); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}
	return request, nil
}

// Transition implements leave.LeaveService.
func (s *LeaveServiceImpl) Transition(ctx context.Context, req leave.TransitionRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if req.Action == leave.ActionDelete {
		if err := s.Delete(ctx, request.ID); err != nil {
			return leave.LeaveRequest{}, err
		}
		return request, nil
	}

	next, err := leave.Next(request.Status, req.Action)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	now := s.now()
	request.Status = next
	request.UpdatedAt = now

	switch req.Action {
	case leave.ActionApprove:
		actor := req.Actor
		request.ApprovedBy = &actor
		request.ApprovedDate = &now
		if strings.TrimSpace(req.Note) != "" {
			note := req.Note
			request.Notes = &note
		}
	case leave.ActionReject:
		reason := req.Reason
		request.Notes = &reason
	}

	if err := s.LeaveRequestRepository.Update(ctx, request); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	slog.Info("Leave request transitioned", "leave_id", request.ID, "action", req.Action, "status", request.Status, "actor", req.Actor)
	return request, nil
}

// Delete implements leave.LeaveService.
func (s *LeaveServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.LeaveRequestRepository.SoftDelete(ctx, id, s.now()); err != nil {
		return err
	}
	slog.Info("Leave request deleted", "leave_id", id)
	return nil
}
