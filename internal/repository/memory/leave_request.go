package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/leave"
)

type leaveRequestRepositoryImpl struct {
	requests *collection[leave.LeaveRequest]
}

func cloneLeave(l leave.LeaveRequest) leave.LeaveRequest {
	l.ApprovedBy = clonePtr(l.ApprovedBy)
	l.ApprovedDate = cloneTime(l.ApprovedDate)
	l.Notes = clonePtr(l.Notes)
	l.DeletedAt = cloneTime(l.DeletedAt)
	return l
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context) ([]leave.LeaveRequest, error) {
	return r.requests.list(nil), nil
}

// ListByUser implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]leave.LeaveRequest, error) {
	return r.requests.list(func(l leave.LeaveRequest) bool { return l.UserID == userID }), nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	l, ok := r.requests.get(id)
	if !ok {
		return leave.LeaveRequest{}, fmt.Errorf("leave request %s: %w", id, leave.ErrLeaveRequestNotFound)
	}
	return l, nil
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	if !r.requests.insert(request) {
		return leave.LeaveRequest{}, fmt.Errorf("leave request id %s already exists", request.ID)
	}
	return cloneLeave(request), nil
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, request leave.LeaveRequest) error {
	if !r.requests.replace(request) {
		return fmt.Errorf("leave request %s: %w", request.ID, leave.ErrLeaveRequestNotFound)
	}
	return nil
}

// SoftDelete implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) SoftDelete(ctx context.Context, id string, at time.Time) error {
	ok := r.requests.mutate(id, func(l *leave.LeaveRequest) {
		l.DeletedAt = &at
		l.UpdatedAt = at
	})
	if !ok {
		return fmt.Errorf("leave request %s: %w", id, leave.ErrLeaveRequestNotFound)
	}
	return nil
}

func NewLeaveRequestRepository(seed []leave.LeaveRequest) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{
		requests: newCollection(seed,
			func(l leave.LeaveRequest) string { return l.ID },
			func(l leave.LeaveRequest) bool { return l.IsDeleted() },
			cloneLeave,
		),
	}
}
