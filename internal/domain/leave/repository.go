package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - the leave request collection
type LeaveRequestRepository interface {
	List(ctx context.Context) ([]LeaveRequest, error)
	ListByUser(ctx context.Context, userID string) ([]LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	Update(ctx context.Context, request LeaveRequest) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
