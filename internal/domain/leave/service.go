package leave

import (
	"context"
)

type LeaveService interface {
	List(ctx context.Context, f ListFilter) (ListResponse, error)
	Filtered(ctx context.Context, f ListFilter) ([]LeaveRequest, error)
	Calendar(ctx context.Context, req CalendarRequest) (CalendarResponse, error)
	Get(ctx context.Context, id string) (LeaveRequest, error)
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveRequest, error)
	Update(ctx context.Context, req UpdateLeaveRequest) (LeaveRequest, error)
	Transition(ctx context.Context, req TransitionRequest) (LeaveRequest, error)
	Delete(ctx context.Context, id string) error
}
