package timesheet

import (
	"context"

	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/table"
)

type TimesheetService interface {
	List(ctx context.Context, f ListFilter) (ListResponse, error)
	Filtered(ctx context.Context, f ListFilter) ([]Timesheet, error)
	Pending(ctx context.Context) ([]PendingApproval, error)
	Get(ctx context.Context, id string) (Timesheet, error)
	Entries(ctx context.Context, id string, req table.Request) (table.View, error)
	Create(ctx context.Context, req CreateTimesheetRequest) (Timesheet, error)
	Transition(ctx context.Context, req TransitionRequest) (Timesheet, error)
	Delete(ctx context.Context, id string) error
}
