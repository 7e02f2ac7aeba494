package timesheet

import (
	"context"
	"time"
)

type TimesheetRepository interface {
	List(ctx context.Context) ([]Timesheet, error)
	ListByUser(ctx context.Context, userID string) ([]Timesheet, error)
	GetByID(ctx context.Context, id string) (Timesheet, error)
	Create(ctx context.Context, t Timesheet) (Timesheet, error)
	Update(ctx context.Context, t Timesheet) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
