// Package action adapts the domain services to the dispatcher.
package action

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/dispatch"
)

const (
	EntityUser      = "user"
	EntityTimesheet = "timesheet"
	EntityLeave     = "leave"
)

// Register installs the user, timesheet and leave handlers on d.
// notifier may be nil.
func Register(d *dispatch.Dispatcher, users user.UserService, timesheets timesheet.TimesheetService, leaves leave.LeaveService, notifier notification.Service) error {
	handlers := map[string]dispatch.Handler{
		EntityUser:      NewUserHandler(users),
		EntityTimesheet: NewTimesheetHandler(timesheets, notifier),
		EntityLeave:     NewLeaveHandler(leaves, notifier),
	}
	for _, name := range []string{EntityUser, EntityTimesheet, EntityLeave} {
		if err := d.Register(name, handlers[name]); err != nil {
			return fmt.Errorf("failed to register %s actions: %w", name, err)
		}
	}
	return nil
}

// classify maps domain errors onto the dispatcher taxonomy, keeping the
// original error in the chain.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, timesheet.ErrTimesheetNotFound),
		errors.Is(err, leave.ErrLeaveRequestNotFound):
		return fmt.Errorf("%w: %w", dispatch.ErrNotFound, err)
	case errors.Is(err, timesheet.ErrInvalidTransition),
		errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		return fmt.Errorf("%w: %w", dispatch.ErrInvalidTransition, err)
	}
	return err
}

func notify(ctx context.Context, n notification.Service, req notification.CreateNotificationRequest) {
	if n == nil {
		return
	}
	if err := n.QueueNotification(context.WithoutCancel(ctx), req); err != nil {
		slog.Warn("Failed to queue notification", "recipient_id", req.RecipientID, "type", req.Type, "error", err)
	}
}
