package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/export"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/dispatch"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/table"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var empty *dispatch.EmptySelectionError
	if errors.As(err, &empty) {
		Warning(w, empty.Message)
		return
	}

	switch {
	// Auth
	case errors.Is(err, jwt.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Dispatcher
	case errors.Is(err, dispatch.ErrEmptySelection):
		Warning(w, err.Error())
	case errors.Is(err, dispatch.ErrReasonRequired):
		ValidationError(w, map[string]string{"reason": "Please provide a reason for rejection"})
	case errors.Is(err, dispatch.ErrConfirmationExpired):
		Gone(w, "Confirmation expired, please try again")
	case errors.Is(err, dispatch.ErrConfirmationNotFound):
		NotFound(w, "Confirmation not found")
	case errors.Is(err, dispatch.ErrUnknownEntity),
		errors.Is(err, dispatch.ErrUnsupportedKind):
		BadRequest(w, err.Error(), nil)

	// User
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAlreadyDeleted):
		Conflict(w, "User already deleted")

	// Timesheet
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, timesheet.ErrInvalidTransition):
		Conflict(w, err.Error())
	case errors.Is(err, timesheet.ErrUnknownAction):
		BadRequest(w, err.Error(), nil)

	// Leave
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrUnknownAction):
		BadRequest(w, err.Error(), nil)

	// Generic dispatcher outcomes, after the domain-specific ones
	case errors.Is(err, dispatch.ErrNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, dispatch.ErrInvalidTransition):
		Conflict(w, err.Error())

	// Table state
	case errors.Is(err, table.ErrUnknownColumn),
		errors.Is(err, table.ErrNotSortable),
		errors.Is(err, table.ErrNotFilterable),
		errors.Is(err, table.ErrInvalidSortOrder),
		errors.Is(err, table.ErrInvalidSelectScope):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, table.ErrActionUnavailable):
		Conflict(w, err.Error())

	// Notifications and exports
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrQueueFull):
		ServiceUnavailable(w, "Notifications are unavailable, please retry")
	case errors.Is(err, export.ErrNothingToExport):
		NotFound(w, err.Error())
	case errors.Is(err, storage.ErrFileNotFound):
		NotFound(w, "File not found")

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
