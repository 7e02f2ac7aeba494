package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeActionResult       NotificationType = "action_result"
	TypeLeaveApproved      NotificationType = "leave_approved"
	TypeLeaveRejected      NotificationType = "leave_rejected"
	TypeLeaveCancelled     NotificationType = "leave_cancelled"
	TypeTimesheetSubmitted NotificationType = "timesheet_submitted"
	TypeTimesheetApproved  NotificationType = "timesheet_approved"
	TypeTimesheetRejected  NotificationType = "timesheet_rejected"
)

// Level is the toast severity.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification represents a notification entity
type Notification struct {
	ID          string
	RecipientID string
	Type        NotificationType
	Level       Level
	Title       string
	Message     string
	EntityType  string
	EntityIDs   []string
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}

// Emailed reports whether the type also goes out by email to the
// entity owner.
func (t NotificationType) Emailed() bool {
	switch t {
	case TypeLeaveApproved, TypeLeaveRejected, TypeTimesheetApproved, TypeTimesheetRejected:
		return true
	}
	return false
}

// Outcome is the decision word used in emails, empty for non-decision types.
func (t NotificationType) Outcome() string {
	switch t {
	case TypeLeaveApproved, TypeTimesheetApproved:
		return "approved"
	case TypeLeaveRejected, TypeTimesheetRejected:
		return "rejected"
	case TypeLeaveCancelled:
		return "cancelled"
	}
	return ""
}
