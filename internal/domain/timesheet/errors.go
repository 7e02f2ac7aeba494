package timesheet

import "errors"

var (
	ErrTimesheetNotFound = errors.New("timesheet not found")
	ErrInvalidTransition = errors.New("invalid timesheet status transition")
	ErrUnknownAction     = errors.New("unknown timesheet action")
	ErrRejectionReason   = errors.New("Please provide a reason for rejection")
	ErrInvalidWeek       = errors.New("week_end cannot be before week_start")
)
