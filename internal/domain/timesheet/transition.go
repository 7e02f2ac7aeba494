package timesheet

import "fmt"

type Action string

const (
	ActionSubmit   Action = "submit"
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionResubmit Action = "resubmit"
	ActionDelete   Action = "delete"
)

var transitions = map[Action]struct {
	from Status
	to   Status
}{
	ActionSubmit:   {StatusDraft, StatusSubmitted},
	ActionApprove:  {StatusSubmitted, StatusApproved},
	ActionReject:   {StatusSubmitted, StatusRejected},
	ActionResubmit: {StatusRejected, StatusDraft},
}

// Next returns the status reached by applying a to a timesheet in from.
// Delete is allowed from any status and keeps it.
func Next(from Status, a Action) (Status, error) {
	if a == ActionDelete {
		return from, nil
	}
	t, ok := transitions[a]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownAction, a)
	}
	if from != t.from {
		return "", fmt.Errorf("%w: cannot %s a %s timesheet", ErrInvalidTransition, a, from)
	}
	return t.to, nil
}

// TabOf maps a status to the list tab that shows it. Submitted
// timesheets live under the pending tab.
func TabOf(s Status) string {
	if s == StatusSubmitted {
		return "pending"
	}
	return string(s)
}
