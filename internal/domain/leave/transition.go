package leave

import "fmt"

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionCancel  Action = "cancel"
	ActionDelete  Action = "delete"
)

// Next returns the status reached by applying a. Approve, reject and
// cancel only leave pending; the results are terminal. Delete is allowed
// from any status.
func Next(from Status, a Action) (Status, error) {
	var to Status
	switch a {
	case ActionDelete:
		return from, nil
	case ActionApprove:
		to = StatusApproved
	case ActionReject:
		to = StatusRejected
	case ActionCancel:
		to = StatusCancelled
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownAction, a)
	}
	if from != StatusPending {
		return "", fmt.Errorf("%w: cannot %s a %s leave request", ErrLeaveRequestAlreadyProcessed, a, from)
	}
	return to, nil
}
