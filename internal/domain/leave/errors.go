package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("Leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("Leave request already processed")
	ErrUnknownAction                = errors.New("unknown leave action")
	ErrInvalidDateRange             = errors.New("end_date cannot be before start_date")
	ErrRejectionReason              = errors.New("Please provide a reason for rejection")
)
