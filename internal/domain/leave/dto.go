package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/filter"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/query"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/validator"
)

// ListFilter is the view state of the leave list.
type ListFilter struct {
	query.List

	Status    string `json:"status,omitempty"`
	LeaveType string `json:"leave_type,omitempty"`
	UserID    string `json:"user_id,omitempty"`
}

func (f *ListFilter) Validate() error {
	errs := f.List.Validate(nil)

	if !isAllOr(f.Status, statusStrings()) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: all, pending, approved, rejected, cancelled",
		})
	}
	if !isAllOr(f.LeaveType, typeStrings()) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: all, vacation, sick, personal, birthday, other",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (f ListFilter) Criteria() filter.Criteria {
	return filter.Criteria{
		Query: f.Search,
		Categories: map[string]string{
			"status":    f.Status,
			"leaveType": f.LeaveType,
			"userId":    f.UserID,
		},
		Range: f.Range(),
	}
}

// Stats are the summary counters over a filtered leave list.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Cancelled int `json:"cancelled"`
}

type ListResponse = query.Result[Stats]

type CreateLeaveRequest struct {
	UserID    string `json:"user_id"`
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
	Reason    string `json:"reason"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	if !validator.IsInSlice(r.LeaveType, typeStrings()) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: vacation, sick, personal, birthday, other",
		})
	}

	errs = validateRange(errs, r.StartDate, r.EndDate)

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Dates returns the parsed start and end. Call after Validate.
func (r CreateLeaveRequest) Dates() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

// UpdateLeaveRequest edits a request in any status without changing the
// status itself. Nil fields are left alone.
type UpdateLeaveRequest struct {
	ID        string  `json:"-"`
	LeaveType *string `json:"leave_type,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	Reason    *string `json:"reason,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

func (r *UpdateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.LeaveType != nil && !validator.IsInSlice(*r.LeaveType, typeStrings()) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: vacation, sick, personal, birthday, other",
		})
	}

	if (r.StartDate == nil) != (r.EndDate == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_range",
			Message: "start_date and end_date must be updated together",
		})
	} else if r.StartDate != nil {
		errs = validateRange(errs, *r.StartDate, *r.EndDate)
	}

	if r.Reason != nil && validator.IsEmpty(*r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply copies the set fields onto l and recomputes its duration.
func (r UpdateLeaveRequest) Apply(l *LeaveRequest) {
	if r.LeaveType != nil {
		l.LeaveType = LeaveType(*r.LeaveType)
	}
	if r.StartDate != nil && r.EndDate != nil {
		start, _ := validator.IsValidDate(*r.StartDate)
		end, _ := validator.IsValidDate(*r.EndDate)
		l.StartDate = start
		l.EndDate = end
		l.TotalDays = TotalDays(start, end)
	}
	if r.Reason != nil {
		l.Reason = *r.Reason
	}
	if r.Notes != nil {
		l.Notes = r.Notes
	}
}

// TransitionRequest moves one leave request through its state machine.
type TransitionRequest struct {
	ID     string `json:"-"`
	Action Action `json:"action"`
	Actor  string `json:"-"`
	Note   string `json:"note,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func (r *TransitionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}
	if r.Action == ActionReject && validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: ErrRejectionReason.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CalendarRequest selects one month, formatted YYYY-MM.
type CalendarRequest struct {
	Month  string `json:"month"`
	Status string `json:"status,omitempty"`
}

func (r *CalendarRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidMonth(r.Month); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}
	if !isAllOr(r.Status, statusStrings()) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: all, pending, approved, rejected, cancelled",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CalendarEvent struct {
	ID        string    `json:"id"`
	UserName  string    `json:"user_name"`
	LeaveType LeaveType `json:"leave_type"`
	Label     string    `json:"label"`
	Status    Status    `json:"status"`
}

type CalendarDay struct {
	Date   string          `json:"date"`
	Events []CalendarEvent `json:"events"`
}

type CalendarResponse struct {
	Month string        `json:"month"`
	Days  []CalendarDay `json:"days"`
}

func validateRange(errs validator.ValidationErrors, startStr, endStr string) validator.ValidationErrors {
	start, startOK := validator.IsValidDate(startStr)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(endStr)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: ErrInvalidDateRange.Error(),
		})
	}
	return errs
}

func statusStrings() []string {
	out := make([]string, len(Statuses))
	for i, s := range Statuses {
		out[i] = string(s)
	}
	return out
}

func typeStrings() []string {
	out := make([]string, len(LeaveTypes))
	for i, t := range LeaveTypes {
		out[i] = string(t)
	}
	return out
}

func isAllOr(v string, allowed []string) bool {
	return v == "" || v == filter.All || validator.IsInSlice(v, allowed)
}
