package timesheet

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/filter"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/query"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/validator"
)

var tabs = []string{"pending", "approved", "rejected", "draft"}

// ListFilter is the view state of the timesheets list.
type ListFilter struct {
	query.List

	Status     string `json:"status,omitempty"`
	Project    string `json:"project,omitempty"`
	Department string `json:"department,omitempty"`
	// Tab is a status shortcut; "pending" selects submitted timesheets.
	Tab string `json:"tab,omitempty"`
}

func (f *ListFilter) Validate() error {
	errs := f.List.Validate(nil)

	if !isAllOr(f.Status, statusStrings()) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: all, draft, submitted, approved, rejected",
		})
	}
	if !isAllOr(f.Tab, tabs) {
		errs = append(errs, validator.ValidationError{
			Field:   "tab",
			Message: "tab must be one of: all, pending, approved, rejected, draft",
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
			"status":     f.Status,
			"project":    f.Project,
			"department": f.Department,
			"tab":        f.Tab,
		},
		Range: f.Range(),
	}
}

// Stats are the summary counters over a filtered timesheet list. Pending
// counts submitted timesheets.
type Stats struct {
	Total    int `json:"total"`
	Draft    int `json:"draft"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type ListResponse = query.Result[Stats]

// PendingApproval is a submitted timesheet with its compliance figures.
type PendingApproval struct {
	Timesheet       Timesheet       `json:"timesheet"`
	Compliance      decimal.Decimal `json:"compliance"`
	ComplianceColor string          `json:"compliance_color"`
	Overtime        decimal.Decimal `json:"overtime"`
	Shortage        decimal.Decimal `json:"shortage"`
}

func NewPendingApproval(t Timesheet) PendingApproval {
	c := t.Compliance()
	return PendingApproval{
		Timesheet:       t,
		Compliance:      c,
		ComplianceColor: ComplianceColor(c),
		Overtime:        t.Overtime(),
		Shortage:        t.Shortage(),
	}
}

type CreateEntryRequest struct {
	Date        string  `json:"date"` // YYYY-MM-DD
	Hours       float64 `json:"hours"`
	Type        string  `json:"type"`
	Project     *string `json:"project,omitempty"`
	Description string  `json:"description"`
}

type CreateTimesheetRequest struct {
	UserID      string               `json:"user_id"`
	WeekStart   string               `json:"week_start"` // YYYY-MM-DD
	WeekEnd     string               `json:"week_end"`   // YYYY-MM-DD
	TotalHours  *float64             `json:"total_hours,omitempty"`
	TargetHours *float64             `json:"target_hours,omitempty"`
	Project     *string              `json:"project,omitempty"`
	Department  *string              `json:"department,omitempty"`
	Submit      bool                 `json:"submit"`
	Notes       *string              `json:"notes,omitempty"`
	Entries     []CreateEntryRequest `json:"entries,omitempty"`
}

func (r *CreateTimesheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.WeekStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "week_start",
			Message: "week_start must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.WeekEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "week_end",
			Message: "week_end must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "week_end",
			Message: ErrInvalidWeek.Error(),
		})
	}

	if r.TotalHours != nil && *r.TotalHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "total_hours",
			Message: "total_hours must not be negative",
		})
	}
	if r.TargetHours != nil && *r.TargetHours <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "target_hours",
			Message: "target_hours must be greater than 0",
		})
	}

	for i, e := range r.Entries {
		field := "entries[" + validator.Itoa(i) + "]"
		if _, ok := validator.IsValidDate(e.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
		if e.Hours <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".hours",
				Message: "hours must be greater than 0",
			})
		}
		if !validator.IsInSlice(e.Type, entryTypeStrings()) {
			errs = append(errs, validator.ValidationError{
				Field:   field + ".type",
				Message: "type must be one of: work, leave, birthday, meeting, other",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Week returns the parsed week bounds. Call after Validate.
func (r CreateTimesheetRequest) Week() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.WeekStart)
	end, _ := validator.IsValidDate(r.WeekEnd)
	return start, end
}

// TransitionRequest moves one timesheet through its state machine.
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

func statusStrings() []string {
	out := make([]string, len(Statuses))
	for i, s := range Statuses {
		out[i] = string(s)
	}
	return out
}

func entryTypeStrings() []string {
	out := make([]string, len(EntryTypes))
	for i, t := range EntryTypes {
		out[i] = string(t)
	}
	return out
}

func isAllOr(v string, allowed []string) bool {
	return v == "" || v == filter.All || validator.IsInSlice(v, allowed)
}
