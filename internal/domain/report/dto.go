package report

import (
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/filter"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/query"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/table"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Filter narrows the report to a period, a department and a role.
type Filter struct {
	query.List

	Department string `json:"department,omitempty"`
	Role       string `json:"role,omitempty"`
}

func (f *Filter) Validate() error {
	errs := f.List.Validate(nil)

	if f.Role != "" && f.Role != filter.All {
		valid := false
		for _, r := range user.Roles {
			if string(r) == f.Role {
				valid = true
				break
			}
		}
		if !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "role",
				Message: "role must be one of: all, admin, manager, user, supervisor, auditor",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UserRow is one user's totals over the selected period.
type UserRow struct {
	UserID       string          `json:"user_id"`
	UserName     string          `json:"user_name"`
	UserEmail    string          `json:"user_email"`
	Department   string          `json:"department"`
	Role         user.Role       `json:"role"`
	Timesheets   int             `json:"timesheets"`
	TotalHours   decimal.Decimal `json:"total_hours"`
	TargetHours  decimal.Decimal `json:"target_hours"`
	Overtime     decimal.Decimal `json:"overtime"`
	LeaveHours   decimal.Decimal `json:"leave_hours"`
	MeetingHours decimal.Decimal `json:"meeting_hours"`
	Compliance   decimal.Decimal `json:"compliance"`
	Projects     []string        `json:"projects"`
}

type DepartmentRow struct {
	Department        string          `json:"department"`
	Users             int             `json:"users"`
	TotalHours        decimal.Decimal `json:"total_hours"`
	AverageCompliance decimal.Decimal `json:"average_compliance"`
}

type WeeklyPoint struct {
	WeekStart   string          `json:"week_start"` // YYYY-MM-DD
	Timesheets  int             `json:"timesheets"`
	TotalHours  decimal.Decimal `json:"total_hours"`
	TargetHours decimal.Decimal `json:"target_hours"`
}

type Summary struct {
	Users             int             `json:"users"`
	Timesheets        int             `json:"timesheets"`
	TotalHours        decimal.Decimal `json:"total_hours"`
	OvertimeHours     decimal.Decimal `json:"overtime_hours"`
	LeaveHours        decimal.Decimal `json:"leave_hours"`
	AverageCompliance decimal.Decimal `json:"average_compliance"`
}

type Report struct {
	PeriodStart string          `json:"period_start,omitempty"`
	PeriodEnd   string          `json:"period_end,omitempty"`
	GeneratedAt time.Time       `json:"generated_at"`
	Summary     Summary         `json:"summary"`
	Table       table.View      `json:"table"`
	Departments []DepartmentRow `json:"departments"`
	Weekly      []WeeklyPoint   `json:"weekly"`
}
