package user

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/filter"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/query"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/validator"
)

// ListFilter is the view state of the users list.
type ListFilter struct {
	query.List

	Role       string `json:"role,omitempty"`
	Status     string `json:"status,omitempty"`
	Department string `json:"department,omitempty"`
}

func (f *ListFilter) Validate() error {
	errs := f.List.Validate(nil)

	if !isAllOr(f.Role, roleStrings()) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: all, admin, manager, user, supervisor, auditor",
		})
	}
	if !isAllOr(f.Status, statusStrings()) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: all, active, inactive, pending, suspended",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Criteria converts the view state into filter criteria.
func (f ListFilter) Criteria() filter.Criteria {
	return filter.Criteria{
		Query: f.Search,
		Categories: map[string]string{
			"role":       f.Role,
			"status":     f.Status,
			"department": f.Department,
		},
		Range: f.Range(),
	}
}

// Stats are the summary counters over a filtered user list.
type Stats struct {
	Total     int `json:"total"`
	Active    int `json:"active"`
	Inactive  int `json:"inactive"`
	Pending   int `json:"pending"`
	Suspended int `json:"suspended"`
}

type ListResponse = query.Result[Stats]

// DetailStats summarises one user's timesheets.
type DetailStats struct {
	UserID         string          `json:"user_id"`
	TotalHours     decimal.Decimal `json:"total_hours"`
	WeeklyAverage  decimal.Decimal `json:"weekly_average"`
	Compliance     decimal.Decimal `json:"compliance"`
	Projects       int             `json:"projects"`
	TimesheetCount int             `json:"timesheet_count"`
	PendingLeaves  int             `json:"pending_leaves"`
}

// CreateUserRequest represents request to create a new user
type CreateUserRequest struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Role          string   `json:"role"`
	Department    string   `json:"department"`
	Status        string   `json:"status,omitempty"`
	Password      string   `json:"password,omitempty"`
	HoursThisWeek *float64 `json:"hours_this_week,omitempty"`
	JobTitle      *string  `json:"job_title,omitempty"`
	Phone         *string  `json:"phone,omitempty"`
	StartDate     *string  `json:"start_date,omitempty"` // YYYY-MM-DD
	Manager       *string  `json:"manager,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role is required",
		})
	} else if !validator.IsInSlice(r.Role, roleStrings()) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "invalid role",
		})
	}

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}

	if r.Status == "" {
		r.Status = string(StatusActive)
	} else if !validator.IsInSlice(r.Status, statusStrings()) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "invalid status",
		})
	}

	if r.Password != "" && len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if r.HoursThisWeek != nil && *r.HoursThisWeek < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "hours_this_week",
			Message: "hours_this_week must not be negative",
		})
	}

	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "invalid phone number",
		})
	}

	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateUserRequest represents request to update user. Nil fields are
// left untouched.
type UpdateUserRequest struct {
	ID            string   `json:"-"`
	Name          *string  `json:"name,omitempty"`
	Email         *string  `json:"email,omitempty"`
	Role          *string  `json:"role,omitempty"`
	Department    *string  `json:"department,omitempty"`
	Status        *string  `json:"status,omitempty"`
	HoursThisWeek *float64 `json:"hours_this_week,omitempty"`
	JobTitle      *string  `json:"job_title,omitempty"`
	Phone         *string  `json:"phone,omitempty"`
	StartDate     *string  `json:"start_date,omitempty"`
	Manager       *string  `json:"manager,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Notes         *string  `json:"notes,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}

	if r.Email != nil {
		if validator.IsEmpty(*r.Email) {
			errs = append(errs, validator.ValidationError{
				Field:   "email",
				Message: "email must not be empty",
			})
		} else if !validator.IsValidEmail(*r.Email) {
			errs = append(errs, validator.ValidationError{
				Field:   "email",
				Message: "invalid email format",
			})
		}
	}

	if r.Role != nil && !validator.IsInSlice(*r.Role, roleStrings()) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "invalid role",
		})
	}

	if r.Department != nil && validator.IsEmpty(*r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department must not be empty",
		})
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, statusStrings()) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "invalid status",
		})
	}

	if r.HoursThisWeek != nil && *r.HoursThisWeek < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "hours_this_week",
			Message: "hours_this_week must not be negative",
		})
	}

	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "invalid phone number",
		})
	}

	if r.StartDate != nil {
		if _, ok := validator.IsValidDate(*r.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Apply copies the set fields onto u.
func (r UpdateUserRequest) Apply(u *User) {
	if r.Name != nil {
		u.Name = *r.Name
	}
	if r.Email != nil {
		u.Email = *r.Email
	}
	if r.Role != nil {
		u.Role = Role(*r.Role)
	}
	if r.Department != nil {
		u.Department = *r.Department
	}
	if r.Status != nil {
		u.Status = Status(*r.Status)
	}
	if r.HoursThisWeek != nil {
		u.HoursThisWeek = *r.HoursThisWeek
	}
	if r.JobTitle != nil {
		u.JobTitle = r.JobTitle
	}
	if r.Phone != nil {
		u.Phone = r.Phone
	}
	if r.StartDate != nil {
		if d, ok := validator.IsValidDate(*r.StartDate); ok {
			u.StartDate = &d
		}
	}
	if r.Manager != nil {
		u.Manager = r.Manager
	}
	if r.Description != nil {
		u.Description = r.Description
	}
	if r.Notes != nil {
		u.Notes = r.Notes
	}
}

// ParseStartDate returns the parsed start date, if any.
func (r CreateUserRequest) ParseStartDate() *time.Time {
	if r.StartDate == nil {
		return nil
	}
	d, ok := validator.IsValidDate(*r.StartDate)
	if !ok {
		return nil
	}
	return &d
}

func roleStrings() []string {
	out := make([]string, len(Roles))
	for i, r := range Roles {
		out[i] = string(r)
	}
	return out
}

func statusStrings() []string {
	out := make([]string, len(Statuses))
	for i, s := range Statuses {
		out[i] = string(s)
	}
	return out
}

func isAllOr(v string, allowed []string) bool {
	return v == "" || v == filter.All || validator.IsInSlice(v, allowed)
}
