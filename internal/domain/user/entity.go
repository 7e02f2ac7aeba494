package user

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"      // Full access
	RoleManager    Role = "manager"    // Approves timesheets and leave
	RoleSupervisor Role = "supervisor" // Approves for their team
	RoleAuditor    Role = "auditor"    // Read-only with reports
	RoleUser       Role = "user"       // Regular staff
)

var Roles = []Role{RoleAdmin, RoleManager, RoleUser, RoleSupervisor, RoleAuditor}

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusPending   Status = "pending"
	StatusSuspended Status = "suspended"
)

var Statuses = []Status{StatusActive, StatusInactive, StatusPending, StatusSuspended}

type User struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Role          Role       `json:"role"`
	Department    string     `json:"department"`
	Status        Status     `json:"status"`
	HoursThisWeek float64    `json:"hours_this_week"`
	LastLogin     *time.Time `json:"last_login,omitempty"`

	JobTitle    *string    `json:"job_title,omitempty"`
	Phone       *string    `json:"phone,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	Manager     *string    `json:"manager,omitempty"`
	Description *string    `json:"description,omitempty"`
	Notes       *string    `json:"notes,omitempty"`

	PasswordHash *string    `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"-"`
}

// IsAdmin checks if user has full access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanApprove checks if user can approve timesheets and leave
func (u *User) CanApprove() bool {
	return HasPermission(u.Role, PermissionTimesheetApprove)
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// RoleColor is the tag colour used when a role is displayed.
func RoleColor(r Role) string {
	switch r {
	case RoleAdmin:
		return "red"
	case RoleManager:
		return "blue"
	case RoleSupervisor:
		return "purple"
	case RoleAuditor:
		return "orange"
	}
	return "green"
}

func StatusColor(s Status) string {
	switch s {
	case StatusActive:
		return "success"
	case StatusPending:
		return "warning"
	case StatusSuspended:
		return "error"
	}
	return "default"
}
