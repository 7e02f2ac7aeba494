package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/filter"
)

type LeaveType string

const (
	TypeVacation LeaveType = "vacation"
	TypeSick     LeaveType = "sick"
	TypePersonal LeaveType = "personal"
	TypeBirthday LeaveType = "birthday"
	TypeOther    LeaveType = "other"
)

var LeaveTypes = []LeaveType{TypeVacation, TypeSick, TypePersonal, TypeBirthday, TypeOther}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

var Statuses = []Status{StatusPending, StatusApproved, StatusRejected, StatusCancelled}

// LeaveRequest entity
type LeaveRequest struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	LeaveType LeaveType `json:"leave_type"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	TotalDays int       `json:"total_days"`

	Status        Status     `json:"status"` // 'pending', 'approved', 'rejected', 'cancelled'
	SubmittedDate time.Time  `json:"submitted_date"`
	Reason        string     `json:"reason"`
	ApprovedBy    *string    `json:"approved_by,omitempty"`
	ApprovedDate  *time.Time `json:"approved_date,omitempty"`
	Notes         *string    `json:"notes,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

func (l LeaveRequest) IsPending() bool {
	return l.Status == StatusPending
}

func (l LeaveRequest) IsDeleted() bool {
	return l.DeletedAt != nil
}

// Covers reports whether day falls inside the leave, bounds included.
func (l LeaveRequest) Covers(day time.Time) bool {
	d := filter.StartOfDay(day)
	return !d.Before(filter.StartOfDay(l.StartDate)) && !d.After(filter.StartOfDay(l.EndDate))
}

// TotalDays counts calendar days from start to end inclusive.
func TotalDays(start, end time.Time) int {
	s := filter.StartOfDay(start)
	e := filter.StartOfDay(end)
	if e.Before(s) {
		return 0
	}
	days := 1
	for d := s; d.Before(e); d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

func TypeLabel(t LeaveType) string {
	switch t {
	case TypeVacation:
		return "Vacation"
	case TypeSick:
		return "Sick Leave"
	case TypePersonal:
		return "Personal"
	case TypeBirthday:
		return "Birthday"
	}
	return "Other"
}

func TypeColor(t LeaveType) string {
	switch t {
	case TypeVacation:
		return "blue"
	case TypeSick:
		return "red"
	case TypePersonal:
		return "purple"
	case TypeBirthday:
		return "green"
	}
	return "orange"
}

func StatusColor(s Status) string {
	switch s {
	case StatusPending:
		return "gold"
	case StatusApproved:
		return "green"
	case StatusRejected:
		return "red"
	}
	return "gray"
}
