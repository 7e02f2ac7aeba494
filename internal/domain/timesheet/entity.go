package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

var Statuses = []Status{StatusDraft, StatusSubmitted, StatusApproved, StatusRejected}

type EntryType string

const (
	EntryWork     EntryType = "work"
	EntryLeave    EntryType = "leave"
	EntryBirthday EntryType = "birthday"
	EntryMeeting  EntryType = "meeting"
	EntryOther    EntryType = "other"
)

var EntryTypes = []EntryType{EntryWork, EntryLeave, EntryBirthday, EntryMeeting, EntryOther}

type EntryStatus string

const (
	EntryPending  EntryStatus = "pending"
	EntryApproved EntryStatus = "approved"
	EntryRejected EntryStatus = "rejected"
)

// DefaultTargetHours applies when a timesheet has no target of its own.
const DefaultTargetHours = 40

type TimeEntry struct {
	ID          string      `json:"id"`
	TimesheetID string      `json:"timesheet_id"`
	UserID      string      `json:"user_id"`
	Date        time.Time   `json:"date"`
	Hours       float64     `json:"hours"`
	Type        EntryType   `json:"type"`
	Project     *string     `json:"project,omitempty"`
	Description string      `json:"description"`
	Status      EntryStatus `json:"status"`
	AdminNotes  *string     `json:"admin_notes,omitempty"`
}

type Timesheet struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	UserEmail   string    `json:"user_email"`
	WeekStart   time.Time `json:"week_start"`
	WeekEnd     time.Time `json:"week_end"`
	TotalHours  float64   `json:"total_hours"`
	TargetHours float64   `json:"target_hours"`
	Project     *string   `json:"project,omitempty"`
	Department  *string   `json:"department,omitempty"`
	Status      Status    `json:"status"`

	SubmittedDate   *time.Time `json:"submitted_date,omitempty"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovedDate    *time.Time `json:"approved_date,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	Notes           *string    `json:"notes,omitempty"`

	Entries []TimeEntry `json:"entries"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

// Target returns the target hours, falling back to the default.
func (t Timesheet) Target() float64 {
	if t.TargetHours <= 0 {
		return DefaultTargetHours
	}
	return t.TargetHours
}

// Compliance is total/target as a percentage capped at 100.
func (t Timesheet) Compliance() decimal.Decimal {
	return Compliance(decimal.NewFromFloat(t.TotalHours), decimal.NewFromFloat(t.Target()))
}

// Overtime is the hours worked beyond target, never negative.
func (t Timesheet) Overtime() decimal.Decimal {
	over := decimal.NewFromFloat(t.TotalHours).Sub(decimal.NewFromFloat(t.Target()))
	if over.IsNegative() {
		return decimal.Zero
	}
	return over
}

// Shortage is the hours missing to reach target, never negative.
func (t Timesheet) Shortage() decimal.Decimal {
	short := decimal.NewFromFloat(t.Target()).Sub(decimal.NewFromFloat(t.TotalHours))
	if short.IsNegative() {
		return decimal.Zero
	}
	return short
}

// HoursByType sums entry hours per entry type.
func (t Timesheet) HoursByType() map[EntryType]decimal.Decimal {
	out := make(map[EntryType]decimal.Decimal)
	for _, e := range t.Entries {
		out[e.Type] = out[e.Type].Add(decimal.NewFromFloat(e.Hours))
	}
	return out
}

func (t Timesheet) IsDeleted() bool {
	return t.DeletedAt != nil
}

// SumEntries adds up entry hours.
func SumEntries(entries []TimeEntry) float64 {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(decimal.NewFromFloat(e.Hours))
	}
	f, _ := sum.Float64()
	return f
}

var hundred = decimal.NewFromInt(100)

// Compliance returns min(total/target*100, 100). A zero target counts as
// the default target.
func Compliance(total, target decimal.Decimal) decimal.Decimal {
	if !target.IsPositive() {
		target = decimal.NewFromInt(DefaultTargetHours)
	}
	pct := total.Div(target).Mul(hundred)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct.Round(1)
}

// ComplianceColor maps a compliance percentage to its display band.
func ComplianceColor(c decimal.Decimal) string {
	switch {
	case c.GreaterThanOrEqual(decimal.NewFromInt(100)):
		return "green"
	case c.GreaterThanOrEqual(decimal.NewFromInt(90)):
		return "blue"
	case c.GreaterThanOrEqual(decimal.NewFromInt(75)):
		return "orange"
	}
	return "red"
}
