package user

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/filter"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/stats"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/table"
)

const (
	WeeklyTarget    = 40
	shortageBelow   = 32
	lastLoginLayout = "Jan 2, 2006 03:04 PM"
)

// Schema makes users searchable by name, email and id. Users carry no
// date span, so date ranges never narrow the list.
var Schema = filter.Schema[User]{
	Text: []func(User) string{
		func(u User) string { return u.Name },
		func(u User) string { return u.Email },
		func(u User) string { return u.ID },
	},
	Fields: map[string]func(User) string{
		"role":       func(u User) string { return string(u.Role) },
		"status":     func(u User) string { return string(u.Status) },
		"department": func(u User) string { return u.Department },
	},
}

func NewStats(users []User) Stats {
	c := stats.Count(users, func(u User) string { return string(u.Status) },
		string(StatusActive), string(StatusInactive), string(StatusPending), string(StatusSuspended))
	return Stats{
		Total:     c.Total,
		Active:    c.Get(string(StatusActive)),
		Inactive:  c.Get(string(StatusInactive)),
		Pending:   c.Get(string(StatusPending)),
		Suspended: c.Get(string(StatusSuspended)),
	}
}

// HoursCell renders weekly hours against the 40h target.
type HoursCell struct {
	Hours    float64        `json:"hours"`
	Target   int            `json:"target"`
	Progress table.Progress `json:"progress"`
	Overtime float64        `json:"overtime,omitempty"`
	Shortage float64        `json:"shortage,omitempty"`
}

func hoursCell(h float64) HoursCell {
	color := "#1890ff"
	if h >= WeeklyTarget {
		color = "#52c41a"
	}
	cell := HoursCell{
		Hours:  h,
		Target: WeeklyTarget,
		Progress: table.Progress{
			Percent: min(h/WeeklyTarget*100, 100),
			Label:   fmt.Sprintf("%g / %d hrs", h, WeeklyTarget),
			Color:   color,
		},
	}
	if h > WeeklyTarget {
		cell.Overtime = h - WeeklyTarget
	}
	if h < shortageBelow {
		cell.Shortage = WeeklyTarget - h
	}
	return cell
}

func option(text, value string, match func(User) bool) table.FilterOption[User] {
	return table.FilterOption[User]{Text: text, Value: value, Match: match}
}

func roleOption(text string, r Role) table.FilterOption[User] {
	return option(text, string(r), func(u User) bool { return u.Role == r })
}

func statusOption(text string, s Status) table.FilterOption[User] {
	return option(text, string(s), func(u User) bool { return u.Status == s })
}

func departmentOption(text, dept string) table.FilterOption[User] {
	return option(text, dept, func(u User) bool { return u.Department == dept })
}

// Table is the users list presentation.
var Table = table.MustNew(table.Config[User]{
	RowKey: func(u User) string { return u.ID },
	Noun:   "users",
	Columns: []table.Column[User]{
		{
			Key: "id", Title: "User ID", Width: 120, Fixed: "left",
			Sorter: func(a, b User) int { return strings.Compare(a.ID, b.ID) },
			Render: func(u User) any { return u.ID },
		},
		{
			Key: "name", Title: "User", Width: 200, Fixed: "left",
			Sorter: func(a, b User) int { return strings.Compare(a.Name, b.Name) },
			Render: func(u User) any { return table.Person{Name: u.Name, Email: u.Email} },
		},
		{
			Key: "role", Title: "Role", Width: 120,
			Filters: []table.FilterOption[User]{
				roleOption("Admin", RoleAdmin),
				roleOption("Manager", RoleManager),
				roleOption("User", RoleUser),
				roleOption("Supervisor", RoleSupervisor),
				roleOption("Auditor", RoleAuditor),
			},
			Render: func(u User) any {
				return table.Tag{Text: strings.ToUpper(string(u.Role)), Color: RoleColor(u.Role)}
			},
		},
		{
			Key: "department", Title: "Department", Width: 150,
			Filters: []table.FilterOption[User]{
				departmentOption("Engineering", "engineering"),
				departmentOption("Marketing", "marketing"),
				departmentOption("Sales", "sales"),
				departmentOption("HR", "hr"),
				departmentOption("IT", "it"),
			},
			Render: func(u User) any { return capitalize(u.Department) },
		},
		{
			Key: "status", Title: "Status", Width: 120,
			Filters: []table.FilterOption[User]{
				statusOption("Active", StatusActive),
				statusOption("Inactive", StatusInactive),
				statusOption("Pending", StatusPending),
				statusOption("Suspended", StatusSuspended),
			},
			Render: func(u User) any {
				return table.Tag{Text: strings.ToUpper(string(u.Status)), Color: StatusColor(u.Status)}
			},
		},
		{
			Key: "hoursThisWeek", Title: "Hours This Week", Width: 180,
			Sorter: func(a, b User) int { return cmp.Compare(a.HoursThisWeek, b.HoursThisWeek) },
			Render: func(u User) any { return hoursCell(u.HoursThisWeek) },
		},
		{
			Key: "lastLogin", Title: "Last Login", Width: 180,
			Sorter: func(a, b User) int { return compareOptionalTime(a, b) },
			Render: func(u User) any { return table.DatePtr(u.LastLogin, lastLoginLayout) },
		},
	},
	Actions: []table.RowAction[User]{
		{Kind: "view", Label: "View Details"},
		{Kind: "edit", Label: "Edit User"},
		{Kind: "delete", Label: "Delete", Danger: true},
	},
})

// never-logged-in users sort first
func compareOptionalTime(a, b User) int {
	switch {
	case a.LastLogin == nil && b.LastLogin == nil:
		return 0
	case a.LastLogin == nil:
		return -1
	case b.LastLogin == nil:
		return 1
	}
	return a.LastLogin.Compare(*b.LastLogin)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
