package timesheet

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/filter"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/stats"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/table"
)

const NoProject = "No Project"

var Schema = filter.Schema[Timesheet]{
	Text: []func(Timesheet) string{
		func(t Timesheet) string { return t.UserName },
		func(t Timesheet) string { return t.UserEmail },
		func(t Timesheet) string { return deref(t.Project) },
		func(t Timesheet) string { return t.ID },
	},
	Fields: map[string]func(Timesheet) string{
		"status":     func(t Timesheet) string { return string(t.Status) },
		"project":    func(t Timesheet) string { return deref(t.Project) },
		"department": func(t Timesheet) string { return deref(t.Department) },
		"tab":        func(t Timesheet) string { return TabOf(t.Status) },
	},
	Span: func(t Timesheet) (filter.Span, bool) {
		if t.WeekStart.IsZero() || t.WeekEnd.IsZero() {
			return filter.Span{}, false
		}
		return filter.Span{Start: t.WeekStart, End: t.WeekEnd}, true
	},
}

func NewStats(items []Timesheet) Stats {
	c := stats.Count(items, func(t Timesheet) string { return string(t.Status) },
		string(StatusDraft), string(StatusSubmitted), string(StatusApproved), string(StatusRejected))
	return Stats{
		Total:    c.Total,
		Draft:    c.Get(string(StatusDraft)),
		Pending:  c.Get(string(StatusSubmitted)),
		Approved: c.Get(string(StatusApproved)),
		Rejected: c.Get(string(StatusRejected)),
	}
}

func StatusColor(s Status) string {
	switch s {
	case StatusSubmitted:
		return "processing"
	case StatusApproved:
		return "success"
	case StatusRejected:
		return "error"
	}
	return "default"
}

type WeekCell struct {
	Label string `json:"label"`
	Week  int    `json:"week"`
}

type HoursCell struct {
	Hours    float64        `json:"hours"`
	Target   float64        `json:"target"`
	Progress table.Progress `json:"progress"`
	Overtime string         `json:"overtime,omitempty"`
	Shortage string         `json:"shortage,omitempty"`
}

func hoursCell(t Timesheet) HoursCell {
	target := t.Target()
	color := "#1890ff"
	switch {
	case t.TotalHours >= target:
		color = "#52c41a"
	case t.TotalHours < target*0.75:
		color = "#ff4d4f"
	}
	pct, _ := t.Compliance().Float64()
	cell := HoursCell{
		Hours:  t.TotalHours,
		Target: target,
		Progress: table.Progress{
			Percent: pct,
			Label:   fmt.Sprintf("%g / %g hrs", t.TotalHours, target),
			Color:   color,
		},
	}
	if over := t.Overtime(); over.IsPositive() {
		cell.Overtime = "+" + over.String()
	}
	if short := t.Shortage(); short.IsPositive() {
		cell.Shortage = "-" + short.String()
	}
	return cell
}

func statusOption(text string, s Status) table.FilterOption[Timesheet] {
	return table.FilterOption[Timesheet]{Text: text, Value: string(s), Match: func(t Timesheet) bool { return t.Status == s }}
}

func projectOption(name string) table.FilterOption[Timesheet] {
	return table.FilterOption[Timesheet]{Text: name, Value: name, Match: func(t Timesheet) bool { return projectLabel(t.Project) == name }}
}

func pendingOnly(t Timesheet) bool { return t.Status == StatusSubmitted }

// Table is the timesheets list presentation.
var Table = table.MustNew(table.Config[Timesheet]{
	RowKey: func(t Timesheet) string { return t.ID },
	Noun:   "timesheets",
	Columns: []table.Column[Timesheet]{
		{
			Key: "id", Title: "Timesheet ID", Width: 130, Fixed: "left",
			Sorter: func(a, b Timesheet) int { return strings.Compare(a.ID, b.ID) },
			Render: func(t Timesheet) any { return t.ID },
		},
		{
			Key: "user", Title: "User", Width: 200,
			Sorter: func(a, b Timesheet) int { return strings.Compare(a.UserName, b.UserName) },
			Render: func(t Timesheet) any { return table.Person{Name: t.UserName, Email: t.UserEmail} },
		},
		{
			Key: "week", Title: "Week", Width: 200,
			Sorter: func(a, b Timesheet) int { return a.WeekStart.Compare(b.WeekStart) },
			Render: func(t Timesheet) any {
				_, week := t.WeekStart.ISOWeek()
				return WeekCell{
					Label: t.WeekStart.Format("Jan 02") + " - " + t.WeekEnd.Format("Jan 02, 2006"),
					Week:  week,
				}
			},
		},
		{
			Key: "project", Title: "Project", Width: 150,
			Filters: []table.FilterOption[Timesheet]{
				projectOption("Project Alpha"),
				projectOption("Project Beta"),
				projectOption("Project Gamma"),
				projectOption(NoProject),
			},
			Render: func(t Timesheet) any { return projectLabel(t.Project) },
		},
		{
			Key: "totalHours", Title: "Hours", Width: 200,
			Sorter: func(a, b Timesheet) int { return cmp.Compare(a.TotalHours, b.TotalHours) },
			Render: func(t Timesheet) any { return hoursCell(t) },
		},
		{
			Key: "status", Title: "Status", Width: 140,
			Filters: []table.FilterOption[Timesheet]{
				statusOption("Draft", StatusDraft),
				statusOption("Submitted", StatusSubmitted),
				statusOption("Approved", StatusApproved),
				statusOption("Rejected", StatusRejected),
			},
			Render: func(t Timesheet) any {
				return table.Tag{Text: strings.ToUpper(string(t.Status)), Color: StatusColor(t.Status)}
			},
		},
		{
			Key: "submittedDate", Title: "Submitted", Width: 180,
			Sorter: func(a, b Timesheet) int { return compareOptional(a.SubmittedDate, b.SubmittedDate) },
			Render: func(t Timesheet) any { return table.DatePtr(t.SubmittedDate, "Jan 02, 2006 15:04") },
		},
		{
			Key: "entries", Title: "Entries", Width: 100,
			Sorter: func(a, b Timesheet) int { return cmp.Compare(len(a.Entries), len(b.Entries)) },
			Render: func(t Timesheet) any { return table.Badge{Count: len(t.Entries)} },
		},
	},
	Actions: []table.RowAction[Timesheet]{
		{Kind: "view", Label: "View Details"},
		{Kind: string(ActionApprove), Label: "Approve", Visible: pendingOnly},
		{Kind: string(ActionReject), Label: "Reject", Danger: true, Visible: pendingOnly},
		{Kind: "edit", Label: "Edit", Visible: func(t Timesheet) bool {
			return t.Status == StatusDraft || t.Status == StatusRejected
		}},
		{Kind: string(ActionSubmit), Label: "Submit", Visible: func(t Timesheet) bool { return t.Status == StatusDraft }},
		{Kind: string(ActionResubmit), Label: "Resubmit", Visible: func(t Timesheet) bool { return t.Status == StatusRejected }},
		{Kind: "download", Label: "Download"},
		{Kind: string(ActionDelete), Label: "Delete", Danger: true},
	},
})

// EntryTable is the time entries table of a timesheet detail view.
var EntryTable = table.MustNew(table.Config[TimeEntry]{
	RowKey: func(e TimeEntry) string { return e.ID },
	Noun:   "entries",
	Columns: []table.Column[TimeEntry]{
		{
			Key: "date", Title: "Date", Width: 120,
			Sorter: func(a, b TimeEntry) int { return a.Date.Compare(b.Date) },
			Render: func(e TimeEntry) any { return e.Date.Format("Jan 02, 2006") },
		},
		{
			Key: "type", Title: "Type", Width: 100,
			Render: func(e TimeEntry) any { return table.Tag{Text: strings.ToUpper(string(e.Type)), Color: EntryTypeColor(e.Type)} },
		},
		{
			Key: "hours", Title: "Hours", Width: 80,
			Sorter: func(a, b TimeEntry) int { return cmp.Compare(a.Hours, b.Hours) },
			Render: func(e TimeEntry) any { return fmt.Sprintf("%gh", e.Hours) },
		},
		{
			Key: "project", Title: "Project", Width: 150,
			Render: func(e TimeEntry) any { return projectLabel(e.Project) },
		},
		{
			Key: "description", Title: "Description",
			Render: func(e TimeEntry) any { return e.Description },
		},
		{
			Key: "status", Title: "Status", Width: 100,
			Render: func(e TimeEntry) any { return table.Tag{Text: strings.ToUpper(string(e.Status))} },
		},
		{
			Key: "adminNotes", Title: "Notes",
			Render: func(e TimeEntry) any { return deref(e.AdminNotes) },
		},
	},
})

func EntryTypeColor(t EntryType) string {
	switch t {
	case EntryWork:
		return "blue"
	case EntryLeave:
		return "orange"
	case EntryBirthday:
		return "magenta"
	case EntryMeeting:
		return "purple"
	}
	return "default"
}

func projectLabel(p *string) string {
	if p == nil || *p == "" {
		return NoProject
	}
	return *p
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func compareOptional[T interface{ Compare(T) int }](a, b *T) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	return (*a).Compare(*b)
}
