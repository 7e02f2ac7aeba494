package leave

import (
	"cmp"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/filter"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/stats"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/table"
)

var Schema = filter.Schema[LeaveRequest]{
	Text: []func(LeaveRequest) string{
		func(l LeaveRequest) string { return l.UserName },
		func(l LeaveRequest) string { return l.UserEmail },
		func(l LeaveRequest) string { return l.Reason },
		func(l LeaveRequest) string { return l.ID },
	},
	Fields: map[string]func(LeaveRequest) string{
		"status":    func(l LeaveRequest) string { return string(l.Status) },
		"leaveType": func(l LeaveRequest) string { return string(l.LeaveType) },
		"userId":    func(l LeaveRequest) string { return l.UserID },
	},
	Span: func(l LeaveRequest) (filter.Span, bool) {
		if l.StartDate.IsZero() || l.EndDate.IsZero() {
			return filter.Span{}, false
		}
		return filter.Span{Start: l.StartDate, End: l.EndDate}, true
	},
}

func NewStats(items []LeaveRequest) Stats {
	c := stats.Count(items, func(l LeaveRequest) string { return string(l.Status) },
		string(StatusPending), string(StatusApproved), string(StatusRejected), string(StatusCancelled))
	return Stats{
		Total:     c.Total,
		Pending:   c.Get(string(StatusPending)),
		Approved:  c.Get(string(StatusApproved)),
		Rejected:  c.Get(string(StatusRejected)),
		Cancelled: c.Get(string(StatusCancelled)),
	}
}

type DateRangeCell struct {
	Label string `json:"label"`
	Year  string `json:"year"`
}

func typeOption(t LeaveType) table.FilterOption[LeaveRequest] {
	return table.FilterOption[LeaveRequest]{
		Text:  TypeLabel(t),
		Value: string(t),
		Match: func(l LeaveRequest) bool { return l.LeaveType == t },
	}
}

func statusOption(text string, s Status) table.FilterOption[LeaveRequest] {
	return table.FilterOption[LeaveRequest]{Text: text, Value: string(s), Match: func(l LeaveRequest) bool { return l.Status == s }}
}

func pending(l LeaveRequest) bool    { return l.IsPending() }
func notPending(l LeaveRequest) bool { return !l.IsPending() }

// Table is the leave list presentation. Pending rows expose approve and
// reject in place of the edit/export/delete menu the other rows get; the
// update endpoint itself accepts any status.
var Table = table.MustNew(table.Config[LeaveRequest]{
	RowKey: func(l LeaveRequest) string { return l.ID },
	Noun:   "leaves",
	Columns: []table.Column[LeaveRequest]{
		{
			Key: "id", Title: "Leave ID", Width: 120, Fixed: "left",
			Sorter: func(a, b LeaveRequest) int { return strings.Compare(a.ID, b.ID) },
			Render: func(l LeaveRequest) any { return l.ID },
		},
		{
			Key: "user", Title: "User", Width: 200,
			Sorter: func(a, b LeaveRequest) int { return strings.Compare(a.UserName, b.UserName) },
			Render: func(l LeaveRequest) any { return table.Person{Name: l.UserName, Email: l.UserEmail} },
		},
		{
			Key: "leaveType", Title: "Leave Type", Width: 120,
			Filters: []table.FilterOption[LeaveRequest]{
				typeOption(TypeVacation),
				typeOption(TypeSick),
				typeOption(TypePersonal),
				typeOption(TypeBirthday),
				typeOption(TypeOther),
			},
			Render: func(l LeaveRequest) any { return table.Tag{Text: TypeLabel(l.LeaveType), Color: TypeColor(l.LeaveType)} },
		},
		{
			Key: "dateRange", Title: "Date Range", Width: 200,
			Sorter: func(a, b LeaveRequest) int { return a.StartDate.Compare(b.StartDate) },
			Render: func(l LeaveRequest) any {
				return DateRangeCell{
					Label: l.StartDate.Format("Jan 02") + " - " + l.EndDate.Format("Jan 02"),
					Year:  l.EndDate.Format("2006"),
				}
			},
		},
		{
			Key: "totalDays", Title: "Duration", Width: 100,
			Sorter: func(a, b LeaveRequest) int { return cmp.Compare(a.TotalDays, b.TotalDays) },
			Render: func(l LeaveRequest) any { return table.Pluralize(float64(l.TotalDays), "day") },
		},
		{
			Key: "status", Title: "Status", Width: 120,
			Filters: []table.FilterOption[LeaveRequest]{
				statusOption("Pending", StatusPending),
				statusOption("Approved", StatusApproved),
				statusOption("Rejected", StatusRejected),
				statusOption("Cancelled", StatusCancelled),
			},
			Render: func(l LeaveRequest) any {
				return table.Tag{Text: strings.ToUpper(string(l.Status)), Color: StatusColor(l.Status)}
			},
		},
		{
			Key: "reason", Title: "Reason", Width: 200,
			Render: func(l LeaveRequest) any { return l.Reason },
		},
		{
			Key: "submittedDate", Title: "Submitted", Width: 180,
			Sorter: func(a, b LeaveRequest) int { return a.SubmittedDate.Compare(b.SubmittedDate) },
			Render: func(l LeaveRequest) any { return table.Date(l.SubmittedDate, "Jan 02, 2006 15:04") },
		},
	},
	Actions: []table.RowAction[LeaveRequest]{
		{Kind: "view", Label: "View Details"},
		{Kind: string(ActionApprove), Label: "Approve", Visible: pending},
		{Kind: string(ActionReject), Label: "Reject", Danger: true, Visible: pending},
		{Kind: "edit", Label: "Edit Leave", Visible: notPending},
		{Kind: "export", Label: "Export Details", Visible: notPending},
		{Kind: string(ActionDelete), Label: "Delete Leave", Danger: true, Visible: notPending},
	},
})

// BuildCalendar lists, for every day of month, the leaves covering it.
func BuildCalendar(month time.Time, leaves []LeaveRequest) CalendarResponse {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	resp := CalendarResponse{Month: first.Format("2006-01")}

	for day := first; day.Month() == first.Month(); day = day.AddDate(0, 0, 1) {
		cd := CalendarDay{Date: day.Format("2006-01-02"), Events: []CalendarEvent{}}
		for _, l := range leaves {
			if !l.Covers(day) {
				continue
			}
			cd.Events = append(cd.Events, CalendarEvent{
				ID:        l.ID,
				UserName:  l.UserName,
				LeaveType: l.LeaveType,
				Label:     l.UserName + " - " + TypeLabel(l.LeaveType),
				Status:    l.Status,
			})
		}
		resp.Days = append(resp.Days, cd)
	}
	return resp
}
