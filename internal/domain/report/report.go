package report

import (
	"cmp"
	"slices"
	"strings"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/filter"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/table"
	"github.com/shopspring/decimal"
)

// BuildRows aggregates the timesheets overlapping the filter's period into
// one row per matching user. Users without timesheets get a zero row.
func BuildRows(users []user.User, sheets []timesheet.Timesheet, f Filter) []UserRow {
	inPeriod := filter.Apply(sheets, timesheet.Schema, filter.Criteria{Range: f.Range()})

	byUser := make(map[string][]timesheet.Timesheet)
	for _, t := range inPeriod {
		byUser[t.UserID] = append(byUser[t.UserID], t)
	}

	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		if u.IsDeleted() {
			continue
		}
		if !filter.MatchCategory(u.Department, f.Department) || !filter.MatchCategory(string(u.Role), f.Role) {
			continue
		}
		if !filter.MatchText(u, []func(user.User) string{
			func(u user.User) string { return u.Name },
			func(u user.User) string { return u.Email },
		}, f.Search) {
			continue
		}
		rows = append(rows, buildRow(u, byUser[u.ID]))
	}
	return rows
}

func buildRow(u user.User, sheets []timesheet.Timesheet) UserRow {
	row := UserRow{
		UserID:       u.ID,
		UserName:     u.Name,
		UserEmail:    u.Email,
		Department:   u.Department,
		Role:         u.Role,
		Timesheets:   len(sheets),
		TotalHours:   decimal.Zero,
		TargetHours:  decimal.Zero,
		Overtime:     decimal.Zero,
		LeaveHours:   decimal.Zero,
		MeetingHours: decimal.Zero,
		Compliance:   decimal.Zero,
		Projects:     []string{},
	}

	projects := make(map[string]struct{})
	for _, t := range sheets {
		row.TotalHours = row.TotalHours.Add(decimal.NewFromFloat(t.TotalHours))
		row.TargetHours = row.TargetHours.Add(decimal.NewFromFloat(t.Target()))
		row.Overtime = row.Overtime.Add(t.Overtime())

		byType := t.HoursByType()
		row.LeaveHours = row.LeaveHours.Add(byType[timesheet.EntryLeave])
		row.MeetingHours = row.MeetingHours.Add(byType[timesheet.EntryMeeting])

		if t.Project != nil {
			projects[*t.Project] = struct{}{}
		}
		for _, e := range t.Entries {
			if e.Project != nil {
				projects[*e.Project] = struct{}{}
			}
		}
	}

	if len(sheets) > 0 {
		row.Compliance = timesheet.Compliance(row.TotalHours, row.TargetHours)
	}
	for p := range projects {
		row.Projects = append(row.Projects, p)
	}
	slices.Sort(row.Projects)
	return row
}

// Summarize totals the rows. Average compliance only counts users that
// logged at least one timesheet.
func Summarize(rows []UserRow) Summary {
	s := Summary{
		Users:             len(rows),
		TotalHours:        decimal.Zero,
		OvertimeHours:     decimal.Zero,
		LeaveHours:        decimal.Zero,
		AverageCompliance: decimal.Zero,
	}

	var compliance []decimal.Decimal
	for _, r := range rows {
		s.Timesheets += r.Timesheets
		s.TotalHours = s.TotalHours.Add(r.TotalHours)
		s.OvertimeHours = s.OvertimeHours.Add(r.Overtime)
		s.LeaveHours = s.LeaveHours.Add(r.LeaveHours)
		if r.Timesheets > 0 {
			compliance = append(compliance, r.Compliance)
		}
	}
	s.AverageCompliance = average(compliance)
	return s
}

// Departments groups rows by department, sorted by name.
func Departments(rows []UserRow) []DepartmentRow {
	type acc struct {
		users      int
		hours      decimal.Decimal
		compliance []decimal.Decimal
	}
	groups := make(map[string]*acc)
	for _, r := range rows {
		g, ok := groups[r.Department]
		if !ok {
			g = &acc{hours: decimal.Zero}
			groups[r.Department] = g
		}
		g.users++
		g.hours = g.hours.Add(r.TotalHours)
		if r.Timesheets > 0 {
			g.compliance = append(g.compliance, r.Compliance)
		}
	}

	out := make([]DepartmentRow, 0, len(groups))
	for name, g := range groups {
		out = append(out, DepartmentRow{
			Department:        name,
			Users:             g.users,
			TotalHours:        g.hours,
			AverageCompliance: average(g.compliance),
		})
	}
	slices.SortFunc(out, func(a, b DepartmentRow) int { return strings.Compare(a.Department, b.Department) })
	return out
}

// Weekly buckets timesheets by week start, oldest first.
func Weekly(sheets []timesheet.Timesheet) []WeeklyPoint {
	points := make(map[string]*WeeklyPoint)
	for _, t := range sheets {
		key := t.WeekStart.Format("2006-01-02")
		p, ok := points[key]
		if !ok {
			p = &WeeklyPoint{WeekStart: key, TotalHours: decimal.Zero, TargetHours: decimal.Zero}
			points[key] = p
		}
		p.Timesheets++
		p.TotalHours = p.TotalHours.Add(decimal.NewFromFloat(t.TotalHours))
		p.TargetHours = p.TargetHours.Add(decimal.NewFromFloat(t.Target()))
	}

	out := make([]WeeklyPoint, 0, len(points))
	for _, p := range points {
		out = append(out, *p)
	}
	slices.SortFunc(out, func(a, b WeeklyPoint) int { return strings.Compare(a.WeekStart, b.WeekStart) })
	return out
}

func average(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(values[0], values[1:]...).
		Div(decimal.NewFromInt(int64(len(values)))).
		Round(1)
}

func hoursCell(d decimal.Decimal) string {
	f, _ := d.Float64()
	return table.Pluralize(f, "hour")
}

// Table is the per-user report presentation.
var Table = table.MustNew(table.Config[UserRow]{
	RowKey: func(r UserRow) string { return r.UserID },
	Noun:   "users",
	Columns: []table.Column[UserRow]{
		{
			Key: "user", Title: "User", Width: 200, Fixed: "left",
			Sorter: func(a, b UserRow) int { return strings.Compare(a.UserName, b.UserName) },
			Render: func(r UserRow) any { return table.Person{Name: r.UserName, Email: r.UserEmail} },
		},
		{
			Key: "department", Title: "Department", Width: 140,
			Sorter: func(a, b UserRow) int { return strings.Compare(a.Department, b.Department) },
			Render: func(r UserRow) any { return r.Department },
		},
		{
			Key: "role", Title: "Role", Width: 120,
			Filters: roleOptions(),
			Render: func(r UserRow) any {
				return table.Tag{Text: strings.ToUpper(string(r.Role)), Color: user.RoleColor(r.Role)}
			},
		},
		{
			Key: "totalHours", Title: "Total Hours", Width: 120,
			Sorter: func(a, b UserRow) int { return a.TotalHours.Cmp(b.TotalHours) },
			Render: func(r UserRow) any { return hoursCell(r.TotalHours) },
		},
		{
			Key: "overtime", Title: "Overtime", Width: 110,
			Sorter: func(a, b UserRow) int { return a.Overtime.Cmp(b.Overtime) },
			Render: func(r UserRow) any { return hoursCell(r.Overtime) },
		},
		{
			Key: "leaveHours", Title: "Leave", Width: 100,
			Sorter: func(a, b UserRow) int { return a.LeaveHours.Cmp(b.LeaveHours) },
			Render: func(r UserRow) any { return hoursCell(r.LeaveHours) },
		},
		{
			Key: "meetingHours", Title: "Meetings", Width: 100,
			Sorter: func(a, b UserRow) int { return a.MeetingHours.Cmp(b.MeetingHours) },
			Render: func(r UserRow) any { return hoursCell(r.MeetingHours) },
		},
		{
			Key: "compliance", Title: "Compliance", Width: 160,
			Sorter: func(a, b UserRow) int { return a.Compliance.Cmp(b.Compliance) },
			Render: func(r UserRow) any {
				pct, _ := r.Compliance.Float64()
				return table.Progress{
					Percent: pct,
					Label:   r.Compliance.String() + "%",
					Color:   timesheet.ComplianceColor(r.Compliance),
				}
			},
		},
		{
			Key: "projects", Title: "Projects", Width: 100,
			Sorter: func(a, b UserRow) int { return cmp.Compare(len(a.Projects), len(b.Projects)) },
			Render: func(r UserRow) any { return table.Badge{Count: len(r.Projects)} },
		},
	},
})

func roleOptions() []table.FilterOption[UserRow] {
	out := make([]table.FilterOption[UserRow], 0, len(user.Roles))
	for _, role := range user.Roles {
		out = append(out, table.FilterOption[UserRow]{
			Text:  strings.ToUpper(string(role[:1])) + string(role[1:]),
			Value: string(role),
			Match: func(r UserRow) bool { return r.Role == role },
		})
	}
	return out
}
