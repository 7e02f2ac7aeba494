package report_test

import (
	"testing"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-admin-go/internal/fixtures"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/query"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(i int64) decimal.Decimal { return decimal.NewFromInt(i) }

func rowsByID(rows []report.UserRow) map[string]report.UserRow {
	out := make(map[string]report.UserRow, len(rows))
	for _, r := range rows {
		out[r.UserID] = r
	}
	return out
}

func TestBuildRows(t *testing.T) {
	rows := report.BuildRows(fixtures.Users(), fixtures.Timesheets(), report.Filter{})
	require.Len(t, rows, 5)

	byID := rowsByID(rows)

	john := byID["USR-001"]
	assert.Equal(t, 1, john.Timesheets)
	assert.True(t, john.TotalHours.Equal(dec(42)))
	assert.True(t, john.Overtime.Equal(dec(2)))
	assert.True(t, john.MeetingHours.Equal(dec(8)))
	assert.True(t, john.Compliance.Equal(dec(100)))
	assert.Equal(t, []string{"Project Alpha"}, john.Projects)

	jane := byID["USR-002"]
	assert.True(t, jane.LeaveHours.Equal(dec(8)))
	assert.True(t, jane.Compliance.Equal(dec(95)))

	// users without timesheets still get a row
	bob := byID["USR-003"]
	assert.Zero(t, bob.Timesheets)
	assert.True(t, bob.TotalHours.IsZero())
	assert.Empty(t, bob.Projects)
}

func TestBuildRows_Filters(t *testing.T) {
	users, sheets := fixtures.Users(), fixtures.Timesheets()

	rows := report.BuildRows(users, sheets, report.Filter{Department: "marketing"})
	require.Len(t, rows, 1)
	assert.Equal(t, "USR-002", rows[0].UserID)

	rows = report.BuildRows(users, sheets, report.Filter{List: query.List{Search: "charlie@"}})
	require.Len(t, rows, 1)
	assert.Equal(t, "USR-005", rows[0].UserID)

	// a period without timesheets keeps the users but zeroes their hours
	rows = report.BuildRows(users, sheets, report.Filter{List: query.List{StartDate: "2024-03-01", EndDate: "2024-03-31"}})
	require.Len(t, rows, 5)
	for _, r := range rows {
		assert.Zero(t, r.Timesheets, r.UserID)
	}
}

func TestSummarize(t *testing.T) {
	s := report.Summarize(report.BuildRows(fixtures.Users(), fixtures.Timesheets(), report.Filter{}))

	assert.Equal(t, 5, s.Users)
	assert.Equal(t, 2, s.Timesheets)
	assert.True(t, s.TotalHours.Equal(dec(80)))
	assert.True(t, s.OvertimeHours.Equal(dec(2)))
	assert.True(t, s.LeaveHours.Equal(dec(8)))
	// only users with timesheets count towards the average
	assert.True(t, s.AverageCompliance.Equal(decimal.RequireFromString("97.5")), s.AverageCompliance.String())
}

func TestDepartments(t *testing.T) {
	deps := report.Departments(report.BuildRows(fixtures.Users(), fixtures.Timesheets(), report.Filter{}))

	names := make([]string, len(deps))
	for i, d := range deps {
		names[i] = d.Department
	}
	assert.Equal(t, []string{"engineering", "finance", "hr", "marketing", "sales"}, names)
	assert.True(t, deps[0].AverageCompliance.Equal(dec(100)))
	assert.True(t, deps[1].AverageCompliance.IsZero())
}

func TestWeekly(t *testing.T) {
	points := report.Weekly(fixtures.Timesheets())
	require.Len(t, points, 1)
	assert.Equal(t, "2024-01-08", points[0].WeekStart)
	assert.Equal(t, 2, points[0].Timesheets)
	assert.True(t, points[0].TotalHours.Equal(dec(80)))
	assert.True(t, points[0].TargetHours.Equal(dec(80)))
}

func TestFilter_Validate(t *testing.T) {
	f := report.Filter{Role: "owner"}
	assert.Error(t, f.Validate())

	f = report.Filter{Role: "all"}
	assert.NoError(t, f.Validate())
}
