package leave_test

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-admin-go/internal/fixtures"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/filter"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/query"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, _ := validator.IsValidDate(s)
	return d
}

func ids(items []leave.LeaveRequest) []string {
	out := make([]string, len(items))
	for i, l := range items {
		out[i] = l.ID
	}
	return out
}

func TestTotalDays(t *testing.T) {
	tests := []struct {
		start, end string
		want       int
	}{
		{"2024-01-25", "2024-01-25", 1},
		{"2024-01-15", "2024-01-19", 5},
		{"2024-01-31", "2024-02-02", 3},
		{"2024-02-02", "2024-01-31", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, leave.TotalDays(day(tt.start), day(tt.end)), "%s..%s", tt.start, tt.end)
	}

	// time of day does not matter
	assert.Equal(t, 2, leave.TotalDays(day("2024-01-22").Add(17*time.Hour), day("2024-01-23").Add(time.Hour)))
}

func TestNext(t *testing.T) {
	tests := []struct {
		from    leave.Status
		action  leave.Action
		want    leave.Status
		wantErr error
	}{
		{leave.StatusPending, leave.ActionApprove, leave.StatusApproved, nil},
		{leave.StatusPending, leave.ActionReject, leave.StatusRejected, nil},
		{leave.StatusPending, leave.ActionCancel, leave.StatusCancelled, nil},
		{leave.StatusApproved, leave.ActionDelete, leave.StatusApproved, nil},
		{leave.StatusApproved, leave.ActionReject, "", leave.ErrLeaveRequestAlreadyProcessed},
		{leave.StatusCancelled, leave.ActionApprove, "", leave.ErrLeaveRequestAlreadyProcessed},
		{leave.StatusPending, "archive", "", leave.ErrUnknownAction},
	}
	for _, tt := range tests {
		got, err := leave.Next(tt.from, tt.action)
		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, "%s -> %s", tt.from, tt.action)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestSchema_Criteria(t *testing.T) {
	all := fixtures.LeaveRequests()

	tests := []struct {
		name string
		f    leave.ListFilter
		want []string
	}{
		{
			name: "status",
			f:    leave.ListFilter{Status: "pending"},
			want: []string{"LV-002", "LV-005", "LV-006"},
		},
		{
			name: "all is no constraint",
			f:    leave.ListFilter{Status: filter.All, LeaveType: filter.All},
			want: ids(all),
		},
		{
			name: "search matches name and reason",
			f:    leave.ListFilter{List: query.List{Search: "JANE"}},
			want: []string{"LV-002", "LV-007"},
		},
		{
			name: "date range overlaps",
			f:    leave.ListFilter{List: query.List{StartDate: "2024-02-01", EndDate: "2024-02-10"}},
			want: []string{"LV-004", "LV-005", "LV-006"},
		},
		{
			name: "combined",
			f: leave.ListFilter{
				List:      query.List{StartDate: "2024-01-01", EndDate: "2024-01-31"},
				LeaveType: "sick",
			},
			want: []string{"LV-002"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(filter.Apply(all, leave.Schema, tt.f.Criteria())))
		})
	}
}

func TestNewStats(t *testing.T) {
	s := leave.NewStats(fixtures.LeaveRequests())
	assert.Equal(t, leave.Stats{Total: 8, Pending: 3, Approved: 3, Rejected: 1, Cancelled: 1}, s)
}

func TestBuildCalendar(t *testing.T) {
	cal := leave.BuildCalendar(day("2024-01-01"), fixtures.LeaveRequests())

	assert.Equal(t, "2024-01", cal.Month)
	require.Len(t, cal.Days, 31)

	jan15 := cal.Days[14]
	assert.Equal(t, "2024-01-15", jan15.Date)
	require.Len(t, jan15.Events, 1)
	assert.Equal(t, "John Doe - Vacation", jan15.Events[0].Label)

	jan25 := cal.Days[24]
	require.Len(t, jan25.Events, 1)
	assert.Equal(t, "LV-003", jan25.Events[0].ID)

	assert.Empty(t, cal.Days[0].Events)
}

func TestCreateLeaveRequest_Validate(t *testing.T) {
	req := leave.CreateLeaveRequest{
		UserID:    "USR-002",
		LeaveType: "sabbatical",
		StartDate: "2024-02-10",
		EndDate:   "2024-02-01",
	}

	err := req.Validate()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	fields := map[string]string{}
	for _, e := range verrs {
		fields[e.Field] = e.Message
	}
	assert.Contains(t, fields, "leave_type")
	assert.Contains(t, fields, "reason")
	assert.Equal(t, leave.ErrInvalidDateRange.Error(), fields["end_date"])
}

func TestUpdateLeaveRequest_ApplyRecomputesDays(t *testing.T) {
	l := fixtures.LeaveRequests()[1]
	start, end := "2024-01-22", "2024-01-26"
	req := leave.UpdateLeaveRequest{ID: l.ID, StartDate: &start, EndDate: &end}
	require.NoError(t, req.Validate())

	req.Apply(&l)
	assert.Equal(t, 5, l.TotalDays)
	assert.Equal(t, "Medical appointment", l.Reason)
}

func TestUpdateLeaveRequest_DatesTogether(t *testing.T) {
	start := "2024-01-22"
	req := leave.UpdateLeaveRequest{ID: "LV-002", StartDate: &start}
	assert.Error(t, req.Validate())
}
