package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/fixtures"
	"github.com/cmlabs-hris/hris-admin-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboard(t *testing.T) {
	svc := NewDashboardService(
		memory.NewUserRepository(fixtures.Users()),
		memory.NewTimesheetRepository(fixtures.Timesheets()),
		memory.NewLeaveRequestRepository(fixtures.LeaveRequests()),
	).(*DashboardServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC) }

	d, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)

	s := d.Stats
	assert.Equal(t, 5, s.TotalUsers)
	assert.Equal(t, 3, s.ActiveUsers)
	assert.Equal(t, "80", s.TotalHours.String())
	assert.Equal(t, 1, s.PendingTimesheets)
	assert.Equal(t, 1, s.ApprovedTimesheets)
	assert.Equal(t, 3, s.PendingLeaves)
	assert.Equal(t, "97.5", s.AverageCompliance.String())
	assert.Equal(t, "2", s.OvertimeHours.String())

	require.Len(t, d.PendingApprovals, 1)
	assert.Equal(t, "TS-002", d.PendingApprovals[0].Timesheet.ID)

	// same week, so more hours first
	require.Len(t, d.RecentTimesheets, 2)
	assert.Equal(t, "TS-001", d.RecentTimesheets[0].ID)

	require.Len(t, d.RecentLeaves, RecentLimit)
	ids := make([]string, len(d.RecentLeaves))
	for i, l := range d.RecentLeaves {
		ids[i] = l.ID
	}
	assert.Equal(t, []string{"LV-006", "LV-005", "LV-007", "LV-004", "LV-008"}, ids)

	require.Len(t, d.RecentActivity, 10)
	feed := make([]string, len(d.RecentActivity))
	for i, a := range d.RecentActivity {
		feed[i] = a.ID
	}
	assert.Equal(t, []string{
		"LV-006-pending", "LV-007-approved", "LV-005-pending", "LV-004-rejected", "LV-002-pending",
		"LV-003-approved", "TS-001-approved", "TS-002-submitted", "TS-001-submitted", "LV-001-approved",
	}, feed)
	assert.Equal(t, "Review", d.RecentActivity[7].Action)
	assert.Empty(t, d.RecentActivity[8].Action)

	assert.Equal(t, 8, d.LeaveStats.Total)
	assert.Equal(t, "2024-02-01T12:00:00Z", d.UpdatedAt)
}
