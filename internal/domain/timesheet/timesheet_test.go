package timesheet_test

import (
	"testing"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-admin-go/internal/fixtures"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/filter"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	tests := []struct {
		from    timesheet.Status
		action  timesheet.Action
		want    timesheet.Status
		wantErr error
	}{
		{timesheet.StatusDraft, timesheet.ActionSubmit, timesheet.StatusSubmitted, nil},
		{timesheet.StatusSubmitted, timesheet.ActionApprove, timesheet.StatusApproved, nil},
		{timesheet.StatusSubmitted, timesheet.ActionReject, timesheet.StatusRejected, nil},
		{timesheet.StatusRejected, timesheet.ActionResubmit, timesheet.StatusDraft, nil},
		{timesheet.StatusApproved, timesheet.ActionDelete, timesheet.StatusApproved, nil},
		{timesheet.StatusApproved, timesheet.ActionApprove, "", timesheet.ErrInvalidTransition},
		{timesheet.StatusDraft, timesheet.ActionReject, "", timesheet.ErrInvalidTransition},
		{timesheet.StatusSubmitted, timesheet.ActionResubmit, "", timesheet.ErrInvalidTransition},
		{timesheet.StatusDraft, "archive", "", timesheet.ErrUnknownAction},
	}
	for _, tt := range tests {
		got, err := timesheet.Next(tt.from, tt.action)
		if tt.wantErr != nil {
			assert.ErrorIs(t, err, tt.wantErr, "%s -> %s", tt.from, tt.action)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestCompliance(t *testing.T) {
	sheets := fixtures.Timesheets()
	over, under := sheets[0], sheets[1]

	// 42 of 40 hours caps at 100
	assert.True(t, over.Compliance().Equal(decimal.NewFromInt(100)))
	assert.True(t, over.Overtime().Equal(decimal.NewFromInt(2)))
	assert.True(t, over.Shortage().IsZero())

	assert.True(t, under.Compliance().Equal(decimal.NewFromInt(95)))
	assert.True(t, under.Shortage().Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "blue", timesheet.ComplianceColor(under.Compliance()))

	assert.Equal(t, "green", timesheet.ComplianceColor(decimal.NewFromInt(100)))
	assert.Equal(t, "orange", timesheet.ComplianceColor(decimal.NewFromInt(80)))
	assert.Equal(t, "red", timesheet.ComplianceColor(decimal.NewFromInt(50)))
}

func TestCompliance_ZeroTargetUsesDefault(t *testing.T) {
	c := timesheet.Compliance(decimal.NewFromInt(20), decimal.Zero)
	assert.True(t, c.Equal(decimal.NewFromInt(50)), c.String())
}

func TestHoursByType(t *testing.T) {
	byType := fixtures.Timesheets()[1].HoursByType()
	assert.True(t, byType[timesheet.EntryLeave].Equal(decimal.NewFromInt(8)))
	assert.True(t, byType[timesheet.EntryMeeting].Equal(decimal.NewFromInt(7)))
	assert.True(t, byType[timesheet.EntryWork].Equal(decimal.NewFromInt(23)))
}

func TestSchema_PendingTab(t *testing.T) {
	f := timesheet.ListFilter{Tab: "pending"}
	got := filter.Apply(fixtures.Timesheets(), timesheet.Schema, f.Criteria())
	require.Len(t, got, 1)
	assert.Equal(t, "TS-002", got[0].ID)

	assert.Equal(t, "pending", timesheet.TabOf(timesheet.StatusSubmitted))
	assert.Equal(t, "draft", timesheet.TabOf(timesheet.StatusDraft))
}

func TestNewStats(t *testing.T) {
	s := timesheet.NewStats(fixtures.Timesheets())
	assert.Equal(t, timesheet.Stats{Total: 2, Pending: 1, Approved: 1}, s)
}

func TestCreateTimesheetRequest_Validate(t *testing.T) {
	req := timesheet.CreateTimesheetRequest{
		UserID:    "USR-003",
		WeekStart: "2024-01-15",
		WeekEnd:   "2024-01-19",
		Entries: []timesheet.CreateEntryRequest{
			{Date: "2024-01-15", Hours: 8, Type: "work"},
			{Date: "15/01/2024", Hours: 0, Type: "nap"},
		},
	}

	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entries[1].date")
	assert.Contains(t, err.Error(), "entries[1].hours")
	assert.Contains(t, err.Error(), "entries[1].type")
	assert.NotContains(t, err.Error(), "entries[0]")
}

func TestTransitionRequest_RejectNeedsReason(t *testing.T) {
	req := timesheet.TransitionRequest{ID: "TS-002", Action: timesheet.ActionReject}
	assert.Error(t, req.Validate())

	req.Reason = "Missing Friday"
	assert.NoError(t, req.Validate())
}
