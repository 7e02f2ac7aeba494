package dashboard

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// RecentLimit caps the recent timesheet and leave lists.
const RecentLimit = 5

type DashboardServiceImpl struct {
	users      user.UserRepository
	timesheets timesheet.TimesheetRepository
	leaves     leave.LeaveRequestRepository
	now        func() time.Time
}

func NewDashboardService(userRepo user.UserRepository, timesheetRepo timesheet.TimesheetRepository, leaveRepo leave.LeaveRequestRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		users:      userRepo,
		timesheets: timesheetRepo,
		leaves:     leaveRepo,
		now:        time.Now,
	}
}

// GetDashboard returns combined dashboard data, loading the three
// collections in parallel
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context) (*dashboard.DashboardResponse, error) {
	var (
		users    []user.User
		sheets   []timesheet.Timesheet
		requests []leave.LeaveRequest
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		if users, err = s.users.List(gCtx); err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		if sheets, err = s.timesheets.List(gCtx); err != nil {
			return fmt.Errorf("failed to list timesheets: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		if requests, err = s.leaves.List(gCtx); err != nil {
			return fmt.Errorf("failed to list leave requests: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dashboard.DashboardResponse{
		Stats:            buildStats(users, sheets, requests),
		PendingApprovals: pendingApprovals(sheets),
		RecentTimesheets: recentTimesheets(sheets),
		RecentLeaves:     recentLeaves(requests),
		LeaveStats:       leave.NewStats(requests),
		RecentActivity:   dashboard.BuildActivity(users, sheets, requests, dashboard.ActivityLimit),
		UpdatedAt:        s.now().Format(time.RFC3339),
	}, nil
}

func buildStats(users []user.User, sheets []timesheet.Timesheet, requests []leave.LeaveRequest) dashboard.Stats {
	stats := dashboard.Stats{
		TotalHours:        decimal.Zero,
		TotalUsers:        len(users),
		AverageCompliance: decimal.Zero,
		OvertimeHours:     decimal.Zero,
	}

	for _, u := range users {
		if u.Status == user.StatusActive {
			stats.ActiveUsers++
		}
	}

	compliance := decimal.Zero
	for _, t := range sheets {
		stats.TotalHours = stats.TotalHours.Add(decimal.NewFromFloat(t.TotalHours))
		stats.OvertimeHours = stats.OvertimeHours.Add(t.Overtime())
		compliance = compliance.Add(t.Compliance())
		switch t.Status {
		case timesheet.StatusSubmitted:
			stats.PendingTimesheets++
		case timesheet.StatusApproved:
			stats.ApprovedTimesheets++
		}
	}
	if len(sheets) > 0 {
		stats.AverageCompliance = compliance.Div(decimal.NewFromInt(int64(len(sheets)))).Round(1)
	}

	for _, l := range requests {
		if l.IsPending() {
			stats.PendingLeaves++
		}
	}
	return stats
}

func pendingApprovals(sheets []timesheet.Timesheet) []timesheet.PendingApproval {
	out := []timesheet.PendingApproval{}
	for _, t := range sheets {
		if t.Status == timesheet.StatusSubmitted {
			out = append(out, timesheet.NewPendingApproval(t))
		}
	}
	return out
}

// recentTimesheets orders by week start, newest first.
func recentTimesheets(sheets []timesheet.Timesheet) []timesheet.Timesheet {
	out := slices.Clone(sheets)
	slices.SortStableFunc(out, func(a, b timesheet.Timesheet) int {
		if c := b.WeekStart.Compare(a.WeekStart); c != 0 {
			return c
		}
		return cmp.Compare(b.TotalHours, a.TotalHours)
	})
	if len(out) > RecentLimit {
		out = out[:RecentLimit]
	}
	return out
}

// recentLeaves orders by submission, newest first.
func recentLeaves(requests []leave.LeaveRequest) []leave.LeaveRequest {
	out := slices.Clone(requests)
	slices.SortStableFunc(out, func(a, b leave.LeaveRequest) int {
		return b.SubmittedDate.Compare(a.SubmittedDate)
	})
	if len(out) > RecentLimit {
		out = out[:RecentLimit]
	}
	return out
}
