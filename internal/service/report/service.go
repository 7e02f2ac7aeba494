package report

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/filter"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	users      user.UserRepository
	timesheets timesheet.TimesheetRepository
	now        func() time.Time
}

func NewReportService(userRepo user.UserRepository, timesheetRepo timesheet.TimesheetRepository) report.ReportService {
	return &ReportServiceImpl{
		users:      userRepo,
		timesheets: timesheetRepo,
		now:        time.Now,
	}
}

func (s *ReportServiceImpl) load(ctx context.Context) ([]user.User, []timesheet.Timesheet, error) {
	var (
		users  []user.User
		sheets []timesheet.Timesheet
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.users.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		sheets, err = s.timesheets.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list timesheets: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return users, sheets, nil
}

// Generate builds the report for one filter state.
func (s *ReportServiceImpl) Generate(ctx context.Context, f report.Filter) (report.Report, error) {
	if err := f.Validate(); err != nil {
		return report.Report{}, err
	}

	users, sheets, err := s.load(ctx)
	if err != nil {
		return report.Report{}, err
	}

	rows := report.BuildRows(users, sheets, f)
	view, err := report.Table.Render(rows, f.Table())
	if err != nil {
		return report.Report{}, err
	}

	included := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		included[r.UserID] = struct{}{}
	}
	var weekly []timesheet.Timesheet
	for _, t := range filter.Apply(sheets, timesheet.Schema, filter.Criteria{Range: f.Range()}) {
		if _, ok := included[t.UserID]; ok {
			weekly = append(weekly, t)
		}
	}

	return report.Report{
		PeriodStart: f.StartDate,
		PeriodEnd:   f.EndDate,
		GeneratedAt: s.now(),
		Summary:     report.Summarize(rows),
		Table:       view,
		Departments: report.Departments(rows),
		Weekly:      report.Weekly(weekly),
	}, nil
}

// Rows returns every sorted row, for export.
func (s *ReportServiceImpl) Rows(ctx context.Context, f report.Filter) ([]report.UserRow, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	users, sheets, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	rows := report.BuildRows(users, sheets, f)
	_, all, _, err := report.Table.Prepare(rows, f.Table())
	if err != nil {
		return nil, err
	}
	return all, nil
}
