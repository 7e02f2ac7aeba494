package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/export"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/table"
	"github.com/google/uuid"
)

const (
	dateLayout = "2006-01-02"
	urlExpiry  = time.Hour
)

type ExportServiceImpl struct {
	users      user.UserService
	timesheets timesheet.TimesheetService
	leaves     leave.LeaveService
	reports    report.ReportService
	storage    storage.FileStorage
	now        func() time.Time
}

func NewExportService(
	users user.UserService,
	timesheets timesheet.TimesheetService,
	leaves leave.LeaveService,
	reports report.ReportService,
	fileStorage storage.FileStorage,
) export.ExportService {
	return &ExportServiceImpl{
		users:      users,
		timesheets: timesheets,
		leaves:     leaves,
		reports:    reports,
		storage:    fileStorage,
		now:        time.Now,
	}
}

// Users implements export.ExportService.
func (s *ExportServiceImpl) Users(ctx context.Context, f user.ListFilter) (export.File, error) {
	users, err := s.users.Filtered(ctx, f)
	if err != nil {
		return export.File{}, err
	}

	rows := make([][]any, 0, len(users))
	for _, u := range users {
		rows = append(rows, []any{
			u.ID, u.Name, u.Email, string(u.Role), u.Department, string(u.Status),
			u.HoursThisWeek, table.DatePtr(u.LastLogin, "2006-01-02 15:04"),
		})
	}

	return s.store(ctx, "users", sheet{
		name: "Users",
		columns: []column{
			{"ID", 12}, {"Name", 24}, {"Email", 28}, {"Role", 12},
			{"Department", 16}, {"Status", 12}, {"Hours This Week", 16}, {"Last Login", 18},
		},
		rows: rows,
	})
}

// Timesheets implements export.ExportService.
func (s *ExportServiceImpl) Timesheets(ctx context.Context, f timesheet.ListFilter) (export.File, error) {
	sheets, err := s.timesheets.Filtered(ctx, f)
	if err != nil {
		return export.File{}, err
	}

	summary := make([][]any, 0, len(sheets))
	var entries [][]any
	for _, t := range sheets {
		summary = append(summary, []any{
			t.ID, t.UserName, t.UserEmail,
			t.WeekStart.Format(dateLayout), t.WeekEnd.Format(dateLayout),
			t.TotalHours, t.Target(), t.Compliance().InexactFloat64(),
			deref(t.Project), deref(t.Department), string(t.Status),
			table.DatePtr(t.SubmittedDate, dateLayout), deref(t.ApprovedBy), deref(t.RejectionReason),
		})
		for _, e := range t.Entries {
			entries = append(entries, []any{
				t.ID, t.UserName, e.Date.Format(dateLayout), e.Hours, string(e.Type),
				deref(e.Project), e.Description, string(e.Status),
			})
		}
	}

	return s.store(ctx, "timesheets",
		sheet{
			name: "Timesheets",
			columns: []column{
				{"ID", 10}, {"User", 22}, {"Email", 26}, {"Week Start", 12}, {"Week End", 12},
				{"Total Hours", 12}, {"Target Hours", 12}, {"Compliance %", 13},
				{"Project", 20}, {"Department", 16}, {"Status", 12},
				{"Submitted", 12}, {"Approved By", 18}, {"Rejection Reason", 30},
			},
			rows: summary,
		},
		sheet{
			name: "Entries",
			columns: []column{
				{"Timesheet", 10}, {"User", 22}, {"Date", 12}, {"Hours", 8}, {"Type", 10},
				{"Project", 20}, {"Description", 40}, {"Status", 10},
			},
			rows: entries,
		},
	)
}

// Leaves implements export.ExportService.
func (s *ExportServiceImpl) Leaves(ctx context.Context, f leave.ListFilter) (export.File, error) {
	leaves, err := s.leaves.Filtered(ctx, f)
	if err != nil {
		return export.File{}, err
	}

	rows := make([][]any, 0, len(leaves))
	for _, l := range leaves {
		rows = append(rows, []any{
			l.ID, l.UserName, l.UserEmail, leave.TypeLabel(l.LeaveType),
			l.StartDate.Format(dateLayout), l.EndDate.Format(dateLayout), l.TotalDays,
			string(l.Status), l.SubmittedDate.Format(dateLayout), l.Reason,
			deref(l.ApprovedBy), deref(l.Notes),
		})
	}

	return s.store(ctx, "leaves", sheet{
		name: "Leave Requests",
		columns: []column{
			{"ID", 10}, {"User", 22}, {"Email", 26}, {"Type", 14},
			{"Start", 12}, {"End", 12}, {"Days", 8}, {"Status", 12},
			{"Submitted", 12}, {"Reason", 30}, {"Approved By", 18}, {"Notes", 30},
		},
		rows: rows,
	})
}

// Report implements export.ExportService.
func (s *ExportServiceImpl) Report(ctx context.Context, f report.Filter) (export.File, error) {
	r, err := s.reports.Generate(ctx, f)
	if err != nil {
		return export.File{}, err
	}
	rows, err := s.reports.Rows(ctx, f)
	if err != nil {
		return export.File{}, err
	}

	userRows := make([][]any, 0, len(rows))
	for _, u := range rows {
		userRows = append(userRows, []any{
			u.UserName, u.UserEmail, u.Department, string(u.Role), u.Timesheets,
			u.TotalHours.InexactFloat64(), u.TargetHours.InexactFloat64(), u.Overtime.InexactFloat64(),
			u.LeaveHours.InexactFloat64(), u.MeetingHours.InexactFloat64(),
			u.Compliance.InexactFloat64(), strings.Join(u.Projects, ", "),
		})
	}
	deptRows := make([][]any, 0, len(r.Departments))
	for _, d := range r.Departments {
		deptRows = append(deptRows, []any{
			d.Department, d.Users, d.TotalHours.InexactFloat64(), d.AverageCompliance.InexactFloat64(),
		})
	}
	weekRows := make([][]any, 0, len(r.Weekly))
	for _, w := range r.Weekly {
		weekRows = append(weekRows, []any{
			w.WeekStart, w.Timesheets, w.TotalHours.InexactFloat64(), w.TargetHours.InexactFloat64(),
		})
	}

	title := "Timesheet report"
	if r.PeriodStart != "" || r.PeriodEnd != "" {
		title = fmt.Sprintf("Timesheet report %s to %s", orDash(r.PeriodStart), orDash(r.PeriodEnd))
	}

	return s.store(ctx, "report",
		sheet{
			name:  "Users",
			title: title,
			columns: []column{
				{"User", 22}, {"Email", 26}, {"Department", 16}, {"Role", 12}, {"Timesheets", 11},
				{"Total Hours", 12}, {"Target Hours", 12}, {"Overtime", 10},
				{"Leave Hours", 12}, {"Meeting Hours", 14}, {"Compliance %", 13}, {"Projects", 36},
			},
			rows: userRows,
		},
		sheet{
			name:    "Departments",
			columns: []column{{"Department", 18}, {"Users", 8}, {"Total Hours", 12}, {"Avg Compliance %", 17}},
			rows:    deptRows,
		},
		sheet{
			name:    "Weekly",
			columns: []column{{"Week Start", 12}, {"Timesheets", 11}, {"Total Hours", 12}, {"Target Hours", 12}},
			rows:    weekRows,
		},
	)
}

// store renders the workbook, uploads it and resolves its URL. The first
// sheet must have at least one row.
func (s *ExportServiceImpl) store(ctx context.Context, name string, sheets ...sheet) (export.File, error) {
	if len(sheets) == 0 || len(sheets[0].rows) == 0 {
		return export.File{}, export.ErrNothingToExport
	}

	buf, err := render(sheets...)
	if err != nil {
		slog.Error("Failed to render spreadsheet", "export", name, "error", err)
		return export.File{}, errors.Join(export.ErrGenerateFailed, err)
	}

	now := s.now()
	filename := fmt.Sprintf("%s-%s-%s.xlsx", name, now.Format("20060102-150405"), uuid.NewString()[:8])
	key, err := s.storage.Upload(ctx, buf, export.Dir+"/"+filename, export.ContentType)
	if err != nil {
		return export.File{}, fmt.Errorf("failed to store export: %w", err)
	}
	url, err := s.storage.GetURL(ctx, key, urlExpiry)
	if err != nil {
		return export.File{}, fmt.Errorf("failed to resolve export url: %w", err)
	}

	slog.Info("Export generated", "export", name, "key", key, "rows", len(sheets[0].rows))
	return export.File{
		Filename:    filename,
		Key:         key,
		URL:         url,
		Rows:        len(sheets[0].rows),
		GeneratedAt: now,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
