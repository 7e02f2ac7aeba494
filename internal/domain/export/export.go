// Package export describes spreadsheet downloads of list views and reports.
package export

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
)

const (
	// Dir is the storage prefix for generated spreadsheets.
	Dir = "exports"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	ErrNothingToExport = errors.New("nothing to export for the selected filters")
	ErrGenerateFailed  = errors.New("failed to generate spreadsheet")
)

// File is a stored spreadsheet.
type File struct {
	Filename    string    `json:"filename"`
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	Rows        int       `json:"rows"`
	GeneratedAt time.Time `json:"generated_at"`
}

type ExportService interface {
	Users(ctx context.Context, f user.ListFilter) (File, error)
	Timesheets(ctx context.Context, f timesheet.ListFilter) (File, error)
	Leaves(ctx context.Context, f leave.ListFilter) (File, error)
	Report(ctx context.Context, f report.Filter) (File, error)
}

// downloadPermissions keys the permission that guards each export kind by
// the filename prefix the export service writes.
var downloadPermissions = map[string]user.Permission{
	"users":      user.PermissionUserView,
	"timesheets": user.PermissionTimesheetView,
	"leaves":     user.PermissionLeaveView,
	"report":     user.PermissionReportsExport,
}

// DownloadPermission returns the permission needed to fetch a stored key.
// Only workbooks directly under Dir qualify.
func DownloadPermission(key string) (user.Permission, bool) {
	dir, name := path.Split(key)
	if dir != Dir+"/" || path.Ext(name) != ".xlsx" {
		return "", false
	}
	kind, _, ok := strings.Cut(name, "-")
	if !ok {
		return "", false
	}
	p, ok := downloadPermissions[kind]
	return p, ok
}
