package export

import (
	"testing"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

func TestDownloadPermission(t *testing.T) {
	tests := []struct {
		key  string
		want user.Permission
		ok   bool
	}{
		{"exports/users-20240201-093000-2f8f9b10.xlsx", user.PermissionUserView, true},
		{"exports/timesheets-20240201-093000-2f8f9b10.xlsx", user.PermissionTimesheetView, true},
		{"exports/leaves-20240201-093000-2f8f9b10.xlsx", user.PermissionLeaveView, true},
		{"exports/report-20240201-093000-2f8f9b10.xlsx", user.PermissionReportsExport, true},
		{"exports/", "", false},
		{"exports", "", false},
		{"exports/payroll-20240201.xlsx", "", false},
		{"exports/users-20240201.csv", "", false},
		{"exports/nested/users-20240201.xlsx", "", false},
		{"users-20240201.xlsx", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := DownloadPermission(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
