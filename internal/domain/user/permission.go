package user

import "slices"

type Permission string

const (
	PermissionDashboardView Permission = "dashboard.view"

	// User Management
	PermissionUserView   Permission = "user.view"
	PermissionUserManage Permission = "user.manage"

	// Timesheet Management
	PermissionTimesheetView    Permission = "timesheet.view"
	PermissionTimesheetManage  Permission = "timesheet.manage"
	PermissionTimesheetApprove Permission = "timesheet.approve"

	// Leave Management
	PermissionLeaveView    Permission = "leave.view"
	PermissionLeaveManage  Permission = "leave.manage"
	PermissionLeaveApprove Permission = "leave.approve"

	// Reports
	PermissionReportsView   Permission = "reports.view"
	PermissionReportsExport Permission = "reports.export"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionDashboardView,
		PermissionUserView,
		PermissionUserManage,
		PermissionTimesheetView,
		PermissionTimesheetManage,
		PermissionTimesheetApprove,
		PermissionLeaveView,
		PermissionLeaveManage,
		PermissionLeaveApprove,
		PermissionReportsView,
		PermissionReportsExport,
	},
	RoleManager: {
		PermissionDashboardView,
		PermissionUserView,
		PermissionTimesheetView,
		PermissionTimesheetManage,
		PermissionTimesheetApprove,
		PermissionLeaveView,
		PermissionLeaveManage,
		PermissionLeaveApprove,
		PermissionReportsView,
		PermissionReportsExport,
	},
	RoleSupervisor: {
		PermissionDashboardView,
		PermissionUserView,
		PermissionTimesheetView,
		PermissionTimesheetApprove,
		PermissionLeaveView,
		PermissionLeaveApprove,
	},
	RoleAuditor: {
		// Read-only, but may pull reports
		PermissionDashboardView,
		PermissionUserView,
		PermissionTimesheetView,
		PermissionLeaveView,
		PermissionReportsView,
		PermissionReportsExport,
	},
	RoleUser: {
		PermissionDashboardView,
		PermissionTimesheetManage,
		PermissionLeaveManage,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}
	return slices.Contains(permissions, permission)
}
