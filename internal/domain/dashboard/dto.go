package dashboard

import (
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	Stats            Stats                       `json:"stats"`
	PendingApprovals []timesheet.PendingApproval `json:"pending_approvals"`
	RecentTimesheets []timesheet.Timesheet       `json:"recent_timesheets"`
	RecentLeaves     []leave.LeaveRequest        `json:"recent_leaves"`
	LeaveStats       leave.Stats                 `json:"leave_stats"`
	RecentActivity   []Activity                  `json:"recent_activity"`
	UpdatedAt        string                      `json:"updated_at"`
}

// ========== STAT CARDS ==========

type Stats struct {
	TotalHours         decimal.Decimal `json:"total_hours"`
	TotalUsers         int             `json:"total_users"`
	ActiveUsers        int             `json:"active_users"`
	PendingTimesheets  int             `json:"pending_timesheets"`
	ApprovedTimesheets int             `json:"approved_timesheets"`
	PendingLeaves      int             `json:"pending_leaves"`
	AverageCompliance  decimal.Decimal `json:"average_compliance"`
	OvertimeHours      decimal.Decimal `json:"overtime_hours"`
}
