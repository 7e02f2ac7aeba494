// Package fixtures holds the seed collection the admin console starts
// with.
package fixtures

import (
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func strPtr(s string) *string { return &s }

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func stamp(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func timePtr(t time.Time) *time.Time { return &t }

// ==========================================
// PROJECTS
// ==========================================

var Projects = []string{"Project Alpha", "Project Beta", "Project Gamma", "Project Delta", "Project Epsilon"}

// ==========================================
// USERS
// ==========================================

// Users returns a fresh copy of the seeded users.
func Users() []user.User {
	created := stamp("2024-01-01 00:00")
	return []user.User{
		{
			ID: "USR-001", Name: "John Doe", Email: "john@company.com",
			Role: user.RoleAdmin, Department: "engineering", Status: user.StatusActive,
			HoursThisWeek: 42, LastLogin: timePtr(stamp("2024-01-15 14:30")),
			JobTitle: strPtr("Senior Developer"), Phone: strPtr("+1 (555) 123-4567"),
			StartDate: timePtr(date("2023-01-15")), Manager: strPtr("Jane Smith"),
			CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: "USR-002", Name: "Jane Smith", Email: "jane@company.com",
			Role: user.RoleManager, Department: "marketing", Status: user.StatusActive,
			HoursThisWeek: 38, LastLogin: timePtr(stamp("2024-01-15 09:15")),
			JobTitle: strPtr("Marketing Director"), Phone: strPtr("+1 (555) 987-6543"),
			StartDate: timePtr(date("2022-08-20")),
			CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: "USR-003", Name: "Bob Johnson", Email: "bob@company.com",
			Role: user.RoleUser, Department: "sales", Status: user.StatusActive,
			HoursThisWeek: 40, LastLogin: timePtr(stamp("2024-01-14 16:45")),
			JobTitle: strPtr("Sales Executive"), Phone: strPtr("+1 (555) 456-7890"),
			StartDate: timePtr(date("2023-03-10")), Manager: strPtr("Jane Smith"),
			CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: "USR-004", Name: "Alice Brown", Email: "alice@company.com",
			Role: user.RoleSupervisor, Department: "hr", Status: user.StatusPending,
			HoursThisWeek: 35, LastLogin: timePtr(stamp("2024-01-13 11:20")),
			JobTitle: strPtr("HR Supervisor"), Phone: strPtr("+1 (555) 321-6547"),
			StartDate: timePtr(date("2023-06-22")),
			CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: "USR-005", Name: "Charlie Wilson", Email: "charlie@company.com",
			Role: user.RoleAuditor, Department: "finance", Status: user.StatusInactive,
			HoursThisWeek: 0, LastLogin: timePtr(stamp("2024-01-10 13:15")),
			JobTitle: strPtr("Financial Auditor"), Phone: strPtr("+1 (555) 789-0123"),
			StartDate: timePtr(date("2022-11-30")), Manager: strPtr("John Doe"),
			CreatedAt: created, UpdatedAt: created,
		},
	}
}

// ==========================================
// TIMESHEETS
// ==========================================

func entry(id, sheetID, userID, day string, hours float64, typ timesheet.EntryType, project *string, desc string) timesheet.TimeEntry {
	return timesheet.TimeEntry{
		ID: id, TimesheetID: sheetID, UserID: userID,
		Date: date(day), Hours: hours, Type: typ, Project: project,
		Description: desc, Status: timesheet.EntryApproved,
	}
}

// Timesheets returns a fresh copy of the seeded timesheets.
func Timesheets() []timesheet.Timesheet {
	alpha := strPtr("Project Alpha")
	beta := strPtr("Project Beta")

	ts1 := []timesheet.TimeEntry{
		entry("TE-001", "TS-001", "USR-001", "2024-01-08", 8, timesheet.EntryWork, alpha, "Developed new feature"),
		entry("TE-002", "TS-001", "USR-001", "2024-01-09", 8, timesheet.EntryWork, alpha, "Code review and testing"),
		entry("TE-003", "TS-001", "USR-001", "2024-01-10", 8, timesheet.EntryMeeting, alpha, "Team planning meeting"),
		entry("TE-004", "TS-001", "USR-001", "2024-01-11", 9, timesheet.EntryWork, alpha, "Bug fixes and deployment"),
		entry("TE-005", "TS-001", "USR-001", "2024-01-12", 9, timesheet.EntryWork, alpha, "Documentation and cleanup"),
	}
	ts2 := []timesheet.TimeEntry{
		entry("TE-006", "TS-002", "USR-002", "2024-01-08", 8, timesheet.EntryWork, beta, "Marketing campaign planning"),
		entry("TE-007", "TS-002", "USR-002", "2024-01-09", 8, timesheet.EntryWork, beta, "Content creation"),
		entry("TE-008", "TS-002", "USR-002", "2024-01-10", 8, timesheet.EntryLeave, nil, "Sick leave"),
		entry("TE-009", "TS-002", "USR-002", "2024-01-11", 7, timesheet.EntryWork, beta, "Social media management"),
		entry("TE-010", "TS-002", "USR-002", "2024-01-12", 7, timesheet.EntryMeeting, beta, "Client presentation"),
	}

	return []timesheet.Timesheet{
		{
			ID: "TS-001", UserID: "USR-001", UserName: "John Doe", UserEmail: "john@company.com",
			WeekStart: date("2024-01-08"), WeekEnd: date("2024-01-12"),
			TotalHours: timesheet.SumEntries(ts1), TargetHours: 40,
			Project: alpha, Department: strPtr("Engineering"),
			Status:        timesheet.StatusApproved,
			SubmittedDate: timePtr(stamp("2024-01-12 16:30")),
			ApprovedBy:    strPtr("Admin User"),
			ApprovedDate:  timePtr(stamp("2024-01-13 10:15")),
			Entries:       ts1,
			CreatedAt:     stamp("2024-01-08 09:00"), UpdatedAt: stamp("2024-01-13 10:15"),
		},
		{
			ID: "TS-002", UserID: "USR-002", UserName: "Jane Smith", UserEmail: "jane@company.com",
			WeekStart: date("2024-01-08"), WeekEnd: date("2024-01-12"),
			TotalHours: timesheet.SumEntries(ts2), TargetHours: 40,
			Project: beta, Department: strPtr("Marketing"),
			Status:        timesheet.StatusSubmitted,
			SubmittedDate: timePtr(stamp("2024-01-12 17:45")),
			Entries:       ts2,
			CreatedAt:     stamp("2024-01-08 09:00"), UpdatedAt: stamp("2024-01-12 17:45"),
		},
	}
}

// ==========================================
// LEAVE REQUESTS
// ==========================================

func request(id, userID, name, email string, typ leave.LeaveType, start, end string, status leave.Status, submitted, reason string) leave.LeaveRequest {
	s, e := date(start), date(end)
	sub := stamp(submitted)
	return leave.LeaveRequest{
		ID: id, UserID: userID, UserName: name, UserEmail: email, LeaveType: typ,
		StartDate: s, EndDate: e, TotalDays: leave.TotalDays(s, e),
		Status: status, SubmittedDate: sub, Reason: reason,
		CreatedAt: sub, UpdatedAt: sub,
	}
}

func approved(l leave.LeaveRequest, at string) leave.LeaveRequest {
	l.ApprovedBy = strPtr("Admin User")
	l.ApprovedDate = timePtr(stamp(at))
	l.UpdatedAt = *l.ApprovedDate
	return l
}

// LeaveRequests returns a fresh copy of the seeded leave requests.
func LeaveRequests() []leave.LeaveRequest {
	rejected := request("LV-004", "USR-004", "Sarah Williams", "sarah@company.com", leave.TypePersonal,
		"2024-02-01", "2024-02-02", leave.StatusRejected, "2024-01-25 16:15", "Personal matters")
	rejected.Notes = strPtr("Not enough notice given")

	return []leave.LeaveRequest{
		approved(request("LV-001", "USR-001", "John Doe", "john@company.com", leave.TypeVacation,
			"2024-01-15", "2024-01-19", leave.StatusApproved, "2024-01-10 14:30", "Family vacation"), "2024-01-11 10:15"),
		request("LV-002", "USR-002", "Jane Smith", "jane@company.com", leave.TypeSick,
			"2024-01-22", "2024-01-23", leave.StatusPending, "2024-01-20 09:45", "Medical appointment"),
		approved(request("LV-003", "USR-003", "Robert Johnson", "robert@company.com", leave.TypeBirthday,
			"2024-01-25", "2024-01-25", leave.StatusApproved, "2024-01-18 11:20", "Birthday celebration"), "2024-01-19 09:30"),
		rejected,
		request("LV-005", "USR-005", "Michael Brown", "michael@company.com", leave.TypeOther,
			"2024-02-05", "2024-02-07", leave.StatusPending, "2024-01-30 13:40", "Wedding ceremony"),
		request("LV-006", "USR-001", "John Doe", "john@company.com", leave.TypeSick,
			"2024-02-10", "2024-02-11", leave.StatusPending, "2024-02-05 08:30", "Flu symptoms"),
		approved(request("LV-007", "USR-002", "Jane Smith", "jane@company.com", leave.TypeVacation,
			"2024-02-15", "2024-02-20", leave.StatusApproved, "2024-01-30 10:20", "Holiday trip"), "2024-01-31 14:45"),
		request("LV-008", "USR-006", "Emily Davis", "emily@company.com", leave.TypePersonal,
			"2024-01-28", "2024-01-29", leave.StatusCancelled, "2024-01-25 11:10", "Family emergency"),
	}
}
