package dashboard

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
)

// ActivityLimit caps the recent activity feed.
const ActivityLimit = 10

type ActivityType string

const (
	ActivityTimesheet ActivityType = "timesheet"
	ActivityApproval  ActivityType = "approval"
	ActivityUser      ActivityType = "user"
	ActivityLeave     ActivityType = "leave"
)

type ActivityStatus string

const (
	ActivitySuccess ActivityStatus = "success"
	ActivityWarning ActivityStatus = "warning"
	ActivityError   ActivityStatus = "error"
	ActivityInfo    ActivityStatus = "info"
)

// Activity is one line of the dashboard's recent activity feed.
type Activity struct {
	ID          string         `json:"id"`
	Type        ActivityType   `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	User        string         `json:"user,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
	Status      ActivityStatus `json:"status"`
	Action      string         `json:"action,omitempty"`
	EntityType  string         `json:"entity_type"`
	EntityID    string         `json:"entity_id"`
}

// BuildActivity derives the feed from the lifecycle timestamps of each
// entity, newest first. Rejections and cancellations use UpdatedAt since
// they carry no timestamp of their own.
func BuildActivity(users []user.User, sheets []timesheet.Timesheet, requests []leave.LeaveRequest, limit int) []Activity {
	out := []Activity{}

	for _, u := range users {
		out = append(out, Activity{
			ID:          u.ID + "-added",
			Type:        ActivityUser,
			Title:       "New User Added",
			Description: fmt.Sprintf("%s joined the %s team", u.Name, titleCase(u.Department)),
			User:        u.Name,
			Timestamp:   u.CreatedAt,
			Status:      ActivitySuccess,
			Action:      "View",
			EntityType:  "user",
			EntityID:    u.ID,
		})
	}

	for _, t := range sheets {
		week := t.WeekStart.Format("Jan 02") + "-" + t.WeekEnd.Format("02")
		if t.SubmittedDate != nil {
			a := Activity{
				ID:          t.ID + "-submitted",
				Type:        ActivityTimesheet,
				Title:       "New Timesheet Submitted",
				Description: fmt.Sprintf("%s submitted timesheet for week %s", t.UserName, week),
				User:        t.UserName,
				Timestamp:   *t.SubmittedDate,
				Status:      ActivityInfo,
				EntityType:  "timesheet",
				EntityID:    t.ID,
			}
			if t.Status == timesheet.StatusSubmitted {
				a.Action = "Review"
			}
			out = append(out, a)
		}
		switch {
		case t.Status == timesheet.StatusApproved && t.ApprovedDate != nil:
			out = append(out, Activity{
				ID:          t.ID + "-approved",
				Type:        ActivityApproval,
				Title:       "Timesheet Approved",
				Description: fmt.Sprintf("%s's timesheet approved by %s", t.UserName, deref(t.ApprovedBy, "Admin")),
				User:        t.UserName,
				Timestamp:   *t.ApprovedDate,
				Status:      ActivitySuccess,
				EntityType:  "timesheet",
				EntityID:    t.ID,
			})
		case t.Status == timesheet.StatusRejected:
			desc := t.UserName + "'s timesheet rejected"
			if t.RejectionReason != nil {
				desc += " - " + *t.RejectionReason
			}
			out = append(out, Activity{
				ID:          t.ID + "-rejected",
				Type:        ActivityTimesheet,
				Title:       "Timesheet Rejected",
				Description: desc,
				User:        t.UserName,
				Timestamp:   t.UpdatedAt,
				Status:      ActivityError,
				Action:      "Resubmit",
				EntityType:  "timesheet",
				EntityID:    t.ID,
			})
		}
	}

	for _, l := range requests {
		a := Activity{
			User:       l.UserName,
			EntityType: "leave",
			EntityID:   l.ID,
		}
		switch l.Status {
		case leave.StatusPending:
			a.ID = l.ID + "-pending"
			a.Type = ActivityLeave
			a.Title = "Leave Request Pending"
			a.Description = fmt.Sprintf("%s requested %s of %s", l.UserName, days(l.TotalDays), leave.TypeLabel(l.LeaveType))
			a.Timestamp = l.SubmittedDate
			a.Status = ActivityWarning
			a.Action = "Approve"
		case leave.StatusApproved:
			if l.ApprovedDate == nil {
				continue
			}
			a.ID = l.ID + "-approved"
			a.Type = ActivityApproval
			a.Title = "Leave Request Approved"
			a.Description = fmt.Sprintf("%s's %s approved by %s", l.UserName, leave.TypeLabel(l.LeaveType), deref(l.ApprovedBy, "Admin"))
			a.Timestamp = *l.ApprovedDate
			a.Status = ActivitySuccess
		case leave.StatusRejected:
			a.ID = l.ID + "-rejected"
			a.Type = ActivityLeave
			a.Title = "Leave Request Rejected"
			a.Description = fmt.Sprintf("%s's %s rejected", l.UserName, leave.TypeLabel(l.LeaveType))
			a.Timestamp = l.UpdatedAt
			a.Status = ActivityError
		default:
			continue
		}
		out = append(out, a)
	}

	slices.SortStableFunc(out, func(a, b Activity) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func deref(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
