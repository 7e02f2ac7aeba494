package action

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/dispatch"
)

type TimesheetHandler struct {
	timesheets timesheet.TimesheetService
	notifier   notification.Service
}

func NewTimesheetHandler(timesheets timesheet.TimesheetService, notifier notification.Service) *TimesheetHandler {
	return &TimesheetHandler{timesheets: timesheets, notifier: notifier}
}

func (h *TimesheetHandler) Subject() dispatch.Subject {
	return dispatch.Subject{Singular: "Timesheet", Plural: "Timesheets"}
}

func (h *TimesheetHandler) Kinds() []dispatch.Kind {
	return []dispatch.Kind{
		dispatch.KindSubmit,
		dispatch.KindApprove,
		dispatch.KindReject,
		dispatch.KindResubmit,
		dispatch.KindDelete,
	}
}

func (h *TimesheetHandler) Check(ctx context.Context, kind dispatch.Kind, id string) error {
	t, err := h.timesheets.Get(ctx, id)
	if err != nil {
		return classify(err)
	}
	_, err = timesheet.Next(t.Status, timesheet.Action(kind))
	return classify(err)
}

func (h *TimesheetHandler) Apply(ctx context.Context, cmd dispatch.Command, id string) error {
	t, err := h.timesheets.Transition(ctx, timesheet.TransitionRequest{
		ID:     id,
		Action: timesheet.Action(cmd.Kind),
		Actor:  cmd.Payload.Actor.Name,
		Note:   cmd.Payload.Note,
		Reason: cmd.Payload.Reason,
	})
	if err != nil {
		return classify(err)
	}

	req, ok := timesheetNotice(t, cmd)
	if ok {
		notify(ctx, h.notifier, req)
	}
	return nil
}

// timesheetNotice builds the owner's notification for approve and reject.
func timesheetNotice(t timesheet.Timesheet, cmd dispatch.Command) (notification.CreateNotificationRequest, bool) {
	req := notification.CreateNotificationRequest{
		RecipientID:    t.UserID,
		RecipientEmail: t.UserEmail,
		RecipientName:  t.UserName,
		ActorName:      cmd.Payload.Actor.Name,
		EntityType:     EntityTimesheet,
		EntityIDs:      []string{t.ID},
	}
	week := t.WeekStart.Format("Jan 02") + " - " + t.WeekEnd.Format("Jan 02")

	switch cmd.Kind {
	case dispatch.KindApprove:
		req.Type = notification.TypeTimesheetApproved
		req.Level = notification.LevelSuccess
		req.Title = "Timesheet approved"
		req.Message = fmt.Sprintf("Your timesheet for %s was approved by %s", week, cmd.Payload.Actor.Name)
		req.Note = cmd.Payload.Note
	case dispatch.KindReject:
		req.Type = notification.TypeTimesheetRejected
		req.Level = notification.LevelError
		req.Title = "Timesheet rejected"
		req.Message = fmt.Sprintf("Your timesheet for %s was rejected: %s", week, cmd.Payload.Reason)
		req.Note = cmd.Payload.Reason
	case dispatch.KindSubmit:
		req.Type = notification.TypeTimesheetSubmitted
		req.Level = notification.LevelSuccess
		req.Title = "Timesheet submitted"
		req.Message = fmt.Sprintf("Your timesheet for %s was submitted for approval", week)
	default:
		return req, false
	}
	return req, true
}
