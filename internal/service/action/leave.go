package action

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/dispatch"
)

type LeaveHandler struct {
	leaves   leave.LeaveService
	notifier notification.Service
}

func NewLeaveHandler(leaves leave.LeaveService, notifier notification.Service) *LeaveHandler {
	return &LeaveHandler{leaves: leaves, notifier: notifier}
}

func (h *LeaveHandler) Subject() dispatch.Subject {
	return dispatch.Subject{Singular: "Leave Request", Plural: "Leave Requests"}
}

func (h *LeaveHandler) Kinds() []dispatch.Kind {
	return []dispatch.Kind{
		dispatch.KindApprove,
		dispatch.KindReject,
		dispatch.KindCancel,
		dispatch.KindDelete,
	}
}

func (h *LeaveHandler) Check(ctx context.Context, kind dispatch.Kind, id string) error {
	l, err := h.leaves.Get(ctx, id)
	if err != nil {
		return classify(err)
	}
	_, err = leave.Next(l.Status, leave.Action(kind))
	return classify(err)
}

func (h *LeaveHandler) Apply(ctx context.Context, cmd dispatch.Command, id string) error {
	l, err := h.leaves.Transition(ctx, leave.TransitionRequest{
		ID:     id,
		Action: leave.Action(cmd.Kind),
		Actor:  cmd.Payload.Actor.Name,
		Note:   cmd.Payload.Note,
		Reason: cmd.Payload.Reason,
	})
	if err != nil {
		return classify(err)
	}

	if req, ok := leaveNotice(l, cmd); ok {
		notify(ctx, h.notifier, req)
	}
	return nil
}

func leaveNotice(l leave.LeaveRequest, cmd dispatch.Command) (notification.CreateNotificationRequest, bool) {
	req := notification.CreateNotificationRequest{
		RecipientID:    l.UserID,
		RecipientEmail: l.UserEmail,
		RecipientName:  l.UserName,
		ActorName:      cmd.Payload.Actor.Name,
		EntityType:     EntityLeave,
		EntityIDs:      []string{l.ID},
	}
	span := l.StartDate.Format("Jan 02") + " - " + l.EndDate.Format("Jan 02")

	switch cmd.Kind {
	case dispatch.KindApprove:
		req.Type = notification.TypeLeaveApproved
		req.Level = notification.LevelSuccess
		req.Title = "Leave approved"
		req.Message = fmt.Sprintf("Your leave for %s was approved by %s", span, cmd.Payload.Actor.Name)
		req.Note = cmd.Payload.Note
	case dispatch.KindReject:
		req.Type = notification.TypeLeaveRejected
		req.Level = notification.LevelError
		req.Title = "Leave rejected"
		req.Message = fmt.Sprintf("Your leave for %s was rejected: %s", span, cmd.Payload.Reason)
		req.Note = cmd.Payload.Reason
	case dispatch.KindCancel:
		req.Type = notification.TypeLeaveCancelled
		req.Level = notification.LevelWarning
		req.Title = "Leave cancelled"
		req.Message = fmt.Sprintf("Your leave for %s was cancelled", span)
	default:
		return req, false
	}
	return req, true
}
