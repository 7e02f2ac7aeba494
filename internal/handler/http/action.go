package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-admin-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-admin-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/dispatch"
	"github.com/cmlabs-hris/hris-admin-go/internal/service/action"
	"github.com/go-chi/chi/v5"
)

// ActionHandler exposes the two-step action flow: a request returns a
// confirmation prompt, and the action runs once the prompt is confirmed.
type ActionHandler interface {
	Request(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type actionHandlerImpl struct {
	dispatcher *dispatch.Dispatcher
}

func NewActionHandler(dispatcher *dispatch.Dispatcher) ActionHandler {
	return &actionHandlerImpl{dispatcher: dispatcher}
}

type actionRequest struct {
	Kind       dispatch.Kind `json:"kind"`
	EntityType string        `json:"entity_type"`
	EntityIDs  []string      `json:"entity_ids"`
	Reason     string        `json:"reason,omitempty"`
	Note       string        `json:"note,omitempty"`
}

// Request handles POST /actions
func (h *actionHandlerImpl) Request(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Action request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	actor := middleware.ActorFrom(r.Context())
	if !action.Authorize(user.Role(actor.Role), req.EntityType, req.Kind) {
		response.HandleError(w, user.ErrInsufficientPermissions)
		return
	}

	pending, err := h.dispatcher.Request(r.Context(), dispatch.Command{
		Kind:       req.Kind,
		EntityType: req.EntityType,
		EntityIDs:  req.EntityIDs,
		Payload: dispatch.Payload{
			Reason: req.Reason,
			Note:   req.Note,
			Actor:  actor,
		},
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, pending)
}

// owned returns the pending action when the caller issued it.
func (h *actionHandlerImpl) owned(w http.ResponseWriter, r *http.Request) (dispatch.Pending, bool) {
	pending, err := h.dispatcher.Get(chi.URLParam(r, "token"))
	if err != nil {
		response.HandleError(w, err)
		return dispatch.Pending{}, false
	}
	if pending.Command.Payload.Actor.ID != middleware.ActorFrom(r.Context()).ID {
		// other users' tokens are reported as missing
		response.HandleError(w, dispatch.ErrConfirmationNotFound)
		return dispatch.Pending{}, false
	}
	return pending, true
}

// Get handles GET /actions/{token}
func (h *actionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	pending, ok := h.owned(w, r)
	if !ok {
		return
	}
	response.Success(w, pending)
}

// Confirm handles POST /actions/{token}/confirm
func (h *actionHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	pending, ok := h.owned(w, r)
	if !ok {
		return
	}

	result, err := h.dispatcher.Confirm(r.Context(), pending.Token)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Action confirmed",
		"kind", result.Command.Kind,
		"entity_type", result.Command.EntityType,
		"actor_id", pending.Command.Payload.Actor.ID,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
	)
	response.SuccessWithMessage(w, result.Message, result)
}

// Cancel handles DELETE /actions/{token}
func (h *actionHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	pending, ok := h.owned(w, r)
	if !ok {
		return
	}

	if err := h.dispatcher.Cancel(pending.Token); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Action cancelled", nil)
}
