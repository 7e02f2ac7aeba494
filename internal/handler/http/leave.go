package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/export"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-admin-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-admin-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Calendar(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService  leave.LeaveService
	exportService export.ExportService
	pageSize      int
	now           func() time.Time
}

func NewLeaveHandler(leaveService leave.LeaveService, exportService export.ExportService, pageSize int) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService:  leaveService,
		exportService: exportService,
		pageSize:      pageSize,
		now:           time.Now,
	}
}

func (h *leaveHandlerImpl) filter(r *http.Request) (leave.ListFilter, error) {
	l, err := parseList(r, h.pageSize)
	if err != nil {
		return leave.ListFilter{}, err
	}
	q := r.URL.Query()
	return leave.ListFilter{
		List:      l,
		Status:    q.Get("status"),
		LeaveType: q.Get("leave_type"),
		UserID:    q.Get("user_id"),
	}, nil
}

// List handles GET /leaves
func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.List(r.Context(), f)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, response.MetaFrom(result.Table.Meta))
}

// Calendar handles GET /leaves/calendar?month=YYYY-MM, defaulting to the
// current month.
func (h *leaveHandlerImpl) Calendar(w http.ResponseWriter, r *http.Request) {
	req := leave.CalendarRequest{
		Month:  r.URL.Query().Get("month"),
		Status: r.URL.Query().Get("status"),
	}
	if req.Month == "" {
		req.Month = h.now().Format("2006-01")
	}

	cal, err := h.leaveService.Calendar(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, cal)
}

// Export handles GET /leaves/export
func (h *leaveHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.exportService.Leaves(r.Context(), f)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave requests exported successfully", file)
}

// Get handles GET /leaves/{id}
func (h *leaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	l, err := h.leaveService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, l)
}

// Create handles POST /leaves. Without user_id the request is filed for
// the caller.
func (h *leaveHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.UserID == "" {
		req.UserID = middleware.ActorFrom(r.Context()).ID
	}

	created, err := h.leaveService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", created)
}

// Update handles PUT /leaves/{id}
func (h *leaveHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.leaveService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated successfully", updated)
}
