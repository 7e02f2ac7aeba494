package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/export"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-admin-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-admin-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TimesheetHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Pending(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Entries(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
	exportService    export.ExportService
	pageSize         int
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService, exportService export.ExportService, pageSize int) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheetService: timesheetService,
		exportService:    exportService,
		pageSize:         pageSize,
	}
}

func (h *timesheetHandlerImpl) filter(r *http.Request) (timesheet.ListFilter, error) {
	l, err := parseList(r, h.pageSize)
	if err != nil {
		return timesheet.ListFilter{}, err
	}
	q := r.URL.Query()
	return timesheet.ListFilter{
		List:       l,
		Status:     q.Get("status"),
		Project:    q.Get("project"),
		Department: q.Get("department"),
		Tab:        q.Get("tab"),
	}, nil
}

// List handles GET /timesheets
func (h *timesheetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timesheetService.List(r.Context(), f)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, response.MetaFrom(result.Table.Meta))
}

// Pending handles GET /timesheets/pending
func (h *timesheetHandlerImpl) Pending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.timesheetService.Pending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, pending)
}

// Export handles GET /timesheets/export
func (h *timesheetHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.exportService.Timesheets(r.Context(), f)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheets exported successfully", file)
}

// Get handles GET /timesheets/{id}
func (h *timesheetHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.timesheetService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, timesheet.NewPendingApproval(t))
}

// Entries handles GET /timesheets/{id}/entries
func (h *timesheetHandlerImpl) Entries(w http.ResponseWriter, r *http.Request) {
	l, err := parseList(r, h.pageSize)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	view, err := h.timesheetService.Entries(r.Context(), chi.URLParam(r, "id"), l.Table())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, view, response.MetaFrom(view.Meta))
}

// Create handles POST /timesheets
func (h *timesheetHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req timesheet.CreateTimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create timesheet decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.UserID == "" {
		req.UserID = middleware.ActorFrom(r.Context()).ID
	}

	created, err := h.timesheetService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timesheet created successfully", created)
}
