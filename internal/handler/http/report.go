package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/export"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-admin-go/internal/handler/http/response"
)

type ReportHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	exportService export.ExportService
	pageSize      int
}

func NewReportHandler(reportService report.ReportService, exportService export.ExportService, pageSize int) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		exportService: exportService,
		pageSize:      pageSize,
	}
}

func (h *reportHandlerImpl) filter(r *http.Request) (report.Filter, error) {
	l, err := parseList(r, h.pageSize)
	if err != nil {
		return report.Filter{}, err
	}
	q := r.URL.Query()
	return report.Filter{
		List:       l,
		Department: q.Get("department"),
		Role:       q.Get("role"),
	}, nil
}

// Generate handles GET /reports
func (h *reportHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rep, err := h.reportService.Generate(r.Context(), f)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, rep, response.MetaFrom(rep.Table.Meta))
}

// Export handles GET /reports/export
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	f, err := h.filter(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	file, err := h.exportService.Report(r.Context(), f)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Report exported successfully", file)
}
