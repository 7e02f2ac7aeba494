package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/export"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-admin-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-admin-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/storage"
	"github.com/go-chi/chi/v5"
)

type ExportFileHandler interface {
	Download(w http.ResponseWriter, r *http.Request)
}

type exportFileHandlerImpl struct {
	storage storage.FileStorage
}

func NewExportFileHandler(fileStorage storage.FileStorage) ExportFileHandler {
	return &exportFileHandlerImpl{storage: fileStorage}
}

// Download handles GET /exports/*. Only exact workbook keys are served.
func (h *exportFileHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	perm, ok := export.DownloadPermission(key)
	if !ok {
		response.NotFound(w, "File not found")
		return
	}

	claims, _ := middleware.ClaimsFrom(r.Context())
	if !user.HasPermission(claims.Role, perm) {
		response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", perm, claims.Role))
		return
	}

	file, err := h.storage.Download(r.Context(), key)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", path.Base(key)))
	w.Header().Set("Cache-Control", "private, no-store")
	if _, err := io.Copy(w, file); err != nil {
		slog.Warn("Failed to stream export", "key", key, "error", err)
	}
}
