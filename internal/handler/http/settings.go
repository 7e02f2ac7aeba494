package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/settings"
	"github.com/cmlabs-hris/hris-admin-go/internal/handler/http/response"
)

type SettingsHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	settings settings.Settings
}

func NewSettingsHandler(s settings.Settings) SettingsHandler {
	return &settingsHandlerImpl{settings: s}
}

// Get handles GET /settings
func (h *settingsHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.settings)
}
