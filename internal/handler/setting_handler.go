package handler

import (
	"net/http"

	"github.com/folio/backend/internal/service"
)

// SettingHandler serves site_settings.
type SettingHandler struct {
	settings service.SettingService
}

func NewSettingHandler(settings service.SettingService) *SettingHandler {
	return &SettingHandler{settings: settings}
}

// Public handles GET /api/settings.
func (h *SettingHandler) Public(w http.ResponseWriter, r *http.Request) {
	values, err := h.settings.Public(r.Context())
	if err != nil {
		writeServiceError(w, r, err, "list_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"settings": values})
}

// Save handles PUT /api/admin/settings with a {"key": "value"} body.
func (h *SettingHandler) Save(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if !decodeJSON(w, r, &values) {
		return
	}
	if err := h.settings.Save(r.Context(), values); err != nil {
		writeServiceError(w, r, err, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
