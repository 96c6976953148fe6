package handler

import (
	"github.com/gin-gonic/gin"

	settingsapp "github.com/cafemenu/backend/internal/application/settings"
	"github.com/cafemenu/backend/internal/interfaces/http/dto"
	"github.com/cafemenu/backend/internal/interfaces/http/middleware"
)

// SettingsHandler handles café settings API endpoints
type SettingsHandler struct {
	BaseHandler
	settingsService *settingsapp.Service
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *settingsapp.Service) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateSettingsRequest is the request body for updating settings
type UpdateSettingsRequest struct {
	Values map[string]string `json:"values" binding:"required,min=1"`
}

// Get returns the settings map. The endpoint never fails; degraded reads
// carry flags in the serving metadata.
func (h *SettingsHandler) Get(c *gin.Context) {
	forceRefresh := c.Query("refresh") == "true"
	snapshot := h.settingsService.Get(c.Request.Context(), forceRefresh)

	h.SuccessWithMeta(c, snapshot.Values, dto.Meta{
		Cached:   snapshot.Cached,
		Stale:    snapshot.Stale,
		Degraded: snapshot.Degraded,
	})
}

// Update writes settings keys. When the store write fails the cache still
// holds the new values; the response reports the failure.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	snapshot, err := h.settingsService.Update(c.Request.Context(), req.Values)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, snapshot.Values)
}
