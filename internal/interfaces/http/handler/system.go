package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	systemapp "github.com/cafemenu/backend/internal/application/system"
)

// SystemHandler handles health and operational endpoints
type SystemHandler struct {
	BaseHandler
	systemService *systemapp.Service
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *systemapp.Service) *SystemHandler {
	return &SystemHandler{systemService: systemService}
}

// Health is the liveness endpoint
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports readiness. A degraded start answers 503 so orchestrators
// and dashboards see it, even though reads still serve cached and default
// data.
func (h *SystemHandler) Ready(c *gin.Context) {
	status := h.systemService.Status()
	if !status.Ready || status.Degraded {
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	c.JSON(http.StatusOK, status)
}

// ClearCaches drops the in-process caches and the advisory snapshot store
func (h *SystemHandler) ClearCaches(c *gin.Context) {
	if err := h.systemService.ClearCaches(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
