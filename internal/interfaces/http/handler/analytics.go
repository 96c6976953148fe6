package handler

import (
	"github.com/gin-gonic/gin"

	analyticsapp "github.com/cafemenu/backend/internal/application/analytics"
	"github.com/cafemenu/backend/internal/interfaces/http/dto"
)

// AnalyticsHandler handles dashboard analytics endpoints
type AnalyticsHandler struct {
	BaseHandler
	analyticsService *analyticsapp.Service
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *analyticsapp.Service) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Overview returns the dashboard counters. Failed counters come back as
// zero with the partial flag set.
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	overview := h.analyticsService.Overview(c.Request.Context())
	h.SuccessWithMeta(c, overview, dto.Meta{Partial: overview.Partial})
}
