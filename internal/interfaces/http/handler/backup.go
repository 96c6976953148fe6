package handler

import (
	"github.com/gin-gonic/gin"

	backupapp "github.com/cafemenu/backend/internal/application/backup"
)

// BackupHandler handles backup archive endpoints
type BackupHandler struct {
	BaseHandler
	backupService *backupapp.Service
}

// NewBackupHandler creates a new BackupHandler
func NewBackupHandler(backupService *backupapp.Service) *BackupHandler {
	return &BackupHandler{backupService: backupService}
}

// Create exports the full dataset to a new backup archive
func (h *BackupHandler) Create(c *gin.Context) {
	info, err := h.backupService.Create(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, info)
}

// List returns stored backup archives, newest first
func (h *BackupHandler) List(c *gin.Context) {
	infos, err := h.backupService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, infos)
}
