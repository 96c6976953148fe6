package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	uploadapp "github.com/cafemenu/backend/internal/application/upload"
)

// Upload folders accepted from the API
var allowedUploadFolders = map[string]bool{
	"menu-items": true,
	"categories": true,
	"logos":      true,
	"temp":       true,
}

// UploadHandler handles image upload endpoints
type UploadHandler struct {
	BaseHandler
	uploadService *uploadapp.Service
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploadService *uploadapp.Service) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Store accepts a multipart image upload under form field "file".
// The optional "folder" field defaults to temp.
func (h *UploadHandler) Store(c *gin.Context) {
	folder := c.DefaultPostForm("folder", "temp")
	if !allowedUploadFolders[folder] {
		h.BadRequest(c, "Unknown upload folder")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Form field 'file' is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Could not read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.BadRequest(c, "Could not read uploaded file")
		return
	}

	result, err := h.uploadService.Store(c.Request.Context(), folder, fileHeader.Filename, data)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Remove deletes a stored image by its key
func (h *UploadHandler) Remove(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		h.BadRequest(c, "Query parameter 'key' is required")
		return
	}

	if err := h.uploadService.Remove(c.Request.Context(), key); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
