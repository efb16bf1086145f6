package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nazarshv/teamtrack/backend/internal/middleware"
	"github.com/nazarshv/teamtrack/backend/internal/services"
	"github.com/nazarshv/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type FileHandler struct {
	fileService *services.FileService
}

func NewFileHandler(db *gorm.DB, uploadDir string, notifications *services.NotificationService, activity *services.ActivityService) *FileHandler {
	return &FileHandler{
		fileService: services.NewFileService(db, uploadDir, notifications, activity),
	}
}

// List returns the project's files
// GET /projects/:id/files
func (h *FileHandler) List(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	files, err := h.fileService.List(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, files)
}

// Upload stores a file attached to the project
// POST /projects/:id/files
func (h *FileHandler) Upload(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "no file part")
		return
	}
	if header.Filename == "" {
		response.BadRequest(c, "no selected file")
		return
	}

	user := middleware.CurrentUser(c)
	if _, err := h.fileService.Upload(user, id, header); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "file uploaded successfully")
}

// Download streams a stored file back as an attachment
// GET /files/:file_id/download
func (h *FileHandler) Download(c *gin.Context) {
	fileID, err := strconv.ParseUint(c.Param("file_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid file id")
		return
	}

	user := middleware.CurrentUser(c)
	file, err := h.fileService.GetForDownload(user, uint(fileID))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.FileAttachment(file.FilePath, file.Filename)
}
