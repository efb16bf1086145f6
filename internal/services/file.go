package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nazarshv/teamtrack/backend/internal/models"
	"github.com/nazarshv/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

// allowedExtensions is the upload allow-list. Anything else is rejected
// before touching disk.
var allowedExtensions = map[string]bool{
	".txt": true, ".pdf": true, ".png": true, ".jpg": true, ".jpeg": true,
	".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
}

type FileService struct {
	db            *gorm.DB
	uploadDir     string
	notifications *NotificationService
	activity      *ActivityService
}

func NewFileService(db *gorm.DB, uploadDir string, notifications *NotificationService, activity *ActivityService) *FileService {
	return &FileService{db: db, uploadDir: uploadDir, notifications: notifications, activity: activity}
}

// FileItem is a file registry row with the uploader's name resolved.
type FileItem struct {
	ID         uint      `json:"id"`
	Filename   string    `json:"filename"`
	FileSize   int64     `json:"file_size"`
	FileType   string    `json:"file_type"`
	UploadDate time.Time `json:"upload_date"`
	UserName   string    `json:"user_name"`
}

// List returns the project's files, newest upload first.
func (s *FileService) List(projectID uint) ([]FileItem, error) {
	var items []FileItem
	err := s.db.Model(&models.ProjectFile{}).
		Select("files.id, files.filename, files.file_size, files.file_type, files.upload_date, users.name AS user_name").
		Joins("JOIN users ON users.id = files.user_id").
		Where("files.project_id = ?", projectID).
		Order("files.upload_date DESC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []FileItem{}
	}
	return items, nil
}

// Upload stores the file on disk under a collision-proof name, registers it
// and notifies the other project members. Admins may upload anywhere; other
// roles must be members of the project.
func (s *FileService) Upload(user *models.User, projectID uint, header *multipart.FileHeader) (*models.ProjectFile, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return nil, response.NewBadRequest("file type not allowed")
	}

	if !user.Role.CanAdministrate() {
		var count int64
		s.db.Model(&models.ProjectMember{}).
			Where("project_id = ? AND user_id = ?", projectID, user.ID).
			Count(&count)
		if count == 0 {
			return nil, response.NewForbidden("not a member of this project")
		}
	}

	projectDir := filepath.Join(s.uploadDir, fmt.Sprintf("project_%d", projectID))
	if err := os.MkdirAll(projectDir, 0o755); err != nil {
		return nil, err
	}

	// Stored name is prefixed with a UUID so uploads with the same original
	// name never overwrite each other.
	storedName := uuid.NewString() + "_" + filepath.Base(header.Filename)
	destPath := filepath.Join(projectDir, storedName)

	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return nil, err
	}
	written, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(destPath)
		return nil, err
	}

	file := models.ProjectFile{
		ProjectID: projectID,
		UserID:    user.ID,
		Filename:  filepath.Base(header.Filename),
		FileSize:  written,
		FileType:  ext,
		FilePath:  destPath,
	}
	if err := s.db.Create(&file).Error; err != nil {
		os.Remove(destPath)
		return nil, err
	}

	var memberIDs []uint
	err = s.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id != ?", projectID, user.ID).
		Pluck("user_id", &memberIDs).Error
	if err == nil {
		s.notifications.DeliverAll(memberIDs, CreateNotificationParams{
			ProjectID: &projectID,
			Type:      "new_file",
			Message:   fmt.Sprintf("New file uploaded: %s", file.Filename),
		})
	}

	s.activity.Log(user.ID, &projectID, "file_uploaded", fmt.Sprintf("Uploaded file: %s", file.Filename))
	return &file, nil
}

// GetForDownload returns the registry row after checking the user may read
// it. Non-admins must belong to the file's project.
func (s *FileService) GetForDownload(user *models.User, fileID uint) (*models.ProjectFile, error) {
	var file models.ProjectFile
	if err := s.db.First(&file, fileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("file not found")
		}
		return nil, err
	}

	if !user.Role.CanAdministrate() {
		var count int64
		s.db.Model(&models.ProjectMember{}).
			Where("project_id = ? AND user_id = ?", file.ProjectID, user.ID).
			Count(&count)
		if count == 0 {
			return nil, response.NewForbidden("not authorized to download this file")
		}
	}

	s.activity.Log(user.ID, &file.ProjectID, "file_downloaded", fmt.Sprintf("Downloaded file: %s", file.Filename))
	return &file, nil
}
