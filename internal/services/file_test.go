package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/nazarshv/teamtrack/backend/internal/models"
	"gorm.io/gorm"
)

func newFileService(db *gorm.DB, dir string) *FileService {
	return NewFileService(db, dir, NewNotificationService(db), NewActivityService(db))
}

func makeFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	writer.Close()

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("failed to parse multipart form: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}

func TestUploadStoresFileAndNotifies(t *testing.T) {
	db := setupTestDB(t)
	dir := t.TempDir()
	svc := newFileService(db, dir)

	manager := createTestUser(t, db, "M", "m@example.com", models.RoleManager)
	spec := createTestUser(t, db, "S", "s@example.com", models.RoleSpecialist)
	project := createTestProject(t, db, "P", manager.ID, models.ProjectActive)
	addTestMember(t, db, project.ID, manager.ID, models.RoleManager)
	addTestMember(t, db, project.ID, spec.ID, models.RoleSpecialist)

	header := makeFileHeader(t, "report.pdf", "pdf-bytes")
	file, err := svc.Upload(manager, project.ID, header)
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if file.Filename != "report.pdf" {
		t.Errorf("filename = %q", file.Filename)
	}
	if file.FileType != ".pdf" {
		t.Errorf("file type = %q, want .pdf", file.FileType)
	}
	if file.FileSize != int64(len("pdf-bytes")) {
		t.Errorf("file size = %d", file.FileSize)
	}

	// Blob lives under the per-project directory, not under the original name.
	if filepath.Dir(file.FilePath) != filepath.Join(dir, "project_1") {
		t.Errorf("file stored at %q", file.FilePath)
	}
	data, err := os.ReadFile(file.FilePath)
	if err != nil {
		t.Fatalf("stored file unreadable: %v", err)
	}
	if string(data) != "pdf-bytes" {
		t.Errorf("stored content = %q", data)
	}

	// Other members notified, uploader not.
	var notifications []models.Notification
	db.Where("type = ?", "new_file").Find(&notifications)
	if len(notifications) != 1 || notifications[0].UserID != spec.ID {
		t.Errorf("new_file fan-out wrong: %+v", notifications)
	}
}

func TestUploadSameNameDoesNotCollide(t *testing.T) {
	db := setupTestDB(t)
	svc := newFileService(db, t.TempDir())

	manager := createTestUser(t, db, "M", "m@example.com", models.RoleManager)
	project := createTestProject(t, db, "P", manager.ID, models.ProjectActive)
	addTestMember(t, db, project.ID, manager.ID, models.RoleManager)

	first, err := svc.Upload(manager, project.ID, makeFileHeader(t, "notes.txt", "one"))
	if err != nil {
		t.Fatalf("first Upload failed: %v", err)
	}
	second, err := svc.Upload(manager, project.ID, makeFileHeader(t, "notes.txt", "two"))
	if err != nil {
		t.Fatalf("second Upload failed: %v", err)
	}

	if first.FilePath == second.FilePath {
		t.Fatal("same-name uploads share a storage path")
	}
	data, _ := os.ReadFile(first.FilePath)
	if string(data) != "one" {
		t.Errorf("first upload overwritten: %q", data)
	}
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	db := setupTestDB(t)
	svc := newFileService(db, t.TempDir())

	manager := createTestUser(t, db, "M", "m@example.com", models.RoleManager)
	project := createTestProject(t, db, "P", manager.ID, models.ProjectActive)
	addTestMember(t, db, project.ID, manager.ID, models.RoleManager)

	_, err := svc.Upload(manager, project.ID, makeFileHeader(t, "malware.exe", "x"))
	assertHTTPStatus(t, err, 400)

	var count int64
	db.Model(&models.ProjectFile{}).Count(&count)
	if count != 0 {
		t.Error("rejected upload was registered")
	}
}

func TestUploadRequiresMembership(t *testing.T) {
	db := setupTestDB(t)
	svc := newFileService(db, t.TempDir())

	manager := createTestUser(t, db, "M", "m@example.com", models.RoleManager)
	outsider := createTestUser(t, db, "O", "o@example.com", models.RoleSpecialist)
	project := createTestProject(t, db, "P", manager.ID, models.ProjectActive)

	_, err := svc.Upload(outsider, project.ID, makeFileHeader(t, "a.txt", "x"))
	assertHTTPStatus(t, err, 403)
}

func TestGetForDownloadAccess(t *testing.T) {
	db := setupTestDB(t)
	svc := newFileService(db, t.TempDir())

	manager := createTestUser(t, db, "M", "m@example.com", models.RoleManager)
	outsider := createTestUser(t, db, "O", "o@example.com", models.RoleSpecialist)
	admin := createTestUser(t, db, "A", "a@example.com", models.RoleAdmin)
	project := createTestProject(t, db, "P", manager.ID, models.ProjectActive)
	addTestMember(t, db, project.ID, manager.ID, models.RoleManager)

	stored, err := svc.Upload(manager, project.ID, makeFileHeader(t, "a.txt", "x"))
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}

	if _, err := svc.GetForDownload(manager, stored.ID); err != nil {
		t.Errorf("member download refused: %v", err)
	}
	if _, err := svc.GetForDownload(admin, stored.ID); err != nil {
		t.Errorf("admin download refused: %v", err)
	}

	_, err = svc.GetForDownload(outsider, stored.ID)
	assertHTTPStatus(t, err, 403)

	_, err = svc.GetForDownload(manager, 9999)
	assertHTTPStatus(t, err, 404)
}
