package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/nazarshv/teamtrack/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.CalendarEvent{},
		&models.Notification{},
		&models.Comment{},
		&models.ProjectFile{},
		&models.Rating{},
		&models.ActivityLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: "hashed",
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func createTestProject(t *testing.T, db *gorm.DB, name string, managerID uint, status string) *models.Project {
	t.Helper()

	project := &models.Project{
		Name:        name,
		Description: "test project",
		ManagerID:   managerID,
		Deadline:    "2026-12-31",
		Status:      status,
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to create project %s: %v", name, err)
	}
	return project
}

func addTestMember(t *testing.T, db *gorm.DB, projectID, userID uint, role models.Role) {
	t.Helper()

	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to add member %d to project %d: %v", userID, projectID, err)
	}
}
