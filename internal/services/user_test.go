package services

import (
	"testing"

	"github.com/nazarshv/teamtrack/backend/internal/models"
)

func TestUserListAggregates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	manager := createTestUser(t, db, "M", "m@example.com", models.RoleManager)
	spec := createTestUser(t, db, "S", "s@example.com", models.RoleSpecialist)
	p1 := createTestProject(t, db, "P1", manager.ID, models.ProjectActive)
	p2 := createTestProject(t, db, "P2", manager.ID, models.ProjectActive)
	addTestMember(t, db, p1.ID, spec.ID, models.RoleSpecialist)
	addTestMember(t, db, p2.ID, spec.ID, models.RoleSpecialist)

	db.Create(&models.Rating{ProjectID: p1.ID, SpecialistID: spec.ID, ManagerID: manager.ID, Rating: 70, Type: models.RatingFinal})
	db.Create(&models.Rating{ProjectID: p2.ID, SpecialistID: spec.ID, ManagerID: manager.ID, Rating: 90, Type: models.RatingFinal})

	users, err := svc.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("got %d users, want 2", len(users))
	}

	for _, u := range users {
		switch u.Email {
		case "s@example.com":
			if u.ProjectsCount != 2 {
				t.Errorf("specialist projects = %d, want 2", u.ProjectsCount)
			}
			if u.AverageRating == nil || *u.AverageRating != 80 {
				t.Errorf("specialist average = %v, want 80", u.AverageRating)
			}
		case "m@example.com":
			if u.ProjectsCount != 0 {
				t.Errorf("manager projects = %d, want 0", u.ProjectsCount)
			}
			if u.AverageRating != nil {
				t.Errorf("manager has average rating %v", *u.AverageRating)
			}
		}
	}
}

func TestUserDeleteCleansDependents(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	manager := createTestUser(t, db, "M", "m@example.com", models.RoleManager)
	spec := createTestUser(t, db, "S", "s@example.com", models.RoleSpecialist)
	project := createTestProject(t, db, "P", manager.ID, models.ProjectActive)
	addTestMember(t, db, project.ID, spec.ID, models.RoleSpecialist)

	db.Create(&models.Task{ProjectID: project.ID, Title: "T", Description: "d", Deadline: "2026-01-01", AssignedTo: &spec.ID})
	db.Create(&models.Comment{ProjectID: project.ID, UserID: spec.ID, Content: "c"})
	db.Create(&models.Rating{ProjectID: project.ID, SpecialistID: spec.ID, ManagerID: manager.ID, Rating: 80, Type: models.RatingFinal})
	db.Create(&models.Notification{UserID: spec.ID, Type: "a", Message: "m"})

	if err := svc.Delete(spec.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	var users, members, tasks, comments, ratings, notifications int64
	db.Model(&models.User{}).Where("id = ?", spec.ID).Count(&users)
	db.Model(&models.ProjectMember{}).Where("user_id = ?", spec.ID).Count(&members)
	db.Model(&models.Task{}).Where("assigned_to = ?", spec.ID).Count(&tasks)
	db.Model(&models.Comment{}).Where("user_id = ?", spec.ID).Count(&comments)
	db.Model(&models.Rating{}).Where("specialist_id = ?", spec.ID).Count(&ratings)
	db.Model(&models.Notification{}).Where("user_id = ?", spec.ID).Count(&notifications)

	if users+members+tasks+comments+ratings+notifications != 0 {
		t.Errorf("dependent rows remain: users=%d members=%d tasks=%d comments=%d ratings=%d notifications=%d",
			users, members, tasks, comments, ratings, notifications)
	}

	// The project and its manager are untouched.
	var projects int64
	db.Model(&models.Project{}).Count(&projects)
	if projects != 1 {
		t.Errorf("project count = %d, want 1", projects)
	}
}

func TestUserDeleteUnknown(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	err := svc.Delete(42)
	assertHTTPStatus(t, err, 404)
}
