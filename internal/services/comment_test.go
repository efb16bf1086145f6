package services

import (
	"testing"

	"github.com/nazarshv/teamtrack/backend/internal/models"
)

func TestCommentsListedInPostingOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCommentService(db)

	manager := createTestUser(t, db, "Petro", "m@example.com", models.RoleManager)
	spec := createTestUser(t, db, "Olena", "s@example.com", models.RoleSpecialist)
	project := createTestProject(t, db, "P", manager.ID, models.ProjectActive)

	first, err := svc.Add(manager, project.ID, &AddCommentRequest{Content: "kickoff notes"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := svc.Add(spec, project.ID, &AddCommentRequest{Content: "question", ParentID: &first.ID}); err != nil {
		t.Fatalf("Add reply failed: %v", err)
	}

	items, err := svc.List(project.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d comments, want 2", len(items))
	}
	if items[0].Content != "kickoff notes" || items[0].AuthorName != "Petro" {
		t.Errorf("first comment = %+v", items[0])
	}
	if items[1].ParentID == nil || *items[1].ParentID != first.ID {
		t.Errorf("reply not linked to parent: %+v", items[1])
	}
}
