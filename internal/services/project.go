package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nazarshv/teamtrack/backend/internal/models"
	"github.com/nazarshv/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectService struct {
	db            *gorm.DB
	notifications *NotificationService
	activity      *ActivityService
}

func NewProjectService(db *gorm.DB, notifications *NotificationService, activity *ActivityService) *ProjectService {
	return &ProjectService{db: db, notifications: notifications, activity: activity}
}

// ProjectItem is one row of the project board listing. IsMember is only
// populated for specialists, so it is omitted for the other roles.
type ProjectItem struct {
	ID                  uint   `json:"id"`
	Name                string `json:"name"`
	Description         string `json:"description"`
	ManagerID           uint   `json:"manager_id"`
	ManagerName         string `json:"manager_name"`
	Deadline            string `json:"deadline"`
	Status              string `json:"status"`
	MembersCount        int    `json:"members_count"`
	UnreadNotifications int64  `json:"unread_notifications"`
	IsMember            *bool  `json:"is_member,omitempty"`
}

// List returns the projects visible to the user, scoped by role:
// admins see everything not archived, managers see their own unarchived
// projects, specialists see every active project with a membership flag.
func (s *ProjectService) List(user *models.User) ([]ProjectItem, error) {
	type projectRow struct {
		ID           uint
		Name         string
		Description  string
		ManagerID    uint
		ManagerName  string
		Deadline     string
		Status       string
		MembersCount int
		IsMember     bool
	}

	query := s.db.Model(&models.Project{}).
		Select("projects.id, projects.name, projects.description, projects.manager_id, users.name AS manager_name, projects.deadline, projects.status, COUNT(DISTINCT project_members.user_id) AS members_count").
		Joins("LEFT JOIN users ON users.id = projects.manager_id").
		Joins("LEFT JOIN project_members ON project_members.project_id = projects.id").
		Group("projects.id")

	switch user.Role {
	case models.RoleAdmin:
		query = query.Where("projects.status != ?", models.ProjectArchived)
	case models.RoleManager:
		query = query.Where("projects.manager_id = ? AND projects.status != ?", user.ID, models.ProjectArchived)
	default:
		query = query.
			Select("projects.id, projects.name, projects.description, projects.manager_id, users.name AS manager_name, projects.deadline, projects.status, COUNT(DISTINCT project_members.user_id) AS members_count, "+
				"EXISTS (SELECT 1 FROM project_members pm WHERE pm.project_id = projects.id AND pm.user_id = ?) AS is_member", user.ID).
			Where("projects.status = ?", models.ProjectActive)
	}

	var rows []projectRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]ProjectItem, 0, len(rows))
	for _, row := range rows {
		item := ProjectItem{
			ID:           row.ID,
			Name:         row.Name,
			Description:  row.Description,
			ManagerID:    row.ManagerID,
			ManagerName:  row.ManagerName,
			Deadline:     row.Deadline,
			Status:       row.Status,
			MembersCount: row.MembersCount,
		}

		// Unread badge per project: specialists count their own
		// notifications, managers and admins count everyone's.
		unread := s.db.Model(&models.Notification{}).
			Where("project_id = ? AND is_read = ?", row.ID, false)
		if user.Role == models.RoleSpecialist {
			unread = unread.Where("user_id = ?", user.ID)
		}
		if err := unread.Count(&item.UnreadNotifications).Error; err != nil {
			return nil, err
		}

		if user.Role == models.RoleSpecialist {
			isMember := row.IsMember
			item.IsMember = &isMember
		}

		items = append(items, item)
	}

	return items, nil
}

// GetByID retrieves one project.
func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("project not found")
		}
		return nil, err
	}
	return &project, nil
}

type CreateProjectRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description" binding:"required"`
	Deadline       string `json:"deadline" binding:"required"`
	MaxSpecialists int    `json:"max_specialists"`
}

// Create inserts a new active project owned by the user and enrolls the
// creator as its first member.
func (s *ProjectService) Create(user *models.User, req *CreateProjectRequest) (*models.Project, error) {
	if !user.Role.CanManageProjects() {
		return nil, response.NewForbidden("insufficient permissions")
	}

	project := models.Project{
		Name:           req.Name,
		Description:    req.Description,
		ManagerID:      user.ID,
		Deadline:       req.Deadline,
		Status:         models.ProjectActive,
		MaxSpecialists: req.MaxSpecialists,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		member := models.ProjectMember{
			ProjectID: project.ID,
			UserID:    user.ID,
			Role:      user.Role,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}

	s.activity.Log(user.ID, &project.ID, "project_created", fmt.Sprintf("Created project: %s", project.Name))
	return &project, nil
}

type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Deadline    *string `json:"deadline"`
	Status      *string `json:"status"`
}

// Update applies the provided fields. Managers may only touch their own
// projects and only admins may change status. Every member is notified
// when anything changed.
func (s *ProjectService) Update(user *models.User, projectID uint, req *UpdateProjectRequest) error {
	if !user.Role.CanManageProjects() {
		return response.NewForbidden("insufficient permissions")
	}

	project, err := s.GetByID(projectID)
	if err != nil {
		return err
	}
	if user.Role == models.RoleManager && project.ManagerID != user.ID {
		return response.NewForbidden("insufficient permissions")
	}

	updates := map[string]interface{}{}
	var changed []string
	if req.Name != nil {
		updates["name"] = *req.Name
		changed = append(changed, "name")
	}
	if req.Description != nil {
		updates["description"] = *req.Description
		changed = append(changed, "description")
	}
	if req.Deadline != nil {
		updates["deadline"] = *req.Deadline
		changed = append(changed, "deadline")
	}
	if req.Status != nil && user.Role.CanAdministrate() {
		if !models.ValidProjectStatus(*req.Status) {
			return response.NewBadRequest("invalid project status")
		}
		updates["status"] = *req.Status
		changed = append(changed, "status")
	}

	if len(updates) == 0 {
		return nil
	}

	if err := s.db.Model(&models.Project{}).Where("id = ?", projectID).Updates(updates).Error; err != nil {
		return err
	}

	s.activity.Log(user.ID, &projectID, "project_updated", fmt.Sprintf("Updated project fields: %s", strings.Join(changed, ", ")))

	name := project.Name
	if req.Name != nil {
		name = *req.Name
	}
	memberIDs, err := s.memberIDs(projectID, 0)
	if err == nil {
		s.notifications.DeliverAll(memberIDs, CreateNotificationParams{
			ProjectID: &projectID,
			Type:      "project_update",
			Message:   fmt.Sprintf("Project '%s' was updated", name),
		})
	}

	return nil
}

// Delete removes a project and every dependent row. Children go first so a
// mid-transaction failure never leaves orphans behind. Admin only.
func (s *ProjectService) Delete(user *models.User, projectID uint) error {
	if !user.Role.CanAdministrate() {
		return response.NewForbidden("insufficient permissions")
	}

	if _, err := s.GetByID(projectID); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		children := []interface{}{
			&models.ProjectMember{},
			&models.Task{},
			&models.CalendarEvent{},
			&models.Notification{},
			&models.Comment{},
			&models.Rating{},
			&models.ActivityLog{},
			&models.ProjectFile{},
		}
		for _, model := range children {
			if err := tx.Where("project_id = ?", projectID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Project{}, projectID).Error
	})
	if err != nil {
		return err
	}

	s.activity.Log(user.ID, nil, "project_deleted", fmt.Sprintf("Deleted project ID: %d", projectID))
	return nil
}

// Join enrolls a specialist into an active project and notifies its manager.
func (s *ProjectService) Join(user *models.User, projectID uint) error {
	if !user.Role.CanJoinProjects() {
		return response.NewForbidden("only specialists can join projects")
	}

	var project models.Project
	err := s.db.Where("id = ? AND status = ?", projectID, models.ProjectActive).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("project not found or not active")
		}
		return err
	}

	var count int64
	s.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, user.ID).
		Count(&count)
	if count > 0 {
		return response.NewConflict("already a member of this project")
	}

	member := models.ProjectMember{
		ProjectID: projectID,
		UserID:    user.ID,
		Role:      models.RoleSpecialist,
	}
	if err := s.db.Create(&member).Error; err != nil {
		return err
	}

	s.notifications.Deliver(CreateNotificationParams{
		UserID:    project.ManagerID,
		ProjectID: &projectID,
		Type:      "new_member",
		Message:   fmt.Sprintf("Specialist %s joined project '%s'", user.Name, project.Name),
	})
	s.activity.Log(user.ID, &projectID, "project_joined", fmt.Sprintf("Joined project: %s", project.Name))

	return nil
}

// MemberItem is a project member joined with their user record.
type MemberItem struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ListMembers returns the project's roster.
func (s *ProjectService) ListMembers(projectID uint) ([]MemberItem, error) {
	var members []MemberItem
	err := s.db.Model(&models.ProjectMember{}).
		Select("users.id, users.name, users.email, project_members.role").
		Joins("JOIN users ON users.id = project_members.user_id").
		Where("project_members.project_id = ?", projectID).
		Scan(&members).Error
	if err != nil {
		return nil, err
	}
	if members == nil {
		members = []MemberItem{}
	}
	return members, nil
}

// IsMember reports whether the user belongs to the project.
func (s *ProjectService) IsMember(projectID, userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error
	return count > 0, err
}

// memberIDs returns member user ids, excluding excludeUserID when non-zero.
func (s *ProjectService) memberIDs(projectID uint, excludeUserID uint) ([]uint, error) {
	query := s.db.Model(&models.ProjectMember{}).Where("project_id = ?", projectID)
	if excludeUserID != 0 {
		query = query.Where("user_id != ?", excludeUserID)
	}
	var ids []uint
	err := query.Pluck("user_id", &ids).Error
	return ids, err
}
