package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/nazarshv/teamtrack/backend/internal/models"
	"github.com/nazarshv/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type TaskService struct {
	db            *gorm.DB
	notifications *NotificationService
	activity      *ActivityService
}

func NewTaskService(db *gorm.DB, notifications *NotificationService, activity *ActivityService) *TaskService {
	return &TaskService{db: db, notifications: notifications, activity: activity}
}

// TaskItem is one kanban card with its assignee's name resolved.
type TaskItem struct {
	ID               uint      `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Status           string    `json:"status"`
	Priority         string    `json:"priority"`
	CreatedAt        time.Time `json:"created_at"`
	Deadline         string    `json:"deadline"`
	AssignedTo       *uint     `json:"assigned_to"`
	AssignedUserName *string   `json:"assigned_user_name"`
}

// List returns the project's tasks, newest first.
func (s *TaskService) List(projectID uint) ([]TaskItem, error) {
	var items []TaskItem
	err := s.db.Model(&models.Task{}).
		Select("tasks.id, tasks.title, tasks.description, tasks.status, tasks.priority, tasks.created_at, tasks.deadline, tasks.assigned_to, users.name AS assigned_user_name").
		Joins("LEFT JOIN users ON users.id = tasks.assigned_to").
		Where("tasks.project_id = ?", projectID).
		Order("tasks.created_at DESC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []TaskItem{}
	}
	return items, nil
}

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Deadline    string `json:"deadline" binding:"required"`
	AssignedTo  *uint  `json:"assigned_to"`
	Priority    string `json:"priority"`
}

// Create adds a task to a project the manager owns. A directly assigned task
// notifies only its assignee; an unassigned one notifies every specialist
// member so someone can pick it up.
func (s *TaskService) Create(user *models.User, projectID uint, req *CreateTaskRequest) (*models.Task, error) {
	if user.Role != models.RoleManager {
		return nil, response.NewForbidden("only managers can create tasks")
	}

	var count int64
	s.db.Model(&models.Project{}).
		Where("id = ? AND manager_id = ?", projectID, user.ID).
		Count(&count)
	if count == 0 {
		return nil, response.NewForbidden("you cannot create tasks in this project")
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidTaskPriority(priority) {
		return nil, response.NewBadRequest("invalid task priority")
	}

	task := models.Task{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		AssignedTo:  req.AssignedTo,
		Priority:    priority,
		Status:      models.TaskNotStarted,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}

	if req.AssignedTo != nil {
		s.notifications.Deliver(CreateNotificationParams{
			UserID:    *req.AssignedTo,
			ProjectID: &projectID,
			Type:      "task_assigned",
			Message:   fmt.Sprintf("You have been assigned a new task: %s", req.Title),
		})
	} else {
		specialists, err := listSpecialistMembers(s.db, projectID)
		if err == nil {
			s.notifications.DeliverAll(specialists, CreateNotificationParams{
				ProjectID: &projectID,
				Type:      "new_task",
				Message:   fmt.Sprintf("A new task was added to the project: %s", req.Title),
			})
		}
	}

	s.activity.Log(user.ID, &projectID, "task_created", fmt.Sprintf("Created task: %s", req.Title))
	return &task, nil
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	AssignedTo  *uint   `json:"assigned_to"`
	Priority    *string `json:"priority"`
}

// Update applies per-field role gating: any member role may move a task
// between statuses (in any direction), but only managers touch the rest.
// Managers are further restricted to projects they own.
func (s *TaskService) Update(user *models.User, projectID, taskID uint, req *UpdateTaskRequest) error {
	var task models.Task
	err := s.db.Where("id = ? AND project_id = ?", taskID, projectID).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFound("task not found")
		}
		return err
	}

	if user.Role == models.RoleManager {
		var project models.Project
		if err := s.db.First(&project, projectID).Error; err != nil {
			return err
		}
		if project.ManagerID != user.ID {
			return response.NewForbidden("insufficient permissions to update this task")
		}
	}

	isManager := user.Role == models.RoleManager
	updates := map[string]interface{}{}

	if req.Title != nil && isManager {
		updates["title"] = *req.Title
	}
	if req.Description != nil && isManager {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		if !models.ValidTaskStatus(*req.Status) {
			return response.NewBadRequest("invalid task status")
		}
		updates["status"] = *req.Status
	}
	if req.AssignedTo != nil && isManager {
		updates["assigned_to"] = *req.AssignedTo
	}
	if req.Priority != nil && isManager {
		if !models.ValidTaskPriority(*req.Priority) {
			return response.NewBadRequest("invalid task priority")
		}
		updates["priority"] = *req.Priority
	}

	if len(updates) == 0 {
		return nil
	}

	if err := s.db.Model(&models.Task{}).
		Where("id = ? AND project_id = ?", taskID, projectID).
		Updates(updates).Error; err != nil {
		return err
	}

	if task.AssignedTo != nil {
		s.notifications.Deliver(CreateNotificationParams{
			UserID:    *task.AssignedTo,
			ProjectID: &projectID,
			Type:      "task_updated",
			Message:   fmt.Sprintf("Task '%s' was updated", task.Title),
		})
	}
	s.activity.Log(user.ID, &projectID, "task_updated", fmt.Sprintf("Updated task: %s", task.Title))

	return nil
}

func listSpecialistMembers(db *gorm.DB, projectID uint) ([]uint, error) {
	var ids []uint
	err := db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND role = ?", projectID, string(models.RoleSpecialist)).
		Pluck("user_id", &ids).Error
	return ids, err
}
