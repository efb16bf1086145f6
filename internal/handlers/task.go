package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nazarshv/teamtrack/backend/internal/middleware"
	"github.com/nazarshv/teamtrack/backend/internal/services"
	"github.com/nazarshv/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(db *gorm.DB, notifications *services.NotificationService, activity *services.ActivityService) *TaskHandler {
	return &TaskHandler{
		taskService: services.NewTaskService(db, notifications, activity),
	}
}

// List returns the project's tasks
// GET /projects/:id/tasks
func (h *TaskHandler) List(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.List(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, tasks)
}

// Create adds a task to the project
// POST /projects/:id/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req services.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	task, err := h.taskService.Create(user, id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "task created successfully",
		"task_id": task.ID,
	})
}

// Update applies task changes with per-field role gating
// PUT /projects/:id/tasks/:task_id
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	taskID, err := strconv.ParseUint(c.Param("task_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid task id")
		return
	}

	var req services.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.taskService.Update(user, id, uint(taskID), &req); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "task updated successfully")
}
