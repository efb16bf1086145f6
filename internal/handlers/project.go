package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nazarshv/teamtrack/backend/internal/middleware"
	"github.com/nazarshv/teamtrack/backend/internal/services"
	"github.com/nazarshv/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectService    *services.ProjectService
	activityService   *services.ActivityService
	statisticsService *services.StatisticsService
}

func NewProjectHandler(db *gorm.DB, notifications *services.NotificationService, activity *services.ActivityService) *ProjectHandler {
	return &ProjectHandler{
		projectService:    services.NewProjectService(db, notifications, activity),
		activityService:   activity,
		statisticsService: services.NewStatisticsService(db),
	}
}

// projectID parses the :id route parameter.
func projectID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return 0, false
	}
	return uint(id), true
}

// List returns the projects visible to the current user
// GET /projects
func (h *ProjectHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	projects, err := h.projectService.List(user)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, projects)
}

// Create creates a new project
// POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	project, err := h.projectService.Create(user, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"message":    "project created successfully",
		"project_id": project.ID,
	})
}

// Update updates project fields
// PUT /projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.projectService.Update(user, id, &req); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "project updated successfully")
}

// Delete removes a project and all its data
// DELETE /projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.projectService.Delete(user, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "project deleted successfully")
}

// Join enrolls the current specialist into the project
// POST /projects/:id/join
func (h *ProjectHandler) Join(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.projectService.Join(user, id); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "joined project successfully")
}

// Members returns the project roster
// GET /projects/:id/members
func (h *ProjectHandler) Members(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	members, err := h.projectService.ListMembers(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, members)
}

// Activity returns the project's recent activity log
// GET /projects/:id/activity
func (h *ProjectHandler) Activity(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	items, err := h.activityService.ListByProject(id, 50)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, items)
}

// Statistics returns the project's aggregated statistics
// GET /projects/:id/statistics
func (h *ProjectHandler) Statistics(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	stats, err := h.statisticsService.ForProject(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
