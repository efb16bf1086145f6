package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nazarshv/teamtrack/backend/internal/middleware"
	"github.com/nazarshv/teamtrack/backend/internal/services"
	"github.com/nazarshv/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type UserHandler struct {
	userService       *services.UserService
	statisticsService *services.StatisticsService
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{
		userService:       services.NewUserService(db),
		statisticsService: services.NewStatisticsService(db),
	}
}

// List returns the user directory with aggregates (admin only)
// GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, users)
}

// Delete removes a user and their data (admin only)
// DELETE /users/:user_id
func (h *UserHandler) Delete(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	if err := h.userService.Delete(uint(userID)); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "user deleted successfully")
}

// Statistics returns one user's cross-project statistics
// GET /users/:user_id/statistics
func (h *UserHandler) Statistics(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid user id")
		return
	}

	viewer := middleware.CurrentUser(c)
	stats, err := h.statisticsService.ForUser(viewer, uint(userID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}
