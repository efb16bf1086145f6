package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/nazarshv/teamtrack/backend/internal/middleware"
	"github.com/nazarshv/teamtrack/backend/internal/services"
	"github.com/nazarshv/teamtrack/backend/pkg/response"
)

type NotificationHandler struct {
	notificationService *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notifications}
}

// List returns the current user's active notifications
// GET /notifications
func (h *NotificationHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	items, err := h.notificationService.ListActive(user.ID, services.DefaultListLimit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, items)
}

// UnreadCount returns the current user's unread badge count
// GET /notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	user := middleware.CurrentUser(c)

	count, err := h.notificationService.UnreadCount(user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"unread_count": count})
}

type markReadRequest struct {
	NotificationIDs []uint `json:"notification_ids" binding:"required"`
}

// MarkRead marks the given notifications as read
// POST /notifications/mark-read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req markReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "missing notification ids")
		return
	}

	user := middleware.CurrentUser(c)
	if err := h.notificationService.MarkRead(user.ID, req.NotificationIDs); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, "notifications marked as read")
}
