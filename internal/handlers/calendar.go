package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/nazarshv/teamtrack/backend/internal/middleware"
	"github.com/nazarshv/teamtrack/backend/internal/services"
	"github.com/nazarshv/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type CalendarHandler struct {
	calendarService *services.CalendarService
}

func NewCalendarHandler(db *gorm.DB, notifications *services.NotificationService, activity *services.ActivityService) *CalendarHandler {
	return &CalendarHandler{
		calendarService: services.NewCalendarService(db, notifications, activity),
	}
}

// List returns the project's calendar events
// GET /projects/:id/calendar
func (h *CalendarHandler) List(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	events, err := h.calendarService.List(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, events)
}

// Create adds a calendar event to the project
// POST /projects/:id/calendar
func (h *CalendarHandler) Create(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req services.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user := middleware.CurrentUser(c)
	event, err := h.calendarService.Create(user, id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"message":  "event created successfully",
		"event_id": event.ID,
	})
}
