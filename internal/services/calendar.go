package services

import (
	"fmt"
	"time"

	"github.com/nazarshv/teamtrack/backend/internal/models"
	"github.com/nazarshv/teamtrack/backend/pkg/response"
	"gorm.io/gorm"
)

type CalendarService struct {
	db            *gorm.DB
	notifications *NotificationService
	activity      *ActivityService
}

func NewCalendarService(db *gorm.DB, notifications *NotificationService, activity *ActivityService) *CalendarService {
	return &CalendarService{db: db, notifications: notifications, activity: activity}
}

// EventItem is a calendar event with its creator's name resolved.
type EventItem struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventType   string    `json:"event_type"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	CreatedBy   string    `json:"created_by"`
}

// List returns the project's events in chronological order.
func (s *CalendarService) List(projectID uint) ([]EventItem, error) {
	var items []EventItem
	err := s.db.Model(&models.CalendarEvent{}).
		Select("calendar_events.id, calendar_events.title, calendar_events.description, calendar_events.event_type, calendar_events.start_time, calendar_events.end_time, users.name AS created_by").
		Joins("LEFT JOIN users ON users.id = calendar_events.created_by").
		Where("calendar_events.project_id = ?", projectID).
		Order("calendar_events.start_time").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []EventItem{}
	}
	return items, nil
}

type CreateEventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	EventType   string    `json:"event_type" binding:"required"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
}

// Create adds an event and notifies every other project member. Admins can
// post into any project; everyone else must be a member.
func (s *CalendarService) Create(user *models.User, projectID uint, req *CreateEventRequest) (*models.CalendarEvent, error) {
	if !models.ValidEventType(req.EventType) {
		return nil, response.NewBadRequest("invalid event type")
	}

	if !user.Role.CanAdministrate() {
		var count int64
		s.db.Model(&models.ProjectMember{}).
			Where("project_id = ? AND user_id = ?", projectID, user.ID).
			Count(&count)
		if count == 0 {
			return nil, response.NewForbidden("you do not have access to this project")
		}
	}

	event := models.CalendarEvent{
		ProjectID:   projectID,
		Title:       req.Title,
		Description: req.Description,
		EventType:   req.EventType,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		CreatedBy:   user.ID,
	}
	if err := s.db.Create(&event).Error; err != nil {
		return nil, err
	}

	var memberIDs []uint
	err := s.db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id != ?", projectID, user.ID).
		Pluck("user_id", &memberIDs).Error
	if err == nil {
		s.notifications.DeliverAll(memberIDs, CreateNotificationParams{
			ProjectID: &projectID,
			Type:      "new_event",
			Message:   fmt.Sprintf("A new event was added to the calendar: %s", req.Title),
		})
	}

	s.activity.Log(user.ID, &projectID, "event_created", fmt.Sprintf("Created calendar event: %s", req.Title))
	return &event, nil
}
