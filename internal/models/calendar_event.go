package models

import (
	"time"
)

// Calendar event types. Events are purely advisory; overlaps are not checked.
const (
	EventMeeting  = "meeting"
	EventDeadline = "deadline"
	EventOther    = "other"
)

// ValidEventType reports whether t is a known calendar event type.
func ValidEventType(t string) bool {
	switch t {
	case EventMeeting, EventDeadline, EventOther:
		return true
	}
	return false
}

// CalendarEvent is a timed event scoped to a project.
type CalendarEvent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProjectID   uint      `gorm:"index;not null" json:"project_id"`
	Project     *Project  `gorm:"foreignKey:ProjectID" json:"-"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	EventType   string    `gorm:"size:20;not null" json:"event_type"`
	StartTime   time.Time `gorm:"not null" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	CreatedBy   uint      `gorm:"index" json:"created_by"`
	Creator     *User     `gorm:"foreignKey:CreatedBy" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

func (CalendarEvent) TableName() string { return "calendar_events" }
