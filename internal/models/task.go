package models

import (
	"time"
)

// Task status values. The board presents them as a linear progression
// (not_started → in_progress → completed) but the server accepts any valid
// value as a target status.
const (
	TaskNotStarted = "not_started"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
)

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskNotStarted, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// Task priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidTaskPriority reports whether p is a known task priority.
func ValidTaskPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a kanban card scoped to a project.
type Task struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProjectID   uint      `gorm:"index;not null" json:"project_id"`
	Project     *Project  `gorm:"foreignKey:ProjectID" json:"-"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"size:20;default:not_started" json:"status"`
	Deadline    string    `gorm:"size:10" json:"deadline"`
	AssignedTo  *uint     `gorm:"index" json:"assigned_to"`
	Assignee    *User     `gorm:"foreignKey:AssignedTo" json:"-"`
	Priority    string    `gorm:"size:20;default:medium" json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Task) TableName() string { return "tasks" }
