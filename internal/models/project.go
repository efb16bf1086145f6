package models

import (
	"time"
)

// Project status values. Transitions between them are free-form: any role
// with edit rights may set any status.
const (
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectArchived  = "archived"
)

// ValidProjectStatus reports whether s is a known project status.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectActive, ProjectCompleted, ProjectArchived:
		return true
	}
	return false
}

// Project is a unit of work owned by a manager.
type Project struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:200;not null" json:"name"`
	Description    string    `gorm:"type:text" json:"description"`
	ManagerID      uint      `gorm:"index;not null" json:"manager_id"`
	Manager        *User     `gorm:"foreignKey:ManagerID" json:"-"`
	Deadline       string    `gorm:"size:10" json:"deadline"` // YYYY-MM-DD
	Status         string    `gorm:"size:20;default:active" json:"status"`
	MaxSpecialists int       `gorm:"default:0" json:"max_specialists"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Project) TableName() string { return "projects" }
