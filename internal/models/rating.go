package models

import (
	"time"
)

// Rating types.
const (
	RatingInterim = "interim"
	RatingFinal   = "final"
)

// Rating is a manager's numeric evaluation of a specialist on a project.
// The unique index on (project_id, specialist_id, type) makes the write an
// edit-your-last-rating upsert rather than an append.
type Rating struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProjectID    uint      `gorm:"uniqueIndex:idx_project_specialist_type;not null" json:"project_id"`
	Project      *Project  `gorm:"foreignKey:ProjectID" json:"-"`
	SpecialistID uint      `gorm:"uniqueIndex:idx_project_specialist_type;not null" json:"specialist_id"`
	Specialist   *User     `gorm:"foreignKey:SpecialistID" json:"-"`
	Rating       float64   `gorm:"not null" json:"rating"` // 0..100
	Comment      string    `gorm:"type:text" json:"comment"`
	ManagerID    uint      `gorm:"index;not null" json:"manager_id"`
	Manager      *User     `gorm:"foreignKey:ManagerID" json:"-"`
	Type         string    `gorm:"uniqueIndex:idx_project_specialist_type;size:20;default:final" json:"type"`
	Timestamp    time.Time `gorm:"autoCreateTime" json:"timestamp"`
	UpdatedAt    time.Time `json:"-"`
}

func (Rating) TableName() string { return "ratings" }
