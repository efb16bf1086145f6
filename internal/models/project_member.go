package models

import (
	"time"
)

// ProjectMember links a user to a project with the role they joined under.
// The role is a denormalized copy of the user's global role at join time.
type ProjectMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	UserID    uint      `gorm:"uniqueIndex:idx_project_user;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      Role      `gorm:"size:50;not null" json:"role"`
	JoinDate  time.Time `gorm:"autoCreateTime" json:"join_date"`
}

func (ProjectMember) TableName() string { return "project_members" }
