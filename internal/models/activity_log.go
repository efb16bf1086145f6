package models

import (
	"time"
)

// ActivityLog is an append-only record of who did what, optionally scoped to
// a project. Entries are never mutated; they are removed only by project
// cascade delete and the retention sweeper.
type ActivityLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index;not null" json:"user_id"`
	User          *User     `gorm:"foreignKey:UserID" json:"-"`
	ProjectID     *uint     `gorm:"index" json:"project_id"`
	ActionType    string    `gorm:"size:50;not null" json:"action_type"`
	ActionDetails string    `gorm:"size:500" json:"action_details"`
	Timestamp     time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}

func (ActivityLog) TableName() string { return "user_activity" }
