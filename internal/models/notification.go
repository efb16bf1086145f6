package models

import (
	"time"
)

// Notification priority values.
const (
	NotifyLow    = "low"
	NotifyNormal = "normal"
	NotifyHigh   = "high"
)

// Notification is a per-user message created as a side effect of domain
// writes. A notification is "active" iff it is unread and not expired.
// Once read it stays read; once expired it disappears from unread counts
// and listings but is never physically deleted.
type Notification struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"index;not null" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID" json:"-"`
	ProjectID  *uint      `gorm:"index" json:"project_id"`
	Project    *Project   `gorm:"foreignKey:ProjectID" json:"-"`
	Type       string     `gorm:"size:50;not null" json:"type"` // task_assigned, new_task, new_event, ...
	Message    string     `gorm:"size:500;not null" json:"message"`
	IsRead     bool       `gorm:"default:false" json:"is_read"`
	Priority   string     `gorm:"size:20;default:normal" json:"priority"`
	ExpiryDate *time.Time `gorm:"index" json:"expiry_date"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
