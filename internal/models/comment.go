package models

import (
	"time"
)

// Comment is an append-only message on a project. ParentID allows threading;
// the server never mutates or deletes comments outside a project cascade.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"index;not null" json:"project_id"`
	Project   *Project  `gorm:"foreignKey:ProjectID" json:"-"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ParentID  *uint     `gorm:"index" json:"parent_id"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`
}

func (Comment) TableName() string { return "comments" }
