package models

import (
	"time"
)

// ProjectFile is a registry row for an uploaded file. The blob itself lives
// on the filesystem at FilePath; only the path contract matters here.
type ProjectFile struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProjectID  uint      `gorm:"index;not null" json:"project_id"`
	Project    *Project  `gorm:"foreignKey:ProjectID" json:"-"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	User       *User     `gorm:"foreignKey:UserID" json:"-"`
	Filename   string    `gorm:"size:255;not null" json:"filename"`
	FileSize   int64     `json:"file_size"`
	FileType   string    `gorm:"size:20" json:"file_type"`
	FilePath   string    `gorm:"size:500;not null" json:"-"`
	UploadDate time.Time `gorm:"autoCreateTime" json:"upload_date"`
}

func (ProjectFile) TableName() string { return "files" }
