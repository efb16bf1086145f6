package models

import (
	"time"
)

// Role is a user's global role. It is fixed at registration; there is no
// role-change endpoint.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleSpecialist Role = "specialist"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSpecialist:
		return true
	}
	return false
}

// CanManageProjects reports whether the role may create projects and own them.
func (r Role) CanManageProjects() bool {
	return r == RoleAdmin || r == RoleManager
}

// CanJoinProjects reports whether the role may join projects as a participant.
func (r Role) CanJoinProjects() bool {
	return r == RoleSpecialist
}

// CanAdministrate reports whether the role has full administrative access.
func (r Role) CanAdministrate() bool {
	return r == RoleAdmin
}

// User represents a system user.
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	Email     string     `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string     `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialized
	Role      Role       `gorm:"size:50;not null" json:"role"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (User) TableName() string { return "users" }
