package model

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account in the system. Only admins can reach the
// content-management endpoints.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"` // Never expose password in JSON
	Role         string         `gorm:"type:varchar(20);default:'user'" json:"role"` // admin, user
	TokenVersion int            `gorm:"default:0" json:"-"`                          // Increment to invalidate all user tokens

	// Relationships
	Posts []BlogPost `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsAdmin reports whether the user may perform admin mutations
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
