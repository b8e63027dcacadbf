package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles. Staff can read inventory and mutate stock; product catalog and
// user management require admin.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"not null;default:'staff'"`
	Active       bool      `gorm:"not null;default:true"`

	// Password reset flow: token is single-use and time-boxed.
	ResetToken          *string `gorm:"index"`
	ResetTokenExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
