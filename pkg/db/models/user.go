package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
)

// User represents an account: office staff (admin) or a citizen (user).
// Activation and reset tokens are stored as SHA-256 digests only.
type User struct {
	ID                  uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Username            string           `gorm:"column:username;not null"`
	Email               string           `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash        string           `gorm:"column:password_hash;not null"`
	Role                enums.UserRole   `gorm:"column:role;not null;default:'user'"`
	Status              enums.UserStatus `gorm:"column:status;not null;default:'pending'"`
	ActivationTokenHash *string          `gorm:"column:activation_token_hash"`
	ActivationExpiresAt *time.Time       `gorm:"column:activation_expires_at"`
	ResetTokenHash      *string          `gorm:"column:reset_token_hash"`
	ResetExpiresAt      *time.Time       `gorm:"column:reset_expires_at"`
	CreatedAt           time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the legacy table name.
func (User) TableName() string { return "users" }
