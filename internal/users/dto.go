package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/rahmadfadli/silahan-backend/pkg/db/models"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
)

// UserDTO is the transport shape that omits credentials and token digests.
type UserDTO struct {
	ID        uuid.UUID        `json:"id"`
	Username  string           `json:"username"`
	Email     string           `json:"email"`
	Role      enums.UserRole   `json:"role"`
	Status    enums.UserStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new account.
type CreateUserDTO struct {
	Username            string
	Email               string
	PasswordHash        string
	Role                enums.UserRole
	ActivationTokenHash *string
	ActivationExpiresAt *time.Time
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.Role
	if role == "" {
		role = enums.UserRoleUser
	}

	return &models.User{
		ID:                  uuid.New(),
		Username:            c.Username,
		Email:               c.Email,
		PasswordHash:        c.PasswordHash,
		Role:                role,
		Status:              enums.UserStatusPending,
		ActivationTokenHash: c.ActivationTokenHash,
		ActivationExpiresAt: c.ActivationExpiresAt,
	}
}
