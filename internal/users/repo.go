package users

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rahmadfadli/silahan-backend/pkg/db/models"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves the user matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByActivationTokenHash resolves the account holding the digest of an
// activation token.
func (r *Repository) FindByActivationTokenHash(ctx context.Context, digest string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("activation_token_hash = ?", digest).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByResetTokenHash resolves the account holding the digest of a reset token.
func (r *Repository) FindByResetTokenHash(ctx context.Context, digest string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("reset_token_hash = ?", digest).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Activate marks the account active and burns the activation token.
func (r *Repository) Activate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":                enums.UserStatusActive,
			"activation_token_hash": nil,
			"activation_expires_at": nil,
		}).Error
}

// SetResetToken stores the digest and expiry of a freshly issued reset token.
func (r *Repository) SetResetToken(ctx context.Context, id uuid.UUID, digest string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"reset_token_hash": digest,
			"reset_expires_at": expiresAt,
		}).Error
}

// UpdatePassword replaces the password hash and burns any reset token.
func (r *Repository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"password_hash":    passwordHash,
			"reset_token_hash": nil,
			"reset_expires_at": nil,
		}).Error
}

// DeleteNonAdmins removes every citizen account. Used by the admin reset.
func (r *Repository) DeleteNonAdmins(ctx context.Context, tx *gorm.DB) error {
	conn := r.db
	if tx != nil {
		conn = tx
	}
	return conn.WithContext(ctx).
		Where("role <> ?", enums.UserRoleAdmin).
		Delete(&models.User{}).Error
}
