package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rahmadfadli/silahan-backend/pkg/db/models"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	ddl := `CREATE TABLE users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'user',
  status TEXT NOT NULL DEFAULT 'pending',
  activation_token_hash TEXT,
  activation_expires_at DATETIME,
  reset_token_hash TEXT,
  reset_expires_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	if err := conn.Exec(ddl).Error; err != nil {
		t.Fatalf("create schema: %v", err)
	}
	return conn
}

func createTestUser(t *testing.T, repo *Repository, digest string) *models.User {
	t.Helper()
	expires := time.Now().UTC().Add(time.Hour)
	dto := CreateUserDTO{
		Username:     "warga",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
	}
	if digest != "" {
		dto.ActivationTokenHash = &digest
		dto.ActivationExpiresAt = &expires
	}
	user, err := repo.Create(context.Background(), dto)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestRepositoryCreateDefaults(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	user := createTestUser(t, repo, "")

	if user.ID == uuid.Nil {
		t.Fatalf("expected generated id")
	}
	if user.Role != enums.UserRoleUser {
		t.Fatalf("expected default role user, got %s", user.Role)
	}
	if user.Status != enums.UserStatusPending {
		t.Fatalf("expected pending status, got %s", user.Status)
	}
}

func TestRepositoryActivateBurnsToken(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	ctx := context.Background()
	user := createTestUser(t, repo, "digest-1")

	found, err := repo.FindByActivationTokenHash(ctx, "digest-1")
	if err != nil {
		t.Fatalf("find by activation digest: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, found.ID)
	}

	if err := repo.Activate(ctx, user.ID); err != nil {
		t.Fatalf("activate: %v", err)
	}

	reloaded, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != enums.UserStatusActive {
		t.Fatalf("expected active status, got %s", reloaded.Status)
	}
	if reloaded.ActivationTokenHash != nil {
		t.Fatalf("expected activation token burned")
	}
	if _, err := repo.FindByActivationTokenHash(ctx, "digest-1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected burned digest to miss, got %v", err)
	}
}

func TestRepositoryResetTokenRoundTrip(t *testing.T) {
	repo := NewRepository(setupUsersTestDB(t))
	ctx := context.Background()
	user := createTestUser(t, repo, "")

	expires := time.Now().UTC().Add(time.Hour)
	if err := repo.SetResetToken(ctx, user.ID, "reset-digest", expires); err != nil {
		t.Fatalf("set reset token: %v", err)
	}

	found, err := repo.FindByResetTokenHash(ctx, "reset-digest")
	if err != nil {
		t.Fatalf("find by reset digest: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, found.ID)
	}

	if err := repo.UpdatePassword(ctx, user.ID, "new-hash"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	reloaded, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.PasswordHash != "new-hash" {
		t.Fatalf("expected new password hash")
	}
	if reloaded.ResetTokenHash != nil || reloaded.ResetExpiresAt != nil {
		t.Fatalf("expected reset token burned")
	}
}

func TestRepositoryDeleteNonAdmins(t *testing.T) {
	conn := setupUsersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	createTestUser(t, repo, "")
	admin := &models.User{
		ID:           uuid.New(),
		Username:     "petugas",
		Email:        "petugas@example.com",
		PasswordHash: "hash",
		Role:         enums.UserRoleAdmin,
		Status:       enums.UserStatusActive,
	}
	if err := conn.Create(admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	if err := repo.DeleteNonAdmins(ctx, nil); err != nil {
		t.Fatalf("delete non admins: %v", err)
	}

	var count int64
	if err := conn.Model(&models.User{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected only the admin left, got %d", count)
	}
	if _, err := repo.FindByID(ctx, admin.ID); err != nil {
		t.Fatalf("expected admin preserved: %v", err)
	}
}
