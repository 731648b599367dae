package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rahmadfadli/silahan-backend/pkg/config"
	redisclient "github.com/rahmadfadli/silahan-backend/pkg/redis"
	redislib "github.com/redis/go-redis/v9"
)

// ErrNoSession reports that a user has no live session.
var ErrNoSession = errors.New("no active session")

type sessionStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type sessionKeyer interface {
	UserSessionKey(userID string) string
}

// Manager keeps at most one live session id per account in Redis. Starting a
// new session overwrites the previous id, which instantly invalidates every
// credential minted against it. This replaces the old current_session_id
// column on the user row so identity data stays free of liveness state.
type Manager struct {
	store sessionStore
	keyer sessionKeyer
	ttl   time.Duration
}

// Validator exposes the read-only surface needed by middleware.
type Validator interface {
	Validate(ctx context.Context, userID, sessionID string) (bool, error)
}

// NewManager constructs a session manager backed by Redis. The session TTL
// tracks the credential expiry so abandoned sessions age out on their own.
func NewManager(client *redisclient.Client, cfg config.JWTConfig) (*Manager, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	ttl := cfg.Expiration()
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt expiration must be positive")
	}

	return &Manager{
		store: client,
		keyer: client,
		ttl:   ttl,
	}, nil
}

// Start mints a fresh session id for the user and persists it, displacing any
// prior session.
func (m *Manager) Start(ctx context.Context, userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", fmt.Errorf("user id is required")
	}
	sessionID := NewSessionID()
	if err := m.store.Set(ctx, m.keyer.UserSessionKey(userID), sessionID, m.ttl); err != nil {
		return "", err
	}
	return sessionID, nil
}

// Validate reports whether the presented session id is still the user's live one.
func (m *Manager) Validate(ctx context.Context, userID, sessionID string) (bool, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(sessionID) == "" {
		return false, nil
	}
	stored, err := m.store.Get(ctx, m.keyer.UserSessionKey(userID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return false, nil
		}
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(sessionID)) == 1, nil
}

// Revoke drops the user's live session, logging out every issued credential.
func (m *Manager) Revoke(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id is required")
	}
	return m.store.Del(ctx, m.keyer.UserSessionKey(userID))
}

// NewSessionID produces the identifier embedded as the JWT jti.
func NewSessionID() string {
	return uuid.NewString()
}
