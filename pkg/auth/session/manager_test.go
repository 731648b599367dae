package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockStore) UserSessionKey(userID string) string {
	return fmt.Sprintf("sess:user:%s", userID)
}

func newTestManager() (*Manager, *mockStore) {
	store := newMockStore()
	return &Manager{store: store, keyer: store, ttl: time.Hour}, store
}

func TestManagerStartDisplacesPriorSession(t *testing.T) {
	manager, store := newTestManager()
	ctx := context.Background()
	userID := "user-1"

	first, err := manager.Start(ctx, userID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if ok, err := manager.Validate(ctx, userID, first); err != nil || !ok {
		t.Fatalf("expected first session valid, got ok=%v err=%v", ok, err)
	}

	second, err := manager.Start(ctx, userID)
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if first == second {
		t.Fatalf("expected a fresh session id")
	}
	if ok, _ := manager.Validate(ctx, userID, first); ok {
		t.Fatalf("expected first session displaced")
	}
	if ok, _ := manager.Validate(ctx, userID, second); !ok {
		t.Fatalf("expected second session live")
	}
	if stored := store.data[store.UserSessionKey(userID)]; stored != second {
		t.Fatalf("expected stored session %q, got %q", second, stored)
	}
}

func TestManagerValidateMissingSession(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()

	ok, err := manager.Validate(ctx, "user-1", "anything")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if ok {
		t.Fatalf("expected no session to validate")
	}

	// blank inputs never validate and never error
	if ok, err := manager.Validate(ctx, "", "x"); err != nil || ok {
		t.Fatalf("expected blank user id to fail closed, got ok=%v err=%v", ok, err)
	}
}

func TestManagerRevoke(t *testing.T) {
	manager, _ := newTestManager()
	ctx := context.Background()
	userID := "user-1"

	sessionID, err := manager.Start(ctx, userID)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := manager.Revoke(ctx, userID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if ok, _ := manager.Validate(ctx, userID, sessionID); ok {
		t.Fatalf("expected revoked session to be invalid")
	}
}
