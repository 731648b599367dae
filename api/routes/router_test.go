package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/rahmadfadli/silahan-backend/pkg/auth"
	"github.com/rahmadfadli/silahan-backend/pkg/config"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
)

type allowAllSessions struct{}

func (allowAllSessions) Validate(ctx context.Context, userID, sessionID string) (bool, error) {
	return true, nil
}

type healthyPinger struct{}

func (healthyPinger) Ping(ctx context.Context) error { return nil }

func routerTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "silahan",
			ExpirationMinutes: 30,
		},
	}
}

func newTestRouter() http.Handler {
	return NewRouter(Deps{
		Config:      routerTestConfig(),
		Sessions:    allowAllSessions{},
		DBPinger:    healthyPinger{},
		RedisPinger: healthyPinger{},
	})
}

func TestRouterHealthLive(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if env := rec.Header().Get("X-Silahan-Env"); env != "test" {
		t.Fatalf("expected env header, got %q", env)
	}
}

func TestRouterHealthReady(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with healthy pingers, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouterProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter()
	for _, path := range []string{"/api/pengajuan/user", "/api/profile", "/api/dashboard", "/api/jenis-pengajuan/"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without token, got %d", path, rec.Code)
		}
	}
}

func TestRouterAdminRoutesRefuseCitizens(t *testing.T) {
	cfg := routerTestConfig()
	signed, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleUser,
		JTI:    "sess-1",
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for citizen on admin route, got %d", rec.Code)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
