package validators

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	pkgerrors "github.com/rahmadfadli/silahan-backend/pkg/errors"
)

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func decodeRequest(t *testing.T, body string, dest any) error {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	return DecodeJSONBody(req, dest)
}

func TestDecodeJSONBodyHappyPath(t *testing.T) {
	var dest loginBody
	err := decodeRequest(t, `{"email":"warga@example.com","password":"rahasia-123"}`, &dest)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dest.Email != "warga@example.com" {
		t.Fatalf("unexpected email %q", dest.Email)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	var dest loginBody
	err := decodeRequest(t, `{"email":"warga@example.com","password":"rahasia-123","role":"admin"}`, &dest)
	if err == nil {
		t.Fatal("expected unknown field rejection")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	var dest loginBody
	if err := decodeRequest(t, `{"email":`, &dest); err == nil {
		t.Fatal("expected decode failure")
	}
}

func TestDecodeJSONBodyValidationMessages(t *testing.T) {
	var dest loginBody
	err := decodeRequest(t, `{"email":"not-an-email","password":"abc"}`, &dest)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field message map, got %T", typed.Details())
	}
	// field keys come from the json tags, not the Go names
	if details["email"] != "must be a valid email" {
		t.Fatalf("unexpected email message %q", details["email"])
	}
	if details["password"] != "must be at least 8" {
		t.Fatalf("unexpected password message %q", details["password"])
	}
}

func TestUUIDParam(t *testing.T) {
	want := uuid.New()

	newRequest := func(value string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", value)
		req := httptest.NewRequest(http.MethodGet, "/api/pengajuan/"+value, nil)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	got, err := UUIDParam(newRequest(want.String()), "id")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}

	if _, err := UUIDParam(newRequest("not-a-uuid"), "id"); err == nil {
		t.Fatal("expected invalid UUID rejection")
	}
	if _, err := UUIDParam(httptest.NewRequest(http.MethodGet, "/api/pengajuan", nil), "id"); err == nil {
		t.Fatal("expected missing parameter rejection")
	}
}
