package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/rahmadfadli/silahan-backend/api/middleware"
	"github.com/rahmadfadli/silahan-backend/internal/submissions"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
	pkgerrors "github.com/rahmadfadli/silahan-backend/pkg/errors"
)

// actorFromRequest rebuilds the authenticated actor from the context seeded by
// the auth middleware.
func actorFromRequest(r *http.Request) (submissions.Actor, error) {
	rawID := middleware.UserIDFromContext(r.Context())
	if rawID == "" {
		return submissions.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return submissions.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	role, err := enums.ParseUserRole(middleware.RoleFromContext(r.Context()))
	if err != nil {
		return submissions.Actor{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	return submissions.Actor{ID: userID, Role: role}, nil
}
