package controllers

import (
	"net/http"

	"github.com/rahmadfadli/silahan-backend/api/responses"
	"github.com/rahmadfadli/silahan-backend/internal/admin"
	pkgerrors "github.com/rahmadfadli/silahan-backend/pkg/errors"
	"github.com/rahmadfadli/silahan-backend/pkg/logger"
)

// AdminResetDatabase wipes all submission data and citizen accounts.
func AdminResetDatabase(svc admin.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "admin service unavailable"))
			return
		}

		if err := svc.ResetDatabase(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "reset"})
	}
}
