package controllers

import (
	"net/http"

	"github.com/rahmadfadli/silahan-backend/api/responses"
	"github.com/rahmadfadli/silahan-backend/internal/dashboard"
	pkgerrors "github.com/rahmadfadli/silahan-backend/pkg/errors"
	"github.com/rahmadfadli/silahan-backend/pkg/logger"
)

// DashboardOverview serves the admin statistics screen.
func DashboardOverview(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		result, err := svc.Overview(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
