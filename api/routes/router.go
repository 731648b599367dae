package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rahmadfadli/silahan-backend/api/controllers"
	"github.com/rahmadfadli/silahan-backend/api/middleware"
	adminsvc "github.com/rahmadfadli/silahan-backend/internal/admin"
	"github.com/rahmadfadli/silahan-backend/internal/auth"
	"github.com/rahmadfadli/silahan-backend/internal/catalog"
	"github.com/rahmadfadli/silahan-backend/internal/dashboard"
	"github.com/rahmadfadli/silahan-backend/internal/docgen"
	"github.com/rahmadfadli/silahan-backend/internal/submissions"
	"github.com/rahmadfadli/silahan-backend/internal/users"
	"github.com/rahmadfadli/silahan-backend/pkg/auth/session"
	"github.com/rahmadfadli/silahan-backend/pkg/config"
	"github.com/rahmadfadli/silahan-backend/pkg/enums"
	"github.com/rahmadfadli/silahan-backend/pkg/logger"
	"github.com/rahmadfadli/silahan-backend/pkg/metrics"
)

// Deps carries everything the route tree needs.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Metrics     *metrics.HTTPMetrics
	Sessions    session.Validator
	DBPinger    controllers.Pinger
	RedisPinger controllers.Pinger

	AuthService        auth.Service
	CatalogService     catalog.Service
	SubmissionsService submissions.Service
	DocgenService      docgen.Service
	DashboardService   dashboard.Service
	AdminService       adminsvc.Service
	UsersRepo          *users.Repository
}

// NewRouter assembles the chi route tree with the shared middleware stack.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}
	r.Use(middleware.CORS())

	authGuard := middleware.Auth(cfg.JWT, deps.Sessions, logg)
	adminOnly := middleware.RequireRole(string(enums.UserRoleAdmin), logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": deps.DBPinger,
			"redis":    deps.RedisPinger,
		}))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.Get("/activate/{token}", controllers.AuthActivate(deps.AuthService, logg))
		r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/forgot-password", controllers.AuthForgotPassword(deps.AuthService, logg))
		r.Post("/reset-password", controllers.AuthResetPassword(deps.AuthService, logg))
		r.With(authGuard).Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
	})

	r.Route("/api/jenis-pengajuan", func(r chi.Router) {
		r.Use(authGuard)
		r.Get("/", controllers.CatalogListJenis(deps.CatalogService, logg))
		r.Get("/{id}", controllers.CatalogGetJenis(deps.CatalogService, logg))
		r.With(adminOnly).Post("/", controllers.CatalogCreateJenis(deps.CatalogService, logg))
	})

	r.Route("/api/persyaratan", func(r chi.Router) {
		r.Use(authGuard)
		r.Get("/", controllers.CatalogListPersyaratan(deps.CatalogService, logg))
		r.With(adminOnly).Post("/", controllers.CatalogCreatePersyaratan(deps.CatalogService, logg))
		r.With(adminOnly).Put("/{id}", controllers.CatalogUpdatePersyaratan(deps.CatalogService, logg))
		r.With(adminOnly).Delete("/{id}", controllers.CatalogDeletePersyaratan(deps.CatalogService, logg))
	})

	r.Route("/api/pengajuan", func(r chi.Router) {
		r.Use(authGuard)

		r.Post("/", controllers.SubmissionCreate(deps.SubmissionsService, logg))
		r.Get("/user", controllers.SubmissionListMine(deps.SubmissionsService, logg))
		r.Get("/{id}", controllers.SubmissionGet(deps.SubmissionsService, logg))
		r.Put("/{id}", controllers.SubmissionUpdate(deps.SubmissionsService, logg))
		r.Delete("/{id}", controllers.SubmissionDelete(deps.SubmissionsService, logg))

		r.With(adminOnly).Get("/", controllers.SubmissionListAll(deps.SubmissionsService, logg))
		r.With(adminOnly).Patch("/documents/{id}/status", controllers.SubmissionReviewDocument(deps.SubmissionsService, logg))
		r.With(adminOnly).Patch("/{id}/reject", controllers.SubmissionForceReject(deps.SubmissionsService, logg))

		r.With(adminOnly).Get("/{id}/document/prepare", controllers.DocgenPrepare(deps.DocgenService, logg))
		r.With(adminOnly).Post("/{id}/document/draft", controllers.DocgenGenerateDraft(deps.DocgenService, logg))
		r.With(adminOnly).Post("/{id}/document/send", controllers.DocgenSend(deps.DocgenService, logg))
	})

	r.With(authGuard).Get("/api/profile", controllers.Profile(deps.UsersRepo, logg))
	r.With(authGuard, adminOnly).Get("/api/dashboard", controllers.DashboardOverview(deps.DashboardService, logg))
	r.With(authGuard, adminOnly).Delete("/api/admin/reset-database", controllers.AdminResetDatabase(deps.AdminService, logg))

	return r
}
