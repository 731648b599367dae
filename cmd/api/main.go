package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/rahmadfadli/silahan-backend/api/routes"
	adminsvc "github.com/rahmadfadli/silahan-backend/internal/admin"
	"github.com/rahmadfadli/silahan-backend/internal/auth"
	"github.com/rahmadfadli/silahan-backend/internal/catalog"
	"github.com/rahmadfadli/silahan-backend/internal/dashboard"
	"github.com/rahmadfadli/silahan-backend/internal/docgen"
	"github.com/rahmadfadli/silahan-backend/internal/submissions"
	"github.com/rahmadfadli/silahan-backend/internal/users"
	"github.com/rahmadfadli/silahan-backend/pkg/auth/session"
	"github.com/rahmadfadli/silahan-backend/pkg/config"
	"github.com/rahmadfadli/silahan-backend/pkg/db"
	"github.com/rahmadfadli/silahan-backend/pkg/logger"
	"github.com/rahmadfadli/silahan-backend/pkg/mailer"
	"github.com/rahmadfadli/silahan-backend/pkg/metrics"
	"github.com/rahmadfadli/silahan-backend/pkg/migrate"
	"github.com/rahmadfadli/silahan-backend/pkg/pdf"
	"github.com/rahmadfadli/silahan-backend/pkg/redis"
	"github.com/rahmadfadli/silahan-backend/pkg/storage/filehost"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	usersRepo := users.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	submissionsRepo := submissions.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		Mailer:         mailer.New(cfg.Mail, cfg.App, logg),
		Logger:         logg,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		TokenConfig:    cfg.Tokens,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	submissionsService, err := submissions.NewService(submissions.ServiceParams{
		DB:              dbClient,
		Repo:            submissionsRepo,
		Types:           catalogRepo,
		RejectionPolicy: cfg.Lifecycle.Policy(),
		Logger:          logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create submissions service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalog.ServiceParams{
		Repo:        catalogRepo,
		Submissions: submissionsService,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	renderer, err := pdf.NewChromeRenderer(cfg.DocGen)
	if err != nil {
		logg.Error(context.Background(), "failed to create pdf renderer", err)
		os.Exit(1)
	}

	uploader, err := filehost.NewClient(cfg.DocGen, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create file host client", err)
		os.Exit(1)
	}

	docgenService, err := docgen.NewService(docgen.ServiceParams{
		Repo:     submissionsRepo,
		Renderer: renderer,
		Uploader: uploader,
		Config:   cfg.DocGen,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create docgen service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(dashboard.ServiceParams{
		DB:          dbClient.DB(),
		Submissions: submissionsRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	adminService, err := adminsvc.NewService(adminsvc.ServiceParams{
		DB:     dbClient,
		Logger: logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create admin service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			Metrics:     metrics.NewHTTPMetrics(),
			Sessions:    sessionManager,
			DBPinger:    dbClient,
			RedisPinger: redisClient,

			AuthService:        authService,
			CatalogService:     catalogService,
			SubmissionsService: submissionsService,
			DocgenService:      docgenService,
			DashboardService:   dashboardService,
			AdminService:       adminService,
			UsersRepo:          usersRepo,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
