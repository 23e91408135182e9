package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/edufuturoia-commits/aula-core/internal/academic"
	api "github.com/edufuturoia-commits/aula-core/internal/api/http"
	auth "github.com/edufuturoia-commits/aula-core/internal/auth/middleware"
	"github.com/edufuturoia-commits/aula-core/internal/config"
	"github.com/edufuturoia-commits/aula-core/internal/db"
	"github.com/edufuturoia-commits/aula-core/internal/rbac"
	"github.com/edufuturoia-commits/aula-core/internal/roster"
)

func main() {
	cfg := config.FromEnv()

	var log *zap.Logger
	var err error
	if cfg.Mode == config.ModeOnline {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatal("db open failed", zap.Error(err))
	}
	if err := ensureAdminUser(ctx, dbh, cfg); err != nil {
		log.Fatal("seed admin user", zap.Error(err))
	}

	books := academic.NewSQLStore(dbh, cfg.DBDriver)
	people := roster.NewSQLStore(dbh, cfg.DBDriver)
	svc := academic.NewService(books, rbac.DefaultChecker(), log)

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		// Gradebooks: viewing also lazily instantiates per key
		pr.With(rbac.Require("gradebook:view")).
			Get("/gradebooks", api.EnsureGradebookHandler(svc))

		pr.With(rbac.Require("gradebook:edit")).
			Post("/gradebooks/{gradebookID}/items", api.AddItemHandler(svc))
		pr.With(rbac.Require("gradebook:edit")).
			Put("/gradebooks/{gradebookID}/items/{itemID}", api.UpdateItemHandler(svc))
		pr.With(rbac.Require("gradebook:edit")).
			Delete("/gradebooks/{gradebookID}/items/{itemID}", api.RemoveItemHandler(svc))
		pr.With(rbac.Require("gradebook:edit")).
			Put("/gradebooks/{gradebookID}/scores", api.PutScoreHandler(svc))
		pr.With(rbac.Require("gradebook:edit")).
			Put("/gradebooks/{gradebookID}/observations/{studentID}", api.SetObservationHandler(svc))
		pr.With(rbac.Require("gradebook:edit")).
			Put("/gradebooks/{gradebookID}/descriptors", api.SetPeriodDescriptorsHandler(svc))

		// Lock transitions: coordinator/rector/admin only. The service
		// re-checks the role, the middleware just fails fast.
		pr.With(rbac.Require("gradebook:lock")).
			Post("/gradebooks/{gradebookID}/lock", api.SetLockHandler(svc, true))
		pr.With(rbac.Require("gradebook:lock")).
			Post("/gradebooks/{gradebookID}/unlock", api.SetLockHandler(svc, false))

		// Reporting surfaces
		pr.With(rbac.Require("reports:view")).
			Get("/reports/students", api.StudentReportHandler(people, books))
		pr.With(rbac.Require("reports:view")).
			Get("/reports/subjects", api.SubjectReportHandler(people, books))
		pr.With(rbac.Require("reports:view")).
			Get("/reports/distribution", api.DistributionHandler(people, books))
		pr.With(rbac.Require("reports:view")).
			Get("/reports/top", api.TopStudentsHandler(people, books))
		pr.With(rbac.Require("reports:view")).
			Get("/reports/at-risk", api.AtRiskHandler(people, books))
		pr.With(rbac.Require("reports:view")).
			Get("/reports/comparison", api.ComparisonHandler(people, books))
		pr.With(rbac.RequireAny("reports:view-own", "reports:view")).
			Get("/reports/me", api.MyReportHandler(people, books))

		// Roster
		pr.With(rbac.Require("roster:view")).
			Get("/students", api.ListStudentsHandler(people))
		pr.With(rbac.Require("roster:edit")).
			Put("/people", api.UpsertPersonHandler(people))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Info("listening",
		zap.String("addr", cfg.HTTPAddr),
		zap.String("mode", string(cfg.Mode)),
		zap.String("db", cfg.DBDriver))
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// ensureAdminUser seeds the configured admin account on first boot so a
// fresh deployment can log in and create the rest of the users.
func ensureAdminUser(ctx context.Context, dbh *sql.DB, cfg config.Config) error {
	var exists int
	err := dbh.QueryRowContext(ctx, `SELECT 1 FROM users WHERE username=$1`, cfg.AdminUser).Scan(&exists)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	_, err = dbh.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, role, created_at) VALUES ($1,$2,$3,$4,$5)`,
		"admin", cfg.AdminUser, cfg.AdminPassHash, "admin", time.Now().Unix())
	return err
}
