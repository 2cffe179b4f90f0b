// Package server assembles the HTTP API: stores, auth gate, routers, and
// health endpoints.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"gorm.io/gorm"

	"github.com/taskhive/taskhive/pkg/apierr"
	"github.com/taskhive/taskhive/pkg/audit"
	"github.com/taskhive/taskhive/pkg/auth"
	"github.com/taskhive/taskhive/pkg/tasks"
	"github.com/taskhive/taskhive/pkg/users"
)

// Version is the API version reported by the health endpoint.
const Version = "1.0.0"

// Server wires the task service together and owns its HTTP router.
type Server struct {
	router      chi.Router
	db          *gorm.DB
	logger      *slog.Logger
	corsOrigins []string

	codec      *auth.Codec
	reporter   *apierr.Reporter
	userStore  *users.Store
	taskStore  *tasks.Store
	auditCfg   *audit.Config
	auditStore *audit.Store

	startedAt time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithCORSOrigins sets the allowed CORS origins. Defaults to
// http://localhost:3000.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.corsOrigins = origins
		}
	}
}

// WithAuditConfig sets the audit configuration. When enabled, authorization
// denials are persisted via an audit store created during Init.
func WithAuditConfig(cfg *audit.Config) Option {
	return func(s *Server) {
		s.auditCfg = cfg
	}
}

// New creates a Server. Call Init before MountRoutes.
func New(db *gorm.DB, logger *slog.Logger, authCfg auth.Config, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		db:          db,
		logger:      logger,
		corsOrigins: []string{"http://localhost:3000"},
		codec:       auth.NewCodec(authCfg),
		userStore:   users.NewStore(db),
		taskStore:   tasks.NewStore(db),
		auditCfg:    audit.DefaultConfig(),
		startedAt:   time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Init migrates the database schema and builds the failure reporter.
func (s *Server) Init() error {
	if err := s.userStore.AutoMigrate(); err != nil {
		return err
	}
	if err := s.taskStore.AutoMigrate(); err != nil {
		return err
	}

	if s.auditCfg != nil && s.auditCfg.Enabled {
		s.auditStore = audit.NewStore(s.db)
		if err := s.auditStore.AutoMigrate(); err != nil {
			return err
		}
		s.logger.Info("audit trail enabled", "retentionDays", s.auditCfg.RetentionDays)
	}

	s.reporter = apierr.NewReporter(s.logger, s.auditStore)
	return nil
}

// MountRoutes creates the HTTP router with all endpoints mounted.
func (s *Server) MountRoutes() chi.Router {
	s.router = chi.NewRouter()

	// Add common middleware
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	userHandler := users.NewHandler(s.userStore, s.codec, s.reporter, s.logger)
	taskHandler := tasks.NewHandler(s.taskStore, s.reporter, s.logger)

	// The gate is the only way into /tasks; tasks.Router refuses a nil gate.
	gate := auth.RequireAuth(s.codec, s.userStore, s.reporter)

	s.router.Mount("/auth", users.Router(userHandler))
	s.router.Mount("/tasks", tasks.Router(taskHandler, gate))

	// Health endpoints
	s.router.Get("/", s.rootHandler)
	s.router.Get("/healthz", s.healthHandler)
	s.router.Get("/livez", s.healthHandler)
	s.router.Get("/readyz", s.readyHandler)

	return s.router
}

// StartRetention runs the audit retention worker until ctx is cancelled.
// No-op when the audit trail is disabled.
func (s *Server) StartRetention(ctx context.Context) {
	if s.auditStore == nil || s.auditCfg == nil {
		return
	}
	worker := audit.NewRetentionWorker(s.auditStore, s.auditCfg.RetentionDays, s.logger)
	worker.Run(ctx)
}

func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "TaskHive API is running",
		"version": Version,
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(s.startedAt).Round(time.Second).String(),
	})
}

func (s *Server) readyHandler(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		s.logger.Error("readiness check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
