// Package main provides the task service entry point.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/golang/glog"

	"github.com/taskhive/taskhive/internal/db"
	"github.com/taskhive/taskhive/pkg/audit"
	"github.com/taskhive/taskhive/pkg/auth"
	"github.com/taskhive/taskhive/pkg/server"
)

func main() {
	var (
		listenAddr   string
		databaseType string
		databaseDSN  string
	)

	flag.StringVar(&listenAddr, "listen", ":8080", "Address to listen on")
	flag.StringVar(&databaseType, "db-type", "", "Database type (postgres, mysql, or sqlite)")
	flag.StringVar(&databaseDSN, "db-dsn", "", "Database connection string")
	flag.Parse()

	// Initialize glog for backwards compatibility
	_ = flag.Set("logtostderr", "true")

	// Set up structured logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if databaseDSN == "" {
		databaseDSN = os.Getenv("DATABASE_DSN")
	}
	if databaseType == "" {
		databaseType = os.Getenv("DATABASE_TYPE")
		if databaseType == "" {
			databaseType = "postgres"
		}
	}

	authCfg, err := auth.ConfigFromEnv()
	if err != nil {
		glog.Fatalf("Invalid auth config: %v", err)
	}

	gormDB, err := db.Connect(databaseType, databaseDSN)
	if err != nil {
		glog.Fatalf("Failed to connect to database: %v", err)
	}

	var opts []server.Option
	opts = append(opts, server.WithAuditConfig(audit.ConfigFromEnv()))
	if origins := os.Getenv("TASKHIVE_CORS_ORIGINS"); origins != "" {
		var allowed []string
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				allowed = append(allowed, o)
			}
		}
		opts = append(opts, server.WithCORSOrigins(allowed))
	}

	srv := server.New(gormDB, logger, authCfg, opts...)
	if err := srv.Init(); err != nil {
		glog.Fatalf("Failed to initialize server: %v", err)
	}

	router := srv.MountRoutes()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Audit retention runs in the background for the life of the process.
	go srv.StartRetention(ctx)

	logger.Info("taskhive server ready",
		"listen", listenAddr,
		"dbType", databaseType,
		"tokenTTL", authCfg.TokenTTL.String(),
	)

	httpServer := &http.Server{
		Addr:    listenAddr,
		Handler: router,
	}

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			glog.Fatalf("HTTP server error: %v", err)
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("taskhive server stopped")
}
