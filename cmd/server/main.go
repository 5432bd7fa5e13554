package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tunehub/musician-media/pkg/musicmedia"
	"github.com/tunehub/musician-media/pkg/musicmedia/api"
	"github.com/tunehub/musician-media/pkg/musicmedia/config"
)

func main() {
	// Optional .env for local development; real deployments use the
	// environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load server configuration: %v", err)
	}

	logger, err := buildLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()
	svc, cleanup, err := cfg.BuildService(ctx, logger)
	if err != nil {
		logger.Fatal("failed to build service", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: routes(svc, cfg, logger),
	}

	go func() {
		logger.Info("musician media server starting",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("database", cfg.DatabaseType),
			zap.String("storage_backend", cfg.StorageBackend))

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	if err := cleanup(shutdownCtx); err != nil {
		logger.Error("cleanup failed", zap.Error(err))
	}

	logger.Info("server exiting")
}

func buildLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func routes(svc musicmedia.Service, cfg *config.ServerConfig, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "environment": %q, "storage_backend": %q}`,
			cfg.Environment, cfg.StorageBackend)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/media", api.NewMediaHandler(svc, logger).Routes())
		r.Mount("/profiles", api.NewProfileHandler(svc, logger).Routes())
		r.Mount("/ratings", api.NewRatingHandler(svc, logger).Routes())
	})

	return r
}
