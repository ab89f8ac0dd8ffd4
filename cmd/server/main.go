// Package main is the entry point for the salesboard server.
// It serves the sales dashboard, reports and insights to authorized
// administrators and keeps the insight cache tidy in the background.
//
// The application follows the same layering throughout:
// - Domain types are plain data (no infrastructure dependencies)
// - Dependency injection via DI container
// - API clients behind a shared transport
// - Service layer for fetch orchestration and derived metrics
// - HTTP handlers for API endpoints
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/salesboard/internal/config"
	"github.com/aristath/salesboard/internal/di"
	"github.com/aristath/salesboard/internal/server"
	"github.com/aristath/salesboard/pkg/logger"
)

// main orchestrates startup:
// 1. Loads configuration from environment variables (.env file)
// 2. Initializes logging
// 3. Wires all dependencies via DI container (cache backend, clients, services, jobs)
// 4. Starts the HTTP server and the maintenance scheduler
// 5. Waits for a shutdown signal and shuts down gracefully
func main() {
	// Load configuration first to get log level
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().
		Str("api", cfg.API.BaseURL).
		Bool("insights", cfg.InsightsEnabled()).
		Str("cache_backend", cfg.Cache.Backend).
		Msg("Starting salesboard")

	container, jobs, err := di.Wire(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	// Closing the cache database writes the final WAL checkpoint
	defer func() {
		if err := container.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close storage")
		}
	}()

	srv := server.New(server.Config{
		Log:       log,
		Config:    cfg,
		Port:      cfg.Port,
		DevMode:   cfg.DevMode,
		Container: container,
		Jobs:      jobs,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	container.Scheduler.Start()
	log.Info().Int("jobs", len(container.Scheduler.Jobs())).Msg("Scheduler started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	container.Scheduler.Stop()
	log.Info().Msg("Scheduler stopped")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
