package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookhub/database"
	"bookhub/internal/config"
	"bookhub/internal/http-api/repository"
	"bookhub/internal/http-api/router"
	"bookhub/internal/http-api/service"
	"bookhub/internal/logging"
	"bookhub/internal/middleware/auth"
	"bookhub/internal/summarizer"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Setup structured logging
	logger, closer, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Dir:    cfg.LogDir,
	})
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	pool, err := database.Connect(ctx, cfg, logger)
	cancel()
	if err != nil {
		logger.Error("database_connect_failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	db, err := database.OpenGorm(pool, logger)
	if err != nil {
		logger.Error("database_open_failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db, logger); err != nil {
		logger.Error("database_migrate_failed", "error", err)
		os.Exit(1)
	}

	// Access guard
	var guard *auth.Guard
	if cfg.AdminPasswordHash != "" {
		guard, err = auth.NewGuardWithHash(cfg.AdminUsername, cfg.AdminPasswordHash, logger)
	} else {
		guard, err = auth.NewGuard(cfg.AdminUsername, cfg.AdminPassword, logger)
	}
	if err != nil {
		logger.Error("auth_setup_failed", "error", err)
		os.Exit(1)
	}

	// Repositories and services
	bookRepo := repository.NewBookRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	gateway := summarizer.NewGateway(summarizer.OptionsFromConfig(cfg, logger))

	engine := router.New(router.Dependencies{
		Logger:          logger,
		Guard:           guard,
		DB:              pool,
		RequestTimeout:  cfg.RequestTimeout,
		MetricsEnabled:  cfg.MetricsEnabled,
		Books:           service.NewBookService(bookRepo),
		Reviews:         service.NewReviewService(reviewRepo, bookRepo),
		Recommendations: service.NewRecommendationService(bookRepo),
		Summaries:       service.NewSummaryService(bookRepo, reviewRepo, gateway, cfg.RequestTimeout, logger),
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("starting_http_server",
		"addr", server.Addr,
		"env", cfg.GoEnv,
		"summarizer_model", cfg.SummarizerModel,
		"metrics_enabled", cfg.MetricsEnabled,
	)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		logger.Info("received_shutdown_signal")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server_shutdown_failed", "error", err)
			return
		}
		logger.Info("server_stopped_gracefully")
	case err := <-errChan:
		logger.Error("server_error", "error", err.Error())
		os.Exit(1)
	}
}
