// @title           Kanban Board API
// @version         1.0
// @description     Projects, columns and ordered tasks for a drag-and-drop board

// @host      localhost:3000
// @BasePath  /api

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "kanban-board-api/docs" // Swagger docs import

	"kanban-board-api/internal/client"
	"kanban-board-api/internal/config"
	"kanban-board-api/internal/database"
	"kanban-board-api/internal/events"
	"kanban-board-api/internal/job"
	"kanban-board-api/internal/metrics"
	"kanban-board-api/internal/middleware"
	"kanban-board-api/internal/router"
	"kanban-board-api/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Kanban Board API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("storage_driver", cfg.Storage.Driver),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	backend, err := database.OpenBackend(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage backend", zap.Error(err))
	}
	defer backend.Close()

	// Initialize metrics
	m := metrics.NewWithLogger(logger)
	logger.Info("Metrics initialized")

	projectRepo, courseRepo := router.NewRepositories(backend, m)

	collector := metrics.NewBusinessMetricsCollector(projectRepo, m, logger, cfg.Metrics.CollectInterval)
	collector.Start()
	defer collector.Stop()

	// Change feed
	hub := events.NewHub(logger, m, middleware.OriginChecker(cfg.CORS.AllowedOrigins))
	go hub.Run(ctx)

	publishers := events.Multi{hub}
	if cfg.Webhook.URL != "" {
		webhook := client.NewWebhookClient(cfg.Webhook.URL, cfg.Webhook.Secret, cfg.Webhook.Timeout, logger, m)
		go webhook.Run(ctx)
		publishers = append(publishers, webhook)
		logger.Info("Webhook publisher enabled", zap.String("url", cfg.Webhook.URL))
	}

	// Scheduled backups
	if cfg.Backup.Enabled {
		var store client.BackupStore
		if cfg.S3.Enabled() {
			s3Client, err := client.NewS3Client(ctx, &cfg.S3, m)
			if err != nil {
				logger.Warn("Failed to initialize S3 client, backups stay local", zap.Error(err))
			} else {
				store = s3Client
				logger.Info("S3 client initialized",
					zap.String("bucket", cfg.S3.Bucket),
					zap.String("region", cfg.S3.Region),
				)
			}
		}

		backupJob := job.NewBackupJob(
			backend,
			[]string{storage.CollectionProjects, storage.CollectionCourses},
			cfg.Backup.Dir,
			cfg.Backup.Retain,
			store,
			m,
			logger,
		)
		scheduler, err := job.Schedule(cfg.Backup.Schedule, backupJob, logger)
		if err != nil {
			logger.Fatal("Failed to schedule backups", zap.Error(err))
		}
		scheduler.Start()
		defer scheduler.Stop()
		logger.Info("Backups scheduled",
			zap.String("schedule", cfg.Backup.Schedule),
			zap.String("dir", cfg.Backup.Dir),
		)
	}

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		Backend:        backend,
		Logger:         logger,
		BasePath:       cfg.Server.BasePath,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Metrics:        m,
		Hub:            hub,
		Publisher:      publishers,
		Ready:          backend.Ping,
		ProjectRepo:    projectRepo,
		CourseRepo:     courseRepo,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Kanban Board API started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	stop()

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
