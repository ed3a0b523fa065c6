package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	httpapi "github.com/i474232898/season-manager/internal/api/http"
	"github.com/i474232898/season-manager/internal/config"
	"github.com/i474232898/season-manager/internal/scheduler"
	"github.com/i474232898/season-manager/internal/season"
	"github.com/i474232898/season-manager/internal/store"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	policy, err := season.NewPolicy(cfg.Policy, cfg.MarginPre, cfg.MarginPost)
	if err != nil {
		zl.Fatal("invalid season policy", zap.Error(err))
	}
	classifier := season.NewClassifier(policy,
		season.WithLogger(zl.Named("classifier")),
		season.MemoByDayOnly(cfg.MemoDayOnly),
	)

	snapshots, err := newSnapshotStore(cfg, zl.Named("store"))
	if err != nil {
		zl.Fatal("invalid snapshot store", zap.Error(err))
	}

	// Seed from the persisted snapshot before any host sample arrives.
	service := season.NewService(snapshots, classifier, zl.Named("season"))
	service.Seed()

	// Periodic best-effort checkpoint.
	sched := scheduler.New(cfg.CheckpointInterval, service, zl.Named("scheduler"))
	if err := sched.Start(); err != nil {
		zl.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "season-manager",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "season-manager",
			"policy":  policy.Name(),
		})
	})

	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zl.Warn("fiber server stopped", zap.Error(err))
		}
	}()
	zl.Info("season manager listening", zap.String("port", cfg.Port), zap.String("policy", policy.Name()))

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zl.Warn("error during shutdown", zap.Error(err))
	}

	// Host going away: persist like a plugin disable.
	if err := service.Shutdown(); err != nil {
		zl.Warn("final snapshot not saved", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = lvl
	return zc.Build()
}

func newSnapshotStore(cfg *config.AppConfig, logger *zap.Logger) (season.SnapshotStore, error) {
	if cfg.SnapshotPath == "" {
		logger.Info("no snapshot path configured; state is kept in memory only")
		return store.NewMemoryStore(cfg.SnapshotHistory, 0), nil
	}

	format, err := store.ParseFormat(cfg.SnapshotFormat)
	if err != nil {
		return nil, err
	}
	return store.NewFileStore(cfg.SnapshotPath, store.FileOptions{
		Format:      format,
		MaxFailures: uint32(cfg.BreakerFailures),
		RetryAfter:  cfg.BreakerTimeout,
		Logger:      logger,
	}), nil
}
