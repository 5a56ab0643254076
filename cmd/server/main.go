package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/gmao/internal/blob"
	"github.com/diewo77/gmao/internal/config"
	"github.com/diewo77/gmao/internal/db"
	"github.com/diewo77/gmao/internal/flows"
	"github.com/diewo77/gmao/internal/logging"
	"github.com/diewo77/gmao/internal/metrics"
	"github.com/diewo77/gmao/internal/policy"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB seed and exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logging.New(cfg.App.Dev, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	conn, err := db.Open(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = db.Close(conn) }()

	if *migrateOnlyFlag {
		if err := db.Migrate(conn, cfg); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		log.Info("migrations completed successfully")
		return nil
	}
	if *seedOnlyFlag {
		if err := db.Seed(conn, cfg.Seed); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		log.Info("seeding completed successfully")
		return nil
	}

	if err := prepare(conn, cfg, log); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appHandler, err := buildApp(ctx, conn, cfg, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      appHandler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("port", cfg.Server.Port), zap.Bool("dev", cfg.App.Dev))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	log.Info("server stopped gracefully")
	return nil
}

// prepare migrates and seeds the database at startup.
func prepare(conn *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	if err := db.Migrate(conn, cfg); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	log.Info("migrations completed")
	if cfg.App.Seed {
		if err := db.Seed(conn, cfg.Seed); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
	}
	return nil
}

// buildApp wires the AI model, blob store, metrics and handlers.
func buildApp(ctx context.Context, conn *gorm.DB, cfg *config.Config, log *zap.Logger) (*App, error) {
	reg := metrics.New()

	var model flows.Model
	gm, err := flows.NewGeminiModel(ctx, cfg.AI.APIKey)
	switch {
	case errors.Is(err, flows.ErrNotConfigured):
		log.Warn("no AI API key configured, AI flows are disabled")
	case err != nil:
		return nil, err
	default:
		model = gm
	}

	store, err := blob.New(ctx, cfg.Blob)
	if err != nil {
		return nil, fmt.Errorf("blob store: %w", err)
	}

	routerCfg, err := policy.NewRouterConfig(policy.Deps{
		DB:      conn,
		Flows:   flows.New(model, cfg.AI, log, reg),
		Blob:    store,
		Metrics: reg,
		Log:     log,
	})
	if err != nil {
		return nil, err
	}
	return NewApp(routerCfg, reg, log), nil
}
