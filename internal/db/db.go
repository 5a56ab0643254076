// Package db opens the shared connection pool, applies migrations and seeds reference data.
package db

import (
	"fmt"
	"time"

	"github.com/diewo77/gmao/internal/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectAttempts = 5

// Open connects once at startup and configures the pool shared by every request.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}

	var conn *gorm.DB
	// Retry simple pour laisser le temps à Postgres de démarrer
	for i := 0; i < connectAttempts; i++ {
		conn, err = gorm.Open(dialector, gcfg)
		if err == nil {
			break
		}
		log.Warn("database connection failed, retrying",
			zap.Int("attempt", i+1), zap.Int("max", connectAttempts), zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := Ping(conn); err != nil {
		return nil, fmt.Errorf("db ping failed: %w", err)
	}
	log.Info("database connected",
		zap.String("driver", cfg.Driver), zap.String("host", cfg.Host), zap.String("dbname", cfg.DBName))
	return conn, nil
}

// Ping runs a lightweight connectivity check.
func Ping(conn *gorm.DB) error {
	return conn.Exec("SELECT 1").Error
}

// Close releases the pool.
func Close(conn *gorm.DB) error {
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "postgres":
		return postgres.Open(cfg.DSN()), nil
	case "sqlite":
		return sqlite.Open(cfg.SQLitePath + "?_foreign_keys=on"), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}
