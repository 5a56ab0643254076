package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/diewo77/gmao/internal/config"
	"github.com/diewo77/gmao/internal/models"
	migrate "github.com/golang-migrate/migrate/v4"
	// The blank import registers the postgres driver for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrate applies the versioned SQL migrations when enabled on postgres,
// and falls back to AutoMigrate otherwise (dev convenience, sqlite, tests).
func Migrate(conn *gorm.DB, cfg *config.Config) error {
	if cfg.App.Migrations && (cfg.Database.Driver == "" || cfg.Database.Driver == "postgres") {
		return runSQLMigrations(cfg.Database.URL())
	}
	return AutoMigrate(conn)
}

// AutoMigrate creates or updates every table from the gorm models.
func AutoMigrate(conn *gorm.DB) error {
	for _, m := range models.All() {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// runSQLMigrations executes the embedded migrations using golang-migrate.
func runSQLMigrations(url string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
