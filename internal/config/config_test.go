package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DB_PORT", "MIGRATIONS", "GEMINI_API_KEY", "GOOGLE_API_KEY", "BLOB_DRIVER"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Server.Port != "8080" {
		t.Errorf("Port = %q", cfg.Server.Port)
	}
	if cfg.Database.Driver != "postgres" || cfg.Database.Port != 5432 {
		t.Errorf("unexpected database defaults %+v", cfg.Database)
	}
	if cfg.App.Migrations {
		t.Errorf("migrations must be off by default")
	}
	if cfg.Blob.Driver != "fs" {
		t.Errorf("Blob.Driver = %q", cfg.Blob.Driver)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("DB_CONN_MAX_LIFETIME", "5m")
	t.Setenv("MIGRATIONS", "yes")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "k-123")

	cfg := Load()
	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q", cfg.Server.Port)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Driver = %q", cfg.Database.Driver)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("invalid int must fall back to default, got %d", cfg.Database.Port)
	}
	if cfg.Database.ConnMaxLifetime != 5*time.Minute {
		t.Errorf("ConnMaxLifetime = %v", cfg.Database.ConnMaxLifetime)
	}
	if !cfg.App.Migrations {
		t.Errorf("expected migrations enabled")
	}
	if cfg.AI.APIKey != "k-123" {
		t.Errorf("APIKey = %q", cfg.AI.APIKey)
	}
}

func TestDatabaseURLAndDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", DBName: "gmao", SSLMode: "disable"}
	if got, want := d.URL(), "postgres://u:p@db:5433/gmao?sslmode=disable"; got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
	if got, want := d.DSN(), "host=db port=5433 user=u password=p dbname=gmao sslmode=disable"; got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
