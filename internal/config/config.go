// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
	AI       AIConfig
	Blob     BlobConfig
	Seed     SeedConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// DatabaseConfig holds connection and pool settings.
type DatabaseConfig struct {
	Driver     string // postgres | sqlite
	Host       string
	Port       int
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Debug           bool
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev        bool
	Migrations bool
	Seed       bool
}

// AIConfig configures the hosted generative model.
type AIConfig struct {
	APIKey string
	Model  string
	// VisionModel is used by flows that read images.
	VisionModel string
}

// BlobConfig selects where uploaded images are stored.
type BlobConfig struct {
	Driver        string // fs | s3 | memory
	Dir           string
	PublicBaseURL string
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
	S3PathStyle   bool

	// Static credentials; the default AWS chain is used when empty.
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// SeedConfig holds the credentials of the seeded admin account.
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
}

// DSN returns the PostgreSQL connection string in key=value format.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// URL returns the PostgreSQL connection string in URL format.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 60),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", "postgres"),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "gmao"),
			Password:        getEnv("DB_PASSWORD", "gmao123"),
			DBName:          getEnv("DB_NAME", "gmao"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			SQLitePath:      getEnv("DB_SQLITE_PATH", "gmao.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			Debug:           getEnvBool("DB_DEBUG", false),
		},
		App: AppConfig{
			Dev:        getEnvBool("DEV", true),
			Migrations: getEnvBool("MIGRATIONS", false),
			Seed:       getEnvBool("DB_SEED", true),
		},
		AI: AIConfig{
			APIKey:      firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY"),
			Model:       getEnv("AI_MODEL", "gemini-2.0-flash"),
			VisionModel: getEnv("AI_VISION_MODEL", "gemini-2.0-flash"),
		},
		Blob: BlobConfig{
			Driver:        getEnv("BLOB_DRIVER", "fs"),
			Dir:           getEnv("BLOB_DIR", "uploads"),
			PublicBaseURL: getEnv("BLOB_PUBLIC_BASE_URL", "/uploads"),
			S3Bucket:      getEnv("BLOB_S3_BUCKET", ""),
			S3Region:      getEnv("BLOB_S3_REGION", "us-east-1"),
			S3Endpoint:    getEnv("BLOB_S3_ENDPOINT", ""),
			S3PathStyle:   getEnvBool("BLOB_S3_PATH_STYLE", false),

			S3AccessKeyID:     getEnv("BLOB_S3_ACCESS_KEY_ID", ""),
			S3SecretAccessKey: getEnv("BLOB_S3_SECRET_ACCESS_KEY", ""),
		},
		Seed: SeedConfig{
			AdminEmail:    getEnv("ADMIN_EMAIL", "admin@gmao.local"),
			AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
			AdminName:     getEnv("ADMIN_NAME", "Administrateur"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}

// getEnvDuration parses Go duration strings ("30m", "1h").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
