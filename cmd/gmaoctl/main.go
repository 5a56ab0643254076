// Command gmaoctl runs administrative tasks against the GMAO database.
package main

import (
	"fmt"
	"os"

	"github.com/diewo77/gmao/internal/config"
	"github.com/diewo77/gmao/internal/db"
	"github.com/diewo77/gmao/internal/logging"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log, err := logging.New(cfg.App.Dev, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	open := func() (*gorm.DB, error) { return db.Open(cfg.Database, log) }
	if err := newRootCmd(cfg, open).Execute(); err != nil {
		os.Exit(1)
	}
}
