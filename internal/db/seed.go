package db

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/diewo77/gmao/internal/config"
	"github.com/diewo77/gmao/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed seed.yaml
var seedYAML []byte

// Catalogue is the reference data shipped with the binary.
type Catalogue struct {
	TechnicalDomains []struct {
		Code string `yaml:"code"`
		Name string `yaml:"name"`
	} `yaml:"technical_domains"`
	Settings map[string]string `yaml:"settings"`
}

// LoadCatalogue parses the embedded seed file.
func LoadCatalogue() (*Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(seedYAML, &c); err != nil {
		return nil, fmt.Errorf("parse seed.yaml: %w", err)
	}
	return &c, nil
}

// Seed inserts the admin account, technical domains and default settings.
// Every insert is ON CONFLICT DO NOTHING, so running it again is a no-op.
func Seed(conn *gorm.DB, cfg config.SeedConfig) error {
	cat, err := LoadCatalogue()
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := models.User{Email: cfg.AdminEmail, Name: cfg.AdminName, Password: string(hash), Role: "admin"}
	if err := conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	for _, d := range cat.TechnicalDomains {
		td := models.TechnicalDomain{Code: d.Code, Name: d.Name}
		if err := conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&td).Error; err != nil {
			return fmt.Errorf("seed technical domain %s: %w", d.Code, err)
		}
	}

	keys := make([]string, 0, len(cat.Settings))
	for k := range cat.Settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s := models.Setting{Key: k, Value: cat.Settings[k]}
		if err := conn.Clauses(clause.OnConflict{DoNothing: true}).Create(&s).Error; err != nil {
			return fmt.Errorf("seed setting %s: %w", k, err)
		}
	}
	return nil
}
