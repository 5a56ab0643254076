package repository

import (
	"context"

	"github.com/diewo77/gmao/internal/models"
	"gorm.io/gorm"
)

// ReferenceRepository reads the seeded technical domains and settings.
type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) TechnicalDomains(ctx context.Context) ([]models.TechnicalDomain, error) {
	out := []models.TechnicalDomain{}
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&out).Error; err != nil {
		return nil, translate(err, "technical domain", "")
	}
	return out, nil
}

func (r *ReferenceRepository) Settings(ctx context.Context) ([]models.Setting, error) {
	out := []models.Setting{}
	if err := r.db.WithContext(ctx).Order("key ASC").Find(&out).Error; err != nil {
		return nil, translate(err, "setting", "")
	}
	return out, nil
}
