package repository

import (
	"context"

	"github.com/diewo77/gmao/internal/apperr"
	"github.com/diewo77/gmao/internal/models"
	"gorm.io/gorm"
)

type LevelRepository struct {
	crud[models.Level]
}

func NewLevelRepository(db *gorm.DB) *LevelRepository {
	return &LevelRepository{crud[models.Level]{db: db, entity: "level"}}
}

func (r *LevelRepository) List(ctx context.Context) ([]models.Level, error) {
	return r.list(ctx, byName)
}

func (r *LevelRepository) Get(ctx context.Context, id string) (*models.Level, error) {
	return r.get(ctx, id)
}

func (r *LevelRepository) ListByBuilding(ctx context.Context, buildingID string) ([]models.Level, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("building_id = ?", buildingID).Order("name ASC")
	})
}

// ListBySite walks level.building.siteId.
func (r *LevelRepository) ListBySite(ctx context.Context, siteID string) ([]models.Level, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Joins("JOIN buildings ON buildings.id = levels.building_id").
			Where("buildings.site_id = ?", siteID).
			Order("levels.name ASC")
	})
}

func (r *LevelRepository) Create(ctx context.Context, l *models.Level) error {
	ok, err := r.exists(ctx, &models.Building{}, l.BuildingID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("building", l.BuildingID)
	}
	return r.create(ctx, l)
}

func (r *LevelRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Level, error) {
	return r.update(ctx, id, fields)
}

func (r *LevelRepository) Delete(ctx context.Context, id string) (*models.Level, error) {
	return r.remove(ctx, id, childGuard{&models.Location{}, "level_id", "locations"})
}
