package repository

import (
	"context"

	"github.com/diewo77/gmao/internal/apperr"
	"github.com/diewo77/gmao/internal/models"
	"gorm.io/gorm"
)

type LocationRepository struct {
	crud[models.Location]
}

func NewLocationRepository(db *gorm.DB) *LocationRepository {
	return &LocationRepository{crud[models.Location]{db: db, entity: "location"}}
}

func (r *LocationRepository) List(ctx context.Context) ([]models.Location, error) {
	return r.list(ctx, byName)
}

func (r *LocationRepository) Get(ctx context.Context, id string) (*models.Location, error) {
	return r.get(ctx, id)
}

func (r *LocationRepository) ListByLevel(ctx context.Context, levelID string) ([]models.Location, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("level_id = ?", levelID).Order("name ASC")
	})
}

// ListByBuilding walks location.level.buildingId.
func (r *LocationRepository) ListByBuilding(ctx context.Context, buildingID string) ([]models.Location, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Joins("JOIN levels ON levels.id = locations.level_id").
			Where("levels.building_id = ?", buildingID).
			Order("locations.name ASC")
	})
}

// ListBySite walks location.level.building.siteId.
func (r *LocationRepository) ListBySite(ctx context.Context, siteID string) ([]models.Location, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Joins("JOIN levels ON levels.id = locations.level_id").
			Joins("JOIN buildings ON buildings.id = levels.building_id").
			Where("buildings.site_id = ?", siteID).
			Order("locations.name ASC")
	})
}

func (r *LocationRepository) Create(ctx context.Context, l *models.Location) error {
	ok, err := r.exists(ctx, &models.Level{}, l.LevelID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("level", l.LevelID)
	}
	return r.create(ctx, l)
}

func (r *LocationRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Location, error) {
	return r.update(ctx, id, fields)
}

func (r *LocationRepository) Delete(ctx context.Context, id string) (*models.Location, error) {
	return r.remove(ctx, id, childGuard{&models.Equipment{}, "location_id", "equipment"})
}
