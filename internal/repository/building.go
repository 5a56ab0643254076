package repository

import (
	"context"

	"github.com/diewo77/gmao/internal/apperr"
	"github.com/diewo77/gmao/internal/models"
	"gorm.io/gorm"
)

type BuildingRepository struct {
	crud[models.Building]
}

func NewBuildingRepository(db *gorm.DB) *BuildingRepository {
	return &BuildingRepository{crud[models.Building]{db: db, entity: "building"}}
}

func (r *BuildingRepository) List(ctx context.Context) ([]models.Building, error) {
	return r.list(ctx, byName)
}

func (r *BuildingRepository) Get(ctx context.Context, id string) (*models.Building, error) {
	return r.get(ctx, id)
}

func (r *BuildingRepository) ListBySite(ctx context.Context, siteID string) ([]models.Building, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("site_id = ?", siteID).Order("name ASC")
	})
}

// ListByClient walks building.site.clientId.
func (r *BuildingRepository) ListByClient(ctx context.Context, clientID string) ([]models.Building, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Joins("JOIN sites ON sites.id = buildings.site_id").
			Where("sites.client_id = ?", clientID).
			Order("buildings.name ASC")
	})
}

func (r *BuildingRepository) Create(ctx context.Context, b *models.Building) error {
	ok, err := r.exists(ctx, &models.Site{}, b.SiteID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("site", b.SiteID)
	}
	return r.create(ctx, b)
}

func (r *BuildingRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Building, error) {
	return r.update(ctx, id, fields)
}

func (r *BuildingRepository) Delete(ctx context.Context, id string) (*models.Building, error) {
	return r.remove(ctx, id, childGuard{&models.Level{}, "building_id", "levels"})
}
