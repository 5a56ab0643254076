package repository

import (
	"context"
	"errors"

	"github.com/diewo77/gmao/internal/apperr"
	"github.com/diewo77/gmao/internal/models"
	"gorm.io/gorm"
)

// placement preloads the ancestor chain used by search, stats and export.
const placement = "Location.Level.Building.Site.Client"

type EquipmentRepository struct {
	crud[models.Equipment]
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{crud[models.Equipment]{db: db, entity: "equipment"}}
}

func byCode(q *gorm.DB) *gorm.DB { return q.Order("equipments.code ASC") }

func (r *EquipmentRepository) List(ctx context.Context) ([]models.Equipment, error) {
	return r.list(ctx, byCode)
}

// ListWithPlacement returns every equipment with its location chain preloaded.
func (r *EquipmentRepository) ListWithPlacement(ctx context.Context) ([]models.Equipment, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Preload(placement).Order("equipments.created_at DESC")
	})
}

func (r *EquipmentRepository) Get(ctx context.Context, id string) (*models.Equipment, error) {
	return r.get(ctx, id, placement)
}

func (r *EquipmentRepository) GetByCode(ctx context.Context, code string) (*models.Equipment, error) {
	var e models.Equipment
	if err := r.conn(ctx).Preload(placement).First(&e, "code = ?", code).Error; err != nil {
		return nil, translate(err, r.entity, code)
	}
	return &e, nil
}

func (r *EquipmentRepository) ListByLocation(ctx context.Context, locationID string) ([]models.Equipment, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return byCode(q.Where("location_id = ?", locationID))
	})
}

// ListByLevel walks equipment.location.levelId.
func (r *EquipmentRepository) ListByLevel(ctx context.Context, levelID string) ([]models.Equipment, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return byCode(q.Joins("JOIN locations ON locations.id = equipments.location_id").
			Where("locations.level_id = ?", levelID))
	})
}

// ListByBuilding walks equipment.location.level.buildingId.
func (r *EquipmentRepository) ListByBuilding(ctx context.Context, buildingID string) ([]models.Equipment, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return byCode(q.Joins("JOIN locations ON locations.id = equipments.location_id").
			Joins("JOIN levels ON levels.id = locations.level_id").
			Where("levels.building_id = ?", buildingID))
	})
}

// ListBySite walks equipment.location.level.building.siteId.
func (r *EquipmentRepository) ListBySite(ctx context.Context, siteID string) ([]models.Equipment, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return byCode(q.Joins("JOIN locations ON locations.id = equipments.location_id").
			Joins("JOIN levels ON levels.id = locations.level_id").
			Joins("JOIN buildings ON buildings.id = levels.building_id").
			Where("buildings.site_id = ?", siteID))
	})
}

// ListByClient walks the chain up to sites.client_id.
func (r *EquipmentRepository) ListByClient(ctx context.Context, clientID string) ([]models.Equipment, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return byCode(q.Joins("JOIN locations ON locations.id = equipments.location_id").
			Joins("JOIN levels ON levels.id = locations.level_id").
			Joins("JOIN buildings ON buildings.id = levels.building_id").
			Joins("JOIN sites ON sites.id = buildings.site_id").
			Where("sites.client_id = ?", clientID).
			Preload(placement))
	})
}

// ListWithAudits returns equipment with placement and audits (newest version first),
// optionally restricted to one client.
func (r *EquipmentRepository) ListWithAudits(ctx context.Context, clientID string) ([]models.Equipment, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		q = q.Preload(placement).Preload("Audits", func(q *gorm.DB) *gorm.DB {
			return q.Order("audits.version DESC")
		})
		if clientID != "" {
			q = q.Joins("JOIN locations ON locations.id = equipments.location_id").
				Joins("JOIN levels ON levels.id = locations.level_id").
				Joins("JOIN buildings ON buildings.id = levels.building_id").
				Joins("JOIN sites ON sites.id = buildings.site_id").
				Where("sites.client_id = ?", clientID)
		}
		return byCode(q)
	})
}

func (r *EquipmentRepository) Create(ctx context.Context, e *models.Equipment) error {
	ok, err := r.exists(ctx, &models.Location{}, e.LocationID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("location", e.LocationID)
	}
	return r.codeConflict(r.create(ctx, e), e.Code)
}

func (r *EquipmentRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Equipment, error) {
	e, err := r.update(ctx, id, fields)
	if code, ok := fields["code"].(string); ok {
		err = r.codeConflict(err, code)
	}
	return e, err
}

func (r *EquipmentRepository) Delete(ctx context.Context, id string) (*models.Equipment, error) {
	return r.remove(ctx, id, childGuard{&models.Audit{}, "equipment_id", "audits"})
}

func (r *EquipmentRepository) codeConflict(err error, code string) error {
	if err != nil && errors.Is(err, apperr.ErrConflict) {
		return apperr.Conflict("Equipment with code %s already exists", code)
	}
	return err
}
