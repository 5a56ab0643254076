package repository

import (
	"context"
	"errors"

	"github.com/diewo77/gmao/internal/apperr"
	"github.com/diewo77/gmao/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AuditRepository struct {
	crud[models.Audit]
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{crud[models.Audit]{db: db, entity: "audit"}}
}

func (r *AuditRepository) List(ctx context.Context) ([]models.Audit, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Order("date_audit DESC")
	})
}

func (r *AuditRepository) Get(ctx context.Context, id string) (*models.Audit, error) {
	return r.get(ctx, id, "Equipment")
}

// ListByEquipment returns the audits of one equipment, newest version first.
func (r *AuditRepository) ListByEquipment(ctx context.Context, equipmentID string) ([]models.Audit, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("equipment_id = ?", equipmentID).Order("version DESC")
	})
}

// Latest returns the highest version audit of an equipment.
func (r *AuditRepository) Latest(ctx context.Context, equipmentID string) (*models.Audit, error) {
	var a models.Audit
	err := r.conn(ctx).Where("equipment_id = ?", equipmentID).Order("version DESC").First(&a).Error
	if err != nil {
		return nil, translate(err, r.entity, equipmentID)
	}
	return &a, nil
}

// Create assigns the next version of the equipment and inserts the audit in a
// single transaction. The equipment row is locked (FOR UPDATE, ignored by
// sqlite) and the (equipment_id, version) unique index rejects any concurrent
// writer that still slips through.
func (r *AuditRepository) Create(ctx context.Context, a *models.Audit) error {
	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var eq models.Equipment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").First(&eq, "id = ?", a.EquipmentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("equipment", a.EquipmentID)
		}
		if err != nil {
			return err
		}

		var current int
		if err := tx.Model(&models.Audit{}).
			Where("equipment_id = ?", a.EquipmentID).
			Select("COALESCE(MAX(version), 0)").
			Scan(&current).Error; err != nil {
			return err
		}
		a.Version = current + 1
		return tx.Create(a).Error
	})
	if err != nil && isDuplicate(err) {
		return apperr.Conflict("audit version %d already exists for equipment %s", a.Version, a.EquipmentID)
	}
	return translate(err, r.entity, "")
}

func (r *AuditRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Audit, error) {
	return r.update(ctx, id, fields)
}

func (r *AuditRepository) Delete(ctx context.Context, id string) (*models.Audit, error) {
	return r.remove(ctx, id)
}
