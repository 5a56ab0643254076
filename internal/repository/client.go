package repository

import (
	"context"

	"github.com/diewo77/gmao/internal/models"
	"gorm.io/gorm"
)

type ClientRepository struct {
	crud[models.Client]
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{crud[models.Client]{db: db, entity: "client"}}
}

func (r *ClientRepository) List(ctx context.Context) ([]models.Client, error) {
	return r.list(ctx, byName)
}

func (r *ClientRepository) Get(ctx context.Context, id string) (*models.Client, error) {
	return r.get(ctx, id)
}

func (r *ClientRepository) Create(ctx context.Context, c *models.Client) error {
	return r.create(ctx, c)
}

func (r *ClientRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Client, error) {
	return r.update(ctx, id, fields)
}

func (r *ClientRepository) Delete(ctx context.Context, id string) (*models.Client, error) {
	return r.remove(ctx, id, childGuard{&models.Site{}, "client_id", "sites"})
}

// Tree loads the client with its whole site/building/level/location/equipment subtree.
func (r *ClientRepository) Tree(ctx context.Context, id string) (*models.Client, error) {
	order := func(col string) func(*gorm.DB) *gorm.DB {
		return func(q *gorm.DB) *gorm.DB { return q.Order(col) }
	}
	var c models.Client
	err := r.conn(ctx).
		Preload("Sites", order("sites.name")).
		Preload("Sites.Buildings", order("buildings.name")).
		Preload("Sites.Buildings.Levels", order("levels.name")).
		Preload("Sites.Buildings.Levels.Locations", order("locations.name")).
		Preload("Sites.Buildings.Levels.Locations.Equipments", order("equipments.code")).
		First(&c, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, r.entity, id)
	}
	return &c, nil
}
