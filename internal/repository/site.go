package repository

import (
	"context"

	"github.com/diewo77/gmao/internal/apperr"
	"github.com/diewo77/gmao/internal/models"
	"gorm.io/gorm"
)

type SiteRepository struct {
	crud[models.Site]
}

func NewSiteRepository(db *gorm.DB) *SiteRepository {
	return &SiteRepository{crud[models.Site]{db: db, entity: "site"}}
}

func (r *SiteRepository) List(ctx context.Context) ([]models.Site, error) {
	return r.list(ctx, byName)
}

func (r *SiteRepository) Get(ctx context.Context, id string) (*models.Site, error) {
	return r.get(ctx, id)
}

func (r *SiteRepository) ListByClient(ctx context.Context, clientID string) ([]models.Site, error) {
	return r.list(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("client_id = ?", clientID).Order("name ASC")
	})
}

// Create inserts the site once its client is known to exist.
func (r *SiteRepository) Create(ctx context.Context, s *models.Site) error {
	ok, err := r.exists(ctx, &models.Client{}, s.ClientID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("client", s.ClientID)
	}
	return r.create(ctx, s)
}

func (r *SiteRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Site, error) {
	return r.update(ctx, id, fields)
}

func (r *SiteRepository) Delete(ctx context.Context, id string) (*models.Site, error) {
	return r.remove(ctx, id, childGuard{&models.Building{}, "site_id", "buildings"})
}
