package services

import (
	"context"

	"github.com/diewo77/gmao/internal/models"
	"github.com/diewo77/gmao/internal/validation"
)

type LevelStore interface {
	List(ctx context.Context) ([]models.Level, error)
	Get(ctx context.Context, id string) (*models.Level, error)
	ListByBuilding(ctx context.Context, buildingID string) ([]models.Level, error)
	ListBySite(ctx context.Context, siteID string) ([]models.Level, error)
	Create(ctx context.Context, l *models.Level) error
	Update(ctx context.Context, id string, fields map[string]any) (*models.Level, error)
	Delete(ctx context.Context, id string) (*models.Level, error)
}

type LevelInput struct {
	Name       string `json:"name"`
	Image      string `json:"image"`
	BuildingID string `json:"buildingId"`
}

type LevelPatch struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

type LevelService struct {
	store LevelStore
}

func NewLevelService(store LevelStore) *LevelService {
	return &LevelService{store: store}
}

func (s *LevelService) FetchAll(ctx context.Context) ([]models.Level, error) {
	return s.store.List(ctx)
}

func (s *LevelService) FetchByID(ctx context.Context, id string) (*models.Level, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id)
}

func (s *LevelService) FetchByBuilding(ctx context.Context, buildingID string) ([]models.Level, error) {
	if err := requireID("buildingId", buildingID); err != nil {
		return nil, err
	}
	return s.store.ListByBuilding(ctx, buildingID)
}

func (s *LevelService) FetchBySite(ctx context.Context, siteID string) ([]models.Level, error) {
	if err := requireID("siteId", siteID); err != nil {
		return nil, err
	}
	return s.store.ListBySite(ctx, siteID)
}

func (s *LevelService) Add(ctx context.Context, in LevelInput) (*models.Level, error) {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.RequiredID("buildingId", in.BuildingID, v)
	if err := check(v); err != nil {
		return nil, err
	}
	l := &models.Level{Name: trim(in.Name), Image: trim(in.Image), BuildingID: trim(in.BuildingID)}
	if err := s.store.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *LevelService) Modify(ctx context.Context, id string, p LevelPatch) (*models.Level, error) {
	v := validation.Violations{}
	validation.RequiredID("id", id, v)
	validation.RequiredPtr("name", p.Name, v)
	if err := check(v); err != nil {
		return nil, err
	}
	cols := columns{}
	cols.str("name", p.Name)
	cols.str("image", p.Image)
	return s.store.Update(ctx, id, cols)
}

func (s *LevelService) Remove(ctx context.Context, id string) (*models.Level, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return s.store.Delete(ctx, id)
}
