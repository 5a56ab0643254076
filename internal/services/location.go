package services

import (
	"context"

	"github.com/diewo77/gmao/internal/models"
	"github.com/diewo77/gmao/internal/validation"
)

type LocationStore interface {
	List(ctx context.Context) ([]models.Location, error)
	Get(ctx context.Context, id string) (*models.Location, error)
	ListByLevel(ctx context.Context, levelID string) ([]models.Location, error)
	ListByBuilding(ctx context.Context, buildingID string) ([]models.Location, error)
	ListBySite(ctx context.Context, siteID string) ([]models.Location, error)
	Create(ctx context.Context, l *models.Location) error
	Update(ctx context.Context, id string, fields map[string]any) (*models.Location, error)
	Delete(ctx context.Context, id string) (*models.Location, error)
}

type LocationInput struct {
	Name    string `json:"name"`
	Image   string `json:"image"`
	LevelID string `json:"levelId"`
}

type LocationPatch struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

type LocationService struct {
	store LocationStore
}

func NewLocationService(store LocationStore) *LocationService {
	return &LocationService{store: store}
}

func (s *LocationService) FetchAll(ctx context.Context) ([]models.Location, error) {
	return s.store.List(ctx)
}

func (s *LocationService) FetchByID(ctx context.Context, id string) (*models.Location, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id)
}

func (s *LocationService) FetchByLevel(ctx context.Context, levelID string) ([]models.Location, error) {
	if err := requireID("levelId", levelID); err != nil {
		return nil, err
	}
	return s.store.ListByLevel(ctx, levelID)
}

func (s *LocationService) FetchByBuilding(ctx context.Context, buildingID string) ([]models.Location, error) {
	if err := requireID("buildingId", buildingID); err != nil {
		return nil, err
	}
	return s.store.ListByBuilding(ctx, buildingID)
}

func (s *LocationService) FetchBySite(ctx context.Context, siteID string) ([]models.Location, error) {
	if err := requireID("siteId", siteID); err != nil {
		return nil, err
	}
	return s.store.ListBySite(ctx, siteID)
}

func (s *LocationService) Add(ctx context.Context, in LocationInput) (*models.Location, error) {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.RequiredID("levelId", in.LevelID, v)
	if err := check(v); err != nil {
		return nil, err
	}
	l := &models.Location{Name: trim(in.Name), Image: trim(in.Image), LevelID: trim(in.LevelID)}
	if err := s.store.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *LocationService) Modify(ctx context.Context, id string, p LocationPatch) (*models.Location, error) {
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

func (s *LocationService) Remove(ctx context.Context, id string) (*models.Location, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return s.store.Delete(ctx, id)
}
