package services

import (
	"context"

	"github.com/diewo77/gmao/internal/models"
	"github.com/diewo77/gmao/internal/validation"
)

type BuildingStore interface {
	List(ctx context.Context) ([]models.Building, error)
	Get(ctx context.Context, id string) (*models.Building, error)
	ListBySite(ctx context.Context, siteID string) ([]models.Building, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Building, error)
	Create(ctx context.Context, b *models.Building) error
	Update(ctx context.Context, id string, fields map[string]any) (*models.Building, error)
	Delete(ctx context.Context, id string) (*models.Building, error)
}

type BuildingInput struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Image  string `json:"image"`
	SiteID string `json:"siteId"`
}

type BuildingPatch struct {
	Name  *string `json:"name"`
	Type  *string `json:"type"`
	Image *string `json:"image"`
}

type BuildingService struct {
	store BuildingStore
}

func NewBuildingService(store BuildingStore) *BuildingService {
	return &BuildingService{store: store}
}

func (s *BuildingService) FetchAll(ctx context.Context) ([]models.Building, error) {
	return s.store.List(ctx)
}

func (s *BuildingService) FetchByID(ctx context.Context, id string) (*models.Building, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id)
}

func (s *BuildingService) FetchBySite(ctx context.Context, siteID string) ([]models.Building, error) {
	if err := requireID("siteId", siteID); err != nil {
		return nil, err
	}
	return s.store.ListBySite(ctx, siteID)
}

func (s *BuildingService) FetchByClient(ctx context.Context, clientID string) ([]models.Building, error) {
	if err := requireID("clientId", clientID); err != nil {
		return nil, err
	}
	return s.store.ListByClient(ctx, clientID)
}

func (s *BuildingService) Add(ctx context.Context, in BuildingInput) (*models.Building, error) {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.RequiredID("siteId", in.SiteID, v)
	if err := check(v); err != nil {
		return nil, err
	}
	b := &models.Building{Name: trim(in.Name), Type: trim(in.Type), Image: trim(in.Image), SiteID: trim(in.SiteID)}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BuildingService) Modify(ctx context.Context, id string, p BuildingPatch) (*models.Building, error) {
	v := validation.Violations{}
	validation.RequiredID("id", id, v)
	validation.RequiredPtr("name", p.Name, v)
	if err := check(v); err != nil {
		return nil, err
	}
	cols := columns{}
	cols.str("name", p.Name)
	cols.str("type", p.Type)
	cols.str("image", p.Image)
	return s.store.Update(ctx, id, cols)
}

func (s *BuildingService) Remove(ctx context.Context, id string) (*models.Building, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return s.store.Delete(ctx, id)
}
