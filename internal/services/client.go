package services

import (
	"context"

	"github.com/diewo77/gmao/internal/models"
	"github.com/diewo77/gmao/internal/validation"
)

type ClientStore interface {
	List(ctx context.Context) ([]models.Client, error)
	Get(ctx context.Context, id string) (*models.Client, error)
	Create(ctx context.Context, c *models.Client) error
	Update(ctx context.Context, id string, fields map[string]any) (*models.Client, error)
	Delete(ctx context.Context, id string) (*models.Client, error)
	Tree(ctx context.Context, id string) (*models.Client, error)
}

type ClientInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ClientPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type ClientService struct {
	store ClientStore
}

func NewClientService(store ClientStore) *ClientService {
	return &ClientService{store: store}
}

func (s *ClientService) FetchAll(ctx context.Context) ([]models.Client, error) {
	return s.store.List(ctx)
}

func (s *ClientService) FetchByID(ctx context.Context, id string) (*models.Client, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id)
}

// FetchTree returns the client with its full hierarchy preloaded.
func (s *ClientService) FetchTree(ctx context.Context, id string) (*models.Client, error) {
	if err := requireID("clientId", id); err != nil {
		return nil, err
	}
	return s.store.Tree(ctx, id)
}

func (s *ClientService) Add(ctx context.Context, in ClientInput) (*models.Client, error) {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	if err := check(v); err != nil {
		return nil, err
	}
	c := &models.Client{Name: trim(in.Name), Description: trim(in.Description)}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClientService) Modify(ctx context.Context, id string, p ClientPatch) (*models.Client, error) {
	v := validation.Violations{}
	validation.RequiredID("id", id, v)
	validation.RequiredPtr("name", p.Name, v)
	if err := check(v); err != nil {
		return nil, err
	}
	cols := columns{}
	cols.str("name", p.Name)
	cols.str("description", p.Description)
	return s.store.Update(ctx, id, cols)
}

func (s *ClientService) Remove(ctx context.Context, id string) (*models.Client, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return s.store.Delete(ctx, id)
}
