package services

import (
	"context"

	"github.com/diewo77/gmao/internal/models"
	"github.com/diewo77/gmao/internal/validation"
)

type SiteStore interface {
	List(ctx context.Context) ([]models.Site, error)
	Get(ctx context.Context, id string) (*models.Site, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Site, error)
	Create(ctx context.Context, s *models.Site) error
	Update(ctx context.Context, id string, fields map[string]any) (*models.Site, error)
	Delete(ctx context.Context, id string) (*models.Site, error)
}

type SiteInput struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	CodeClient  string `json:"codeClient"`
	CodeAffaire string `json:"codeAffaire"`
	CodeContrat string `json:"codeContrat"`
	Image       string `json:"image"`
	EstPlanifie bool   `json:"estPlanifie"`
	Avancement  string `json:"avancement"`
	ClientID    string `json:"clientId"`
}

type SitePatch struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	CodeClient  *string `json:"codeClient"`
	CodeAffaire *string `json:"codeAffaire"`
	CodeContrat *string `json:"codeContrat"`
	Image       *string `json:"image"`
	EstPlanifie *bool   `json:"estPlanifie"`
	Avancement  *string `json:"avancement"`
}

type SiteService struct {
	store SiteStore
}

func NewSiteService(store SiteStore) *SiteService {
	return &SiteService{store: store}
}

func (s *SiteService) FetchAll(ctx context.Context) ([]models.Site, error) {
	return s.store.List(ctx)
}

func (s *SiteService) FetchByID(ctx context.Context, id string) (*models.Site, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id)
}

func (s *SiteService) FetchByClient(ctx context.Context, clientID string) ([]models.Site, error) {
	if err := requireID("clientId", clientID); err != nil {
		return nil, err
	}
	return s.store.ListByClient(ctx, clientID)
}

func (s *SiteService) Add(ctx context.Context, in SiteInput) (*models.Site, error) {
	v := validation.Violations{}
	validation.Required("name", in.Name, v)
	validation.RequiredID("clientId", in.ClientID, v)
	validation.OneOf("avancement", trim(in.Avancement), models.Avancements, v)
	if err := check(v); err != nil {
		return nil, err
	}
	av := models.Avancement(trim(in.Avancement))
	if av == "" {
		av = models.AvancementNonCommence
	}
	site := &models.Site{
		Name:        trim(in.Name),
		Address:     trim(in.Address),
		CodeClient:  trim(in.CodeClient),
		CodeAffaire: trim(in.CodeAffaire),
		CodeContrat: trim(in.CodeContrat),
		Image:       trim(in.Image),
		EstPlanifie: in.EstPlanifie,
		Avancement:  av,
		ClientID:    trim(in.ClientID),
	}
	if err := s.store.Create(ctx, site); err != nil {
		return nil, err
	}
	return site, nil
}

func (s *SiteService) Modify(ctx context.Context, id string, p SitePatch) (*models.Site, error) {
	v := validation.Violations{}
	validation.RequiredID("id", id, v)
	validation.RequiredPtr("name", p.Name, v)
	if p.Avancement != nil {
		validation.Required("avancement", *p.Avancement, v)
		validation.OneOf("avancement", trim(*p.Avancement), models.Avancements, v)
	}
	if err := check(v); err != nil {
		return nil, err
	}
	cols := columns{}
	cols.str("name", p.Name)
	cols.str("address", p.Address)
	cols.str("code_client", p.CodeClient)
	cols.str("code_affaire", p.CodeAffaire)
	cols.str("code_contrat", p.CodeContrat)
	cols.str("image", p.Image)
	set(cols, "est_planifie", p.EstPlanifie)
	cols.str("avancement", p.Avancement)
	return s.store.Update(ctx, id, cols)
}

func (s *SiteService) Remove(ctx context.Context, id string) (*models.Site, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return s.store.Delete(ctx, id)
}
