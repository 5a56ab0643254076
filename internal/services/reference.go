package services

import (
	"context"

	"github.com/diewo77/gmao/internal/models"
)

type ReferenceStore interface {
	TechnicalDomains(ctx context.Context) ([]models.TechnicalDomain, error)
	Settings(ctx context.Context) ([]models.Setting, error)
}

type ReferenceService struct {
	store ReferenceStore
}

func NewReferenceService(store ReferenceStore) *ReferenceService {
	return &ReferenceService{store: store}
}

func (s *ReferenceService) TechnicalDomains(ctx context.Context) ([]models.TechnicalDomain, error) {
	return s.store.TechnicalDomains(ctx)
}

// Settings returns the settings as a key/value map.
func (s *ReferenceService) Settings(ctx context.Context) (map[string]string, error) {
	rows, err := s.store.Settings(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Value
	}
	return out, nil
}
