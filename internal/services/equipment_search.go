package services

import (
	"context"
	"sort"
	"strings"

	"github.com/diewo77/gmao/internal/models"
	"github.com/diewo77/gmao/internal/validation"
)

const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 200
)

// SearchParams are the /search query parameters. Zero values mean "no filter".
type SearchParams struct {
	Q           string
	Statut      string
	EtatSante   string
	Famille     string
	LocationID  string
	InclureGMAO *bool
	SortBy      string
	SortOrder   string
	Page        int
	Limit       int
}

type SearchResult struct {
	Items      []models.Equipment `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"totalPages"`
}

type lessFunc func(a, b *models.Equipment) bool

var sortKeys = map[string]lessFunc{
	"createdAt":            func(a, b *models.Equipment) bool { return a.CreatedAt.Before(b.CreatedAt) },
	"updatedAt":            func(a, b *models.Equipment) bool { return a.UpdatedAt.Before(b.UpdatedAt) },
	"code":                 func(a, b *models.Equipment) bool { return a.Code < b.Code },
	"libelle":              func(a, b *models.Equipment) bool { return a.Libelle < b.Libelle },
	"type":                 func(a, b *models.Equipment) bool { return a.Type < b.Type },
	"famille":              func(a, b *models.Equipment) bool { return a.Famille < b.Famille },
	"marque":               func(a, b *models.Equipment) bool { return a.Marque < b.Marque },
	"statut":               func(a, b *models.Equipment) bool { return a.Statut < b.Statut },
	"etatSante":            func(a, b *models.Equipment) bool { return a.EtatSante < b.EtatSante },
	"quantite":             func(a, b *models.Equipment) bool { return a.Quantite < b.Quantite },
	"frequenceMaintenance": func(a, b *models.Equipment) bool { return a.FrequenceMaintenance < b.FrequenceMaintenance },
}

// SortKeys lists the accepted sortBy values.
func SortKeys() []string {
	keys := make([]string, 0, len(sortKeys))
	for k := range sortKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (p *SearchParams) normalize() error {
	v := validation.Violations{}
	if p.SortBy == "" {
		p.SortBy = "createdAt"
	}
	validation.OneOf("sortBy", p.SortBy, SortKeys(), v)
	p.SortOrder = strings.ToLower(p.SortOrder)
	if p.SortOrder == "" {
		p.SortOrder = "desc"
	}
	validation.OneOf("sortOrder", p.SortOrder, []string{"asc", "desc"}, v)
	if p.Page == 0 {
		p.Page = 1
	}
	if p.Limit == 0 {
		p.Limit = DefaultSearchLimit
	}
	validation.PositiveInt("page", p.Page, v)
	validation.PositiveInt("limit", p.Limit, v)
	if p.Limit > MaxSearchLimit {
		p.Limit = MaxSearchLimit
	}
	return check(v)
}

func (p SearchParams) matches(e *models.Equipment) bool {
	if q := strings.ToLower(strings.TrimSpace(p.Q)); q != "" {
		hit := false
		for _, f := range []string{e.Code, e.Libelle, e.Marque, e.Famille, e.Type} {
			if strings.Contains(strings.ToLower(f), q) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if p.Statut != "" && e.Statut != p.Statut {
		return false
	}
	if p.EtatSante != "" && e.EtatSante != p.EtatSante {
		return false
	}
	if p.Famille != "" && e.Famille != p.Famille {
		return false
	}
	if p.LocationID != "" && e.LocationID != p.LocationID {
		return false
	}
	if p.InclureGMAO != nil && e.InclureGMAO != *p.InclureGMAO {
		return false
	}
	return true
}

// Search filters, sorts, then pages the full equipment set in memory.
func (s *EquipmentService) Search(ctx context.Context, p SearchParams) (*SearchResult, error) {
	if err := p.normalize(); err != nil {
		return nil, err
	}
	all, err := s.store.ListWithPlacement(ctx)
	if err != nil {
		return nil, err
	}
	return searchItems(all, p), nil
}

func searchItems(all []models.Equipment, p SearchParams) *SearchResult {
	filtered := make([]models.Equipment, 0, len(all))
	for i := range all {
		if p.matches(&all[i]) {
			filtered = append(filtered, all[i])
		}
	}

	less := sortKeys[p.SortBy]
	sort.SliceStable(filtered, func(i, j int) bool {
		if p.SortOrder == "asc" {
			return less(&filtered[i], &filtered[j])
		}
		return less(&filtered[j], &filtered[i])
	})

	total := len(filtered)
	start := (p.Page - 1) * p.Limit
	end := start + p.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	totalPages := (total + p.Limit - 1) / p.Limit
	return &SearchResult{
		Items:      filtered[start:end],
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
	}
}
