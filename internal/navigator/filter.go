package navigator

import (
	"slices"
	"strings"

	"github.com/diewo77/gmao/internal/models"
)

// Filter is the advanced equipment filter of list pages. Zero values match everything.
type Filter struct {
	Statuses     []string `json:"statuses,omitempty"`
	Health       []string `json:"health,omitempty"`
	Text         string   `json:"text,omitempty"`
	GMAOOnly     bool     `json:"gmaoOnly,omitempty"`
	CriticalOnly bool     `json:"criticalOnly,omitempty"`
}

func (f Filter) Match(e *models.Equipment) bool {
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, e.Statut) {
		return false
	}
	if len(f.Health) > 0 && !slices.Contains(f.Health, e.EtatSante) {
		return false
	}
	if f.GMAOOnly && !e.InclureGMAO {
		return false
	}
	if f.CriticalOnly && !e.EstCritique {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Text)); q != "" {
		for _, s := range []string{e.Code, e.Libelle, e.Marque, e.Famille, e.Type, e.NumeroSerie} {
			if strings.Contains(strings.ToLower(s), q) {
				return true
			}
		}
		return false
	}
	return true
}

// Apply returns the equipment below n that match f.
func (f Filter) Apply(n Node) []models.Equipment {
	out := []models.Equipment{}
	for _, en := range Equipment(n) {
		if f.Match(en.Equipment) {
			out = append(out, *en.Equipment)
		}
	}
	return out
}
