package services

import (
	"context"
	"math"
	"time"

	"github.com/diewo77/gmao/internal/models"
)

// RecentWindow is the span of the "recent activity" counters.
const RecentWindow = 30 * 24 * time.Hour

const unassigned = "Non renseigné"

type EquipmentStats struct {
	Total                       int            `json:"total"`
	ByStatus                    map[string]int `json:"byStatus"`
	ByHealth                    map[string]int `json:"byHealth"`
	ByFamily                    map[string]int `json:"byFamily"`
	ByLocation                  map[string]int `json:"byLocation"`
	ByClient                    map[string]int `json:"byClient"`
	Critical                    int            `json:"critical"`
	Sensitive                   int            `json:"sensitive"`
	IncludedInGMAO              int            `json:"includedInGMAO"`
	AverageMaintenanceFrequency float64        `json:"averageMaintenanceFrequency"`
	RecentActivity              RecentActivity `json:"recentActivity"`
}

type RecentActivity struct {
	Since   time.Time `json:"since"`
	Created int       `json:"created"`
	Updated int       `json:"updated"`
}

// Stats reduces the full equipment set into grouped counters.
func (s *EquipmentService) Stats(ctx context.Context) (*EquipmentStats, error) {
	all, err := s.store.ListWithPlacement(ctx)
	if err != nil {
		return nil, err
	}
	return computeStats(all, s.now()), nil
}

func computeStats(all []models.Equipment, now time.Time) *EquipmentStats {
	st := &EquipmentStats{
		Total:      len(all),
		ByStatus:   map[string]int{},
		ByHealth:   map[string]int{},
		ByFamily:   map[string]int{},
		ByLocation: map[string]int{},
		ByClient:   map[string]int{},
	}
	st.RecentActivity.Since = now.Add(-RecentWindow)

	var freqSum, freqCount int
	for i := range all {
		e := &all[i]
		st.ByStatus[orUnassigned(e.Statut)]++
		st.ByHealth[orUnassigned(e.EtatSante)]++
		st.ByFamily[orUnassigned(e.Famille)]++
		st.ByLocation[locationName(e)]++
		st.ByClient[clientName(e)]++
		if e.EstCritique {
			st.Critical++
		}
		if e.EstSensible {
			st.Sensitive++
		}
		if e.InclureGMAO {
			st.IncludedInGMAO++
		}
		if e.FrequenceMaintenance > 0 {
			freqSum += e.FrequenceMaintenance
			freqCount++
		}
		if !e.CreatedAt.Before(st.RecentActivity.Since) {
			st.RecentActivity.Created++
		}
		if !e.UpdatedAt.Before(st.RecentActivity.Since) && e.UpdatedAt.After(e.CreatedAt) {
			st.RecentActivity.Updated++
		}
	}
	if freqCount > 0 {
		st.AverageMaintenanceFrequency = math.Round(float64(freqSum)/float64(freqCount)*100) / 100
	}
	return st
}

func orUnassigned(s string) string {
	if s == "" {
		return unassigned
	}
	return s
}

func locationName(e *models.Equipment) string {
	if e.Location == nil {
		return unassigned
	}
	return orUnassigned(e.Location.Name)
}

func clientName(e *models.Equipment) string {
	if e.Location == nil || e.Location.Level == nil || e.Location.Level.Building == nil ||
		e.Location.Level.Building.Site == nil || e.Location.Level.Building.Site.Client == nil {
		return unassigned
	}
	return orUnassigned(e.Location.Level.Building.Site.Client.Name)
}
