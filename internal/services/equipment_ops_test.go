package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/diewo77/gmao/internal/apperr"
	"github.com/diewo77/gmao/internal/models"
	"github.com/diewo77/gmao/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func equipmentSet() []models.Equipment {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var out []models.Equipment
	for i := 1; i <= 25; i++ {
		e := models.Equipment{
			Base:      models.Base{ID: fmt.Sprintf("id-%02d", i), CreatedAt: base.Add(time.Duration(i) * time.Hour)},
			Code:      fmt.Sprintf("CONV-%02d", i),
			Libelle:   "Convecteur",
			Famille:   "Chauffage",
			Statut:    "Alerte",
			EtatSante: "Bon",
		}
		if i%5 == 0 {
			e.Statut = "En service"
		}
		out = append(out, e)
	}
	out = append(out, models.Equipment{
		Base: models.Base{ID: "id-pump"}, Code: "P-1", Libelle: "Pompe", Statut: "Alerte", Marque: "Grundfos",
	})
	return out
}

func TestSearchFiltersAndPages(t *testing.T) {
	p := SearchParams{Statut: "Alerte", Q: "conv", SortBy: "code", SortOrder: "asc", Page: 2, Limit: 10}
	require.NoError(t, p.normalize())
	res := searchItems(equipmentSet(), p)

	// 25 convectors minus the 5 "En service" ones
	assert.Equal(t, 20, res.Total)
	assert.Equal(t, 2, res.TotalPages)
	require.Len(t, res.Items, 10)
	for _, e := range res.Items {
		assert.Equal(t, "Alerte", e.Statut)
		assert.Contains(t, e.Code, "CONV")
	}
	// page 2 starts at the 11th match
	assert.Equal(t, "CONV-13", res.Items[0].Code)
}

func TestSearchDefaults(t *testing.T) {
	p := SearchParams{}
	require.NoError(t, p.normalize())
	assert.Equal(t, "createdAt", p.SortBy)
	assert.Equal(t, "desc", p.SortOrder)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultSearchLimit, p.Limit)

	res := searchItems(equipmentSet()[:25], p)
	assert.Equal(t, "CONV-25", res.Items[0].Code, "newest first by default")
}

func TestSearchCaseInsensitiveOnBrand(t *testing.T) {
	p := SearchParams{Q: "GRUND"}
	require.NoError(t, p.normalize())
	res := searchItems(equipmentSet(), p)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "P-1", res.Items[0].Code)
}

func TestSearchPageBeyondEnd(t *testing.T) {
	p := SearchParams{Page: 9, Limit: 10}
	require.NoError(t, p.normalize())
	res := searchItems(equipmentSet(), p)
	assert.Empty(t, res.Items)
	assert.Equal(t, 26, res.Total)
}

func TestSearchRejectsUnknownSort(t *testing.T) {
	p := SearchParams{SortBy: "password"}
	err := p.normalize()
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	client := &models.Client{Name: "Acme"}
	loc := &models.Location{Name: "Chaufferie", Level: &models.Level{Building: &models.Building{Site: &models.Site{Client: client}}}}
	items := []models.Equipment{
		{Base: models.Base{CreatedAt: now.AddDate(0, 0, -2), UpdatedAt: now.AddDate(0, 0, -2)}, Statut: "En service", EtatSante: "Bon", Famille: "CVC", FrequenceMaintenance: 30, Location: loc, InclureGMAO: true},
		{Base: models.Base{CreatedAt: now.AddDate(0, -3, 0), UpdatedAt: now.AddDate(0, 0, -1)}, Statut: "Alerte", EtatSante: "Mauvais", Famille: "CVC", FrequenceMaintenance: 60, EstCritique: true},
		{Base: models.Base{CreatedAt: now.AddDate(-1, 0, 0), UpdatedAt: now.AddDate(-1, 0, 0)}, Statut: "Alerte", EtatSante: "Bon"},
	}
	st := computeStats(items, now)

	assert.Equal(t, 3, st.Total)
	assert.Equal(t, map[string]int{"En service": 1, "Alerte": 2}, st.ByStatus)
	assert.Equal(t, map[string]int{"Bon": 2, "Mauvais": 1}, st.ByHealth)
	assert.Equal(t, map[string]int{"CVC": 2, unassigned: 1}, st.ByFamily)
	assert.Equal(t, 1, st.ByLocation["Chaufferie"])
	assert.Equal(t, 1, st.ByClient["Acme"])
	assert.Equal(t, 2, st.ByClient[unassigned])
	assert.Equal(t, 1, st.Critical)
	assert.Equal(t, 1, st.IncludedInGMAO)
	assert.InDelta(t, 45.0, st.AverageMaintenanceFrequency, 0.001)
	assert.Equal(t, 1, st.RecentActivity.Created)
	assert.Equal(t, 1, st.RecentActivity.Updated)
}

func TestEscapeCSV(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{"a,b", `"a,b"`},
		{`6" pipe`, `"6"" pipe"`},
		{"line\nbreak", "\"line\nbreak\""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeCSV(tt.in), "EscapeCSV(%q)", tt.in)
	}
}

func TestExportWithLatestAudit(t *testing.T) {
	d := setupTestDB(t)
	h := buildHierarchy(t, d)
	ctx := context.Background()
	eqSvc := NewEquipmentService(repository.NewEquipmentRepository(d))
	e, err := eqSvc.Add(ctx, EquipmentInput{Code: "EQ-1", Libelle: "CTA, toiture", LocationID: h.location.ID})
	require.NoError(t, err)
	auditSvc := NewAuditService(repository.NewAuditRepository(d))
	for _, who := range []string{"Paul", "Léa"} {
		_, err := auditSvc.Add(ctx, AuditInput{EquipmentID: e.ID, Auditeur: who, StatutGlobal: "Conforme"})
		require.NoError(t, err)
	}

	records, opts, err := eqSvc.Export(ctx, ExportOptions{Format: "CSV", IncludeAudits: true, ClientID: h.client.ID})
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, opts.Format)
	require.Len(t, records, 1)
	r := records[0]
	assert.Equal(t, "Acme", r.Client)
	assert.Equal(t, "Chaufferie", r.Location)
	assert.Equal(t, 2, r.AuditCount)
	assert.Equal(t, 2, r.LastAuditVersion)
	assert.Equal(t, "Léa", r.LastAuditAuditeur)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records, true))
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Contains(t, string(lines[0]), "lastAuditVersion")
	assert.Contains(t, string(lines[1]), `"CTA, toiture"`)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	_, _, err := NewEquipmentService(nil).Export(context.Background(), ExportOptions{Format: "xlsx"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestBulkContinuesPastFailures(t *testing.T) {
	d := setupTestDB(t)
	h := buildHierarchy(t, d)
	ctx := context.Background()
	svc := NewEquipmentService(repository.NewEquipmentRepository(d))
	var ids []string
	for i := 1; i <= 3; i++ {
		e, err := svc.Add(ctx, EquipmentInput{Code: fmt.Sprintf("EQ-%d", i), Libelle: "CTA", LocationID: h.location.ID})
		require.NoError(t, err)
		ids = append(ids, e.ID)
	}

	statut := "Hors service"
	req := BulkRequest{Operation: BulkUpdateStatus, IDs: []string{ids[0], "missing", ids[1], ids[2]}, Data: EquipmentPatch{Statut: &statut}}
	outcomes, err := svc.Bulk(ctx, req)
	require.NoError(t, err)
	require.Len(t, outcomes, 4)

	var ok, failed []string
	for _, o := range outcomes {
		if o.OK() {
			ok = append(ok, o.ID)
			assert.Equal(t, "Hors service", o.Item.Statut)
		} else {
			failed = append(failed, o.ID)
			assert.True(t, errors.Is(o.Err, apperr.ErrNotFound))
		}
	}
	assert.Equal(t, []string{ids[0], ids[1], ids[2]}, ok)
	assert.Equal(t, []string{"missing"}, failed)
	assert.Equal(t, len(outcomes), len(ok)+len(failed))
}

func TestBulkDelete(t *testing.T) {
	d := setupTestDB(t)
	h := buildHierarchy(t, d)
	ctx := context.Background()
	svc := NewEquipmentService(repository.NewEquipmentRepository(d))
	e, err := svc.Add(ctx, EquipmentInput{Code: "EQ-D", Libelle: "CTA", LocationID: h.location.ID})
	require.NoError(t, err)

	outcomes, err := svc.Bulk(ctx, BulkRequest{Operation: BulkDelete, IDs: []string{e.ID}})
	require.NoError(t, err)
	require.True(t, outcomes[0].OK())
	_, err = svc.FetchByID(ctx, e.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestBulkValidation(t *testing.T) {
	svc := NewEquipmentService(nil)
	tests := []struct {
		name string
		req  BulkRequest
	}{
		{"unknown op", BulkRequest{Operation: "archive", IDs: []string{"a"}}},
		{"no ids", BulkRequest{Operation: BulkDelete}},
		{"status missing", BulkRequest{Operation: BulkUpdateStatus, IDs: []string{"a"}}},
		{"health missing", BulkRequest{Operation: BulkUpdateHealth, IDs: []string{"a"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Bulk(context.Background(), tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrValidation))
		})
	}
}
