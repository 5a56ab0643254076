package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/diewo77/gmao/internal/apperr"
	"github.com/diewo77/gmao/internal/db"
	"github.com/diewo77/gmao/internal/models"
	"github.com/diewo77/gmao/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(d); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return d
}

// hierarchy builds client → site → building → level → location through the services.
type hierarchy struct {
	client   *models.Client
	site     *models.Site
	building *models.Building
	level    *models.Level
	location *models.Location
}

func buildHierarchy(t *testing.T, d *gorm.DB) hierarchy {
	t.Helper()
	ctx := context.Background()
	var h hierarchy
	var err error
	h.client, err = NewClientService(repository.NewClientRepository(d)).Add(ctx, ClientInput{Name: " Acme "})
	require.NoError(t, err)
	h.site, err = NewSiteService(repository.NewSiteRepository(d)).Add(ctx, SiteInput{Name: "Lyon", ClientID: h.client.ID})
	require.NoError(t, err)
	h.building, err = NewBuildingService(repository.NewBuildingRepository(d)).Add(ctx, BuildingInput{Name: "A", SiteID: h.site.ID})
	require.NoError(t, err)
	h.level, err = NewLevelService(repository.NewLevelRepository(d)).Add(ctx, LevelInput{Name: "RDC", BuildingID: h.building.ID})
	require.NoError(t, err)
	h.location, err = NewLocationService(repository.NewLocationRepository(d)).Add(ctx, LocationInput{Name: "Chaufferie", LevelID: h.level.ID})
	require.NoError(t, err)
	return h
}

// countingStore records whether any persistence call reached it.
type countingStore struct {
	EquipmentStore
	calls int
}

func (c *countingStore) Create(context.Context, *models.Equipment) error {
	c.calls++
	return nil
}

func (c *countingStore) Update(context.Context, string, map[string]any) (*models.Equipment, error) {
	c.calls++
	return &models.Equipment{}, nil
}

func TestAddRequiresFieldsBeforeIO(t *testing.T) {
	ctx := context.Background()
	d := setupTestDB(t)

	store := &countingStore{}
	eq := NewEquipmentService(store)

	tests := []struct {
		name  string
		run   func() error
		field string
	}{
		{"client name", func() error { _, err := NewClientService(nil).Add(ctx, ClientInput{Name: "   "}); return err }, "name"},
		{"site client", func() error { _, err := NewSiteService(nil).Add(ctx, SiteInput{Name: "S"}); return err }, "clientId"},
		{"site avancement", func() error {
			_, err := NewSiteService(nil).Add(ctx, SiteInput{Name: "S", ClientID: "c", Avancement: "fini"})
			return err
		}, "avancement"},
		{"building name", func() error { _, err := NewBuildingService(nil).Add(ctx, BuildingInput{SiteID: "s"}); return err }, "name"},
		{"level building", func() error { _, err := NewLevelService(nil).Add(ctx, LevelInput{Name: "L"}); return err }, "buildingId"},
		{"location level", func() error { _, err := NewLocationService(nil).Add(ctx, LocationInput{Name: "L"}); return err }, "levelId"},
		{"equipment code", func() error { _, err := eq.Add(ctx, EquipmentInput{Libelle: "x", LocationID: "l"}); return err }, "code"},
		{"equipment libelle", func() error { _, err := eq.Add(ctx, EquipmentInput{Code: "E", LocationID: "l"}); return err }, "libelle"},
		{"audit auditeur", func() error {
			_, err := NewAuditService(repository.NewAuditRepository(d)).Add(ctx, AuditInput{EquipmentID: "e"})
			return err
		}, "auditeur"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperr.ErrValidation))
			var ae *apperr.Error
			require.True(t, errors.As(err, &ae))
			assert.Contains(t, ae.Fields, tt.field)
		})
	}
	assert.Zero(t, store.calls, "validation failures must not reach the store")
}

func TestEquipmentDefaults(t *testing.T) {
	d := setupTestDB(t)
	h := buildHierarchy(t, d)
	svc := NewEquipmentService(repository.NewEquipmentRepository(d))

	e, err := svc.Add(context.Background(), EquipmentInput{Code: " EQ-1 ", Libelle: "Pompe", LocationID: h.location.ID})
	require.NoError(t, err)
	assert.Equal(t, "EQ-1", e.Code)
	assert.Equal(t, models.DefaultEquipmentStatus, e.Statut)
	assert.Equal(t, models.DefaultEquipmentHealth, e.EtatSante)
	assert.Equal(t, 1, e.Quantite)
	assert.True(t, e.InclureGMAO)

	off := false
	two := 2
	e2, err := svc.Add(context.Background(), EquipmentInput{Code: "EQ-2", Libelle: "Pompe", LocationID: h.location.ID, InclureGMAO: &off, Quantite: &two})
	require.NoError(t, err)
	stored, err := svc.FetchByID(context.Background(), e2.ID)
	require.NoError(t, err)
	assert.False(t, stored.InclureGMAO, "an explicit false must be persisted")
	assert.Equal(t, 2, stored.Quantite)
}

func TestModifyLeavesOtherFieldsUntouched(t *testing.T) {
	d := setupTestDB(t)
	h := buildHierarchy(t, d)
	ctx := context.Background()
	svc := NewEquipmentService(repository.NewEquipmentRepository(d))

	e, err := svc.Add(ctx, EquipmentInput{Code: "EQ-1", Libelle: "Pompe", Marque: "Grundfos", Famille: "Hydraulique", LocationID: h.location.ID, FrequenceMaintenance: 90})
	require.NoError(t, err)
	before, err := svc.FetchByID(ctx, e.ID)
	require.NoError(t, err)

	statut := "Alerte"
	after, err := svc.Modify(ctx, e.ID, EquipmentPatch{Statut: &statut})
	require.NoError(t, err)

	assert.Equal(t, "Alerte", after.Statut)
	assert.Equal(t, before.Code, after.Code)
	assert.Equal(t, before.Libelle, after.Libelle)
	assert.Equal(t, before.Marque, after.Marque)
	assert.Equal(t, before.Famille, after.Famille)
	assert.Equal(t, before.EtatSante, after.EtatSante)
	assert.Equal(t, before.FrequenceMaintenance, after.FrequenceMaintenance)
	assert.Equal(t, before.InclureGMAO, after.InclureGMAO)
	assert.Equal(t, before.LocationID, after.LocationID)
}

func TestModifyRejectsBlankRequiredField(t *testing.T) {
	blank := "  "
	_, err := NewClientService(nil).Modify(context.Background(), "id", ClientPatch{Name: &blank})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestRemoveClientWithSites(t *testing.T) {
	d := setupTestDB(t)
	h := buildHierarchy(t, d)
	svc := NewClientService(repository.NewClientRepository(d))

	_, err := svc.Remove(context.Background(), h.client.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
	assert.Contains(t, err.Error(), "existing sites")

	still, err := svc.FetchByID(context.Background(), h.client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", still.Name)
}

func TestRemoveEmptyClientReturnsRow(t *testing.T) {
	d := setupTestDB(t)
	svc := NewClientService(repository.NewClientRepository(d))
	c, err := svc.Add(context.Background(), ClientInput{Name: "Solo"})
	require.NoError(t, err)

	deleted, err := svc.Remove(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, deleted.ID)
}

func TestAuditVersionsThroughService(t *testing.T) {
	d := setupTestDB(t)
	h := buildHierarchy(t, d)
	ctx := context.Background()
	e, err := NewEquipmentService(repository.NewEquipmentRepository(d)).Add(ctx, EquipmentInput{Code: "EQ-1", Libelle: "CTA", LocationID: h.location.ID})
	require.NoError(t, err)

	svc := NewAuditService(repository.NewAuditRepository(d))
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	for i := 1; i <= 3; i++ {
		a, err := svc.Add(ctx, AuditInput{
			EquipmentID: e.ID,
			Auditeur:    "Léa",
			Checklist:   models.Checklist{{Label: "Filtres", Statut: "OK"}},
			Photos:      []string{"/uploads/a.jpg"},
		})
		require.NoError(t, err)
		assert.Equal(t, i, a.Version)
		assert.True(t, a.DateAudit.Equal(fixed))
	}

	list, err := svc.FetchByEquipment(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Filtres", list[0].Checklist[0].Label)
	assert.Equal(t, []string{"/uploads/a.jpg"}, []string(list[0].Photos))

	notes := "RAS"
	updated, err := svc.Modify(ctx, list[0].ID, AuditPatch{NotesGlobales: &notes})
	require.NoError(t, err)
	assert.Equal(t, "RAS", updated.NotesGlobales)
	assert.Equal(t, list[0].Version, updated.Version)
}

func TestReferenceSettingsMap(t *testing.T) {
	d := setupTestDB(t)
	require.NoError(t, d.Create(&models.Setting{Key: "app.name", Value: "GMAO"}).Error)
	svc := NewReferenceService(repository.NewReferenceRepository(d))
	got, err := svc.Settings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"app.name": "GMAO"}, got)
}

type fakeQR struct {
	payload string
	err     error
}

func (f *fakeQR) GenerateQRCode(_ context.Context, id string) (string, error) {
	f.payload = id
	if f.err != nil {
		return "", f.err
	}
	return "data:image/png;base64,AAAA", nil
}

func TestAttachQRCode(t *testing.T) {
	d := setupTestDB(t)
	h := buildHierarchy(t, d)
	ctx := context.Background()
	svc := NewEquipmentService(repository.NewEquipmentRepository(d))
	e, err := svc.Add(ctx, EquipmentInput{Code: "EQ-QR", Libelle: "CTA", LocationID: h.location.ID})
	require.NoError(t, err)

	gen := &fakeQR{}
	updated, err := svc.AttachQRCode(ctx, e.ID, gen)
	require.NoError(t, err)
	assert.Equal(t, "EQ-QR", gen.payload)
	assert.Equal(t, "data:image/png;base64,AAAA", updated.QRCode)

	_, err = svc.AttachQRCode(ctx, e.ID, &fakeQR{err: errors.New("boom")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrProvider))
}
