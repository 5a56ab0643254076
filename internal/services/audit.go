package services

import (
	"context"
	"time"

	"github.com/diewo77/gmao/internal/models"
	"github.com/diewo77/gmao/internal/validation"
)

type AuditStore interface {
	List(ctx context.Context) ([]models.Audit, error)
	Get(ctx context.Context, id string) (*models.Audit, error)
	ListByEquipment(ctx context.Context, equipmentID string) ([]models.Audit, error)
	Latest(ctx context.Context, equipmentID string) (*models.Audit, error)
	Create(ctx context.Context, a *models.Audit) error
	Update(ctx context.Context, id string, fields map[string]any) (*models.Audit, error)
	Delete(ctx context.Context, id string) (*models.Audit, error)
}

type AuditInput struct {
	EquipmentID   string           `json:"equipmentId"`
	Auditeur      string           `json:"auditeur"`
	DateAudit     *time.Time       `json:"dateAudit"`
	StatutGlobal  string           `json:"statutGlobal"`
	NotesGlobales string           `json:"notesGlobales"`
	Checklist     models.Checklist `json:"checklist"`
	Photos        []string         `json:"photos"`
}

// AuditPatch never carries a version: versions are assigned at creation only.
type AuditPatch struct {
	Auditeur      *string           `json:"auditeur"`
	DateAudit     *time.Time        `json:"dateAudit"`
	StatutGlobal  *string           `json:"statutGlobal"`
	NotesGlobales *string           `json:"notesGlobales"`
	Checklist     *models.Checklist `json:"checklist"`
	Photos        *[]string         `json:"photos"`
}

type AuditService struct {
	store AuditStore
	now   func() time.Time
}

func NewAuditService(store AuditStore) *AuditService {
	return &AuditService{store: store, now: time.Now}
}

func (s *AuditService) FetchAll(ctx context.Context) ([]models.Audit, error) {
	return s.store.List(ctx)
}

func (s *AuditService) FetchByID(ctx context.Context, id string) (*models.Audit, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id)
}

func (s *AuditService) FetchByEquipment(ctx context.Context, equipmentID string) ([]models.Audit, error) {
	if err := requireID("equipmentId", equipmentID); err != nil {
		return nil, err
	}
	return s.store.ListByEquipment(ctx, equipmentID)
}

func (s *AuditService) FetchLatest(ctx context.Context, equipmentID string) (*models.Audit, error) {
	if err := requireID("equipmentId", equipmentID); err != nil {
		return nil, err
	}
	return s.store.Latest(ctx, equipmentID)
}

// Add records a new audit; the store assigns the next version of the equipment.
func (s *AuditService) Add(ctx context.Context, in AuditInput) (*models.Audit, error) {
	v := validation.Violations{}
	validation.RequiredID("equipmentId", in.EquipmentID, v)
	validation.Required("auditeur", in.Auditeur, v)
	if err := check(v); err != nil {
		return nil, err
	}
	a := &models.Audit{
		EquipmentID:   trim(in.EquipmentID),
		Auditeur:      trim(in.Auditeur),
		StatutGlobal:  trim(in.StatutGlobal),
		NotesGlobales: trim(in.NotesGlobales),
		Checklist:     in.Checklist,
		Photos:        models.StringList(in.Photos),
		DateAudit:     s.now(),
	}
	if in.DateAudit != nil {
		a.DateAudit = *in.DateAudit
	}
	if err := s.store.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AuditService) Modify(ctx context.Context, id string, p AuditPatch) (*models.Audit, error) {
	v := validation.Violations{}
	validation.RequiredID("id", id, v)
	validation.RequiredPtr("auditeur", p.Auditeur, v)
	if err := check(v); err != nil {
		return nil, err
	}
	cols := columns{}
	cols.str("auditeur", p.Auditeur)
	set(cols, "date_audit", p.DateAudit)
	cols.str("statut_global", p.StatutGlobal)
	cols.str("notes_globales", p.NotesGlobales)
	set(cols, "checklist", p.Checklist)
	if p.Photos != nil {
		cols["photos"] = models.StringList(*p.Photos)
	}
	return s.store.Update(ctx, id, cols)
}

func (s *AuditService) Remove(ctx context.Context, id string) (*models.Audit, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return s.store.Delete(ctx, id)
}
