package services

import (
	"context"
	"time"

	"github.com/diewo77/gmao/internal/apperr"
	"github.com/diewo77/gmao/internal/models"
	"github.com/diewo77/gmao/internal/validation"
)

type EquipmentStore interface {
	List(ctx context.Context) ([]models.Equipment, error)
	ListWithPlacement(ctx context.Context) ([]models.Equipment, error)
	ListWithAudits(ctx context.Context, clientID string) ([]models.Equipment, error)
	Get(ctx context.Context, id string) (*models.Equipment, error)
	GetByCode(ctx context.Context, code string) (*models.Equipment, error)
	ListByLocation(ctx context.Context, locationID string) ([]models.Equipment, error)
	ListByLevel(ctx context.Context, levelID string) ([]models.Equipment, error)
	ListByBuilding(ctx context.Context, buildingID string) ([]models.Equipment, error)
	ListBySite(ctx context.Context, siteID string) ([]models.Equipment, error)
	ListByClient(ctx context.Context, clientID string) ([]models.Equipment, error)
	Create(ctx context.Context, e *models.Equipment) error
	Update(ctx context.Context, id string, fields map[string]any) (*models.Equipment, error)
	Delete(ctx context.Context, id string) (*models.Equipment, error)
}

// QRGenerator renders the QR code image of an equipment identifier as a data URI.
type QRGenerator interface {
	GenerateQRCode(ctx context.Context, content string) (string, error)
}

type EquipmentInput struct {
	Code                 string     `json:"code"`
	Libelle              string     `json:"libelle"`
	Type                 string     `json:"type"`
	Famille              string     `json:"famille"`
	SousFamille          string     `json:"sousFamille"`
	Marque               string     `json:"marque"`
	Modele               string     `json:"modele"`
	NumeroSerie          string     `json:"numeroSerie"`
	Fournisseur          string     `json:"fournisseur"`
	DomaineTechnique     string     `json:"domaineTechnique"`
	Puissance            string     `json:"puissance"`
	Commentaire          string     `json:"commentaire"`
	Statut               string     `json:"statut"`
	EtatSante            string     `json:"etatSante"`
	Quantite             *int       `json:"quantite"`
	InclureGMAO          *bool      `json:"inclureGMAO"`
	EstCritique          bool       `json:"estCritique"`
	EstSensible          bool       `json:"estSensible"`
	FrequenceMaintenance int        `json:"frequenceMaintenance"`
	DateInstallation     *time.Time `json:"dateInstallation"`
	DateMiseEnService    *time.Time `json:"dateMiseEnService"`
	DateFinGarantie      *time.Time `json:"dateFinGarantie"`
	DerniereMaintenance  *time.Time `json:"derniereMaintenance"`
	ProchaineMaintenance *time.Time `json:"prochaineMaintenance"`
	Image                string     `json:"image"`
	PhotoURL             string     `json:"photoUrl"`
	QRCode               string     `json:"qrCode"`
	LocationID           string     `json:"locationId"`
}

// EquipmentPatch lists the updatable fields; nil means "leave untouched".
type EquipmentPatch struct {
	Code                 *string    `json:"code"`
	Libelle              *string    `json:"libelle"`
	Type                 *string    `json:"type"`
	Famille              *string    `json:"famille"`
	SousFamille          *string    `json:"sousFamille"`
	Marque               *string    `json:"marque"`
	Modele               *string    `json:"modele"`
	NumeroSerie          *string    `json:"numeroSerie"`
	Fournisseur          *string    `json:"fournisseur"`
	DomaineTechnique     *string    `json:"domaineTechnique"`
	Puissance            *string    `json:"puissance"`
	Commentaire          *string    `json:"commentaire"`
	Statut               *string    `json:"statut"`
	EtatSante            *string    `json:"etatSante"`
	Quantite             *int       `json:"quantite"`
	InclureGMAO          *bool      `json:"inclureGMAO"`
	EstCritique          *bool      `json:"estCritique"`
	EstSensible          *bool      `json:"estSensible"`
	FrequenceMaintenance *int       `json:"frequenceMaintenance"`
	DateInstallation     *time.Time `json:"dateInstallation"`
	DateMiseEnService    *time.Time `json:"dateMiseEnService"`
	DateFinGarantie      *time.Time `json:"dateFinGarantie"`
	DerniereMaintenance  *time.Time `json:"derniereMaintenance"`
	ProchaineMaintenance *time.Time `json:"prochaineMaintenance"`
	Image                *string    `json:"image"`
	PhotoURL             *string    `json:"photoUrl"`
	QRCode               *string    `json:"qrCode"`
}

func (p EquipmentPatch) validate(v validation.Violations) {
	validation.RequiredPtr("code", p.Code, v)
	validation.RequiredPtr("libelle", p.Libelle, v)
	validation.RequiredPtr("statut", p.Statut, v)
	validation.RequiredPtr("etatSante", p.EtatSante, v)
	if p.Quantite != nil {
		validation.PositiveInt("quantite", *p.Quantite, v)
	}
	if p.FrequenceMaintenance != nil {
		validation.NonNegativeInt("frequenceMaintenance", *p.FrequenceMaintenance, v)
	}
}

func (p EquipmentPatch) columns() columns {
	cols := columns{}
	cols.str("code", p.Code)
	cols.str("libelle", p.Libelle)
	cols.str("type", p.Type)
	cols.str("famille", p.Famille)
	cols.str("sous_famille", p.SousFamille)
	cols.str("marque", p.Marque)
	cols.str("modele", p.Modele)
	cols.str("numero_serie", p.NumeroSerie)
	cols.str("fournisseur", p.Fournisseur)
	cols.str("domaine_technique", p.DomaineTechnique)
	cols.str("puissance", p.Puissance)
	cols.str("commentaire", p.Commentaire)
	cols.str("statut", p.Statut)
	cols.str("etat_sante", p.EtatSante)
	set(cols, "quantite", p.Quantite)
	set(cols, "inclure_gmao", p.InclureGMAO)
	set(cols, "est_critique", p.EstCritique)
	set(cols, "est_sensible", p.EstSensible)
	set(cols, "frequence_maintenance", p.FrequenceMaintenance)
	set(cols, "date_installation", p.DateInstallation)
	set(cols, "date_mise_en_service", p.DateMiseEnService)
	set(cols, "date_fin_garantie", p.DateFinGarantie)
	set(cols, "derniere_maintenance", p.DerniereMaintenance)
	set(cols, "prochaine_maintenance", p.ProchaineMaintenance)
	cols.str("image", p.Image)
	cols.str("photo_url", p.PhotoURL)
	cols.str("qr_code", p.QRCode)
	return cols
}

type EquipmentService struct {
	store EquipmentStore
	now   func() time.Time
}

func NewEquipmentService(store EquipmentStore) *EquipmentService {
	return &EquipmentService{store: store, now: time.Now}
}

func (s *EquipmentService) FetchAll(ctx context.Context) ([]models.Equipment, error) {
	return s.store.List(ctx)
}

func (s *EquipmentService) FetchByID(ctx context.Context, id string) (*models.Equipment, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return s.store.Get(ctx, id)
}

func (s *EquipmentService) FetchByCode(ctx context.Context, code string) (*models.Equipment, error) {
	if err := requireID("code", code); err != nil {
		return nil, err
	}
	return s.store.GetByCode(ctx, trim(code))
}

func (s *EquipmentService) FetchByLocation(ctx context.Context, locationID string) ([]models.Equipment, error) {
	if err := requireID("locationId", locationID); err != nil {
		return nil, err
	}
	return s.store.ListByLocation(ctx, locationID)
}

func (s *EquipmentService) FetchByLevel(ctx context.Context, levelID string) ([]models.Equipment, error) {
	if err := requireID("levelId", levelID); err != nil {
		return nil, err
	}
	return s.store.ListByLevel(ctx, levelID)
}

func (s *EquipmentService) FetchByBuilding(ctx context.Context, buildingID string) ([]models.Equipment, error) {
	if err := requireID("buildingId", buildingID); err != nil {
		return nil, err
	}
	return s.store.ListByBuilding(ctx, buildingID)
}

func (s *EquipmentService) FetchBySite(ctx context.Context, siteID string) ([]models.Equipment, error) {
	if err := requireID("siteId", siteID); err != nil {
		return nil, err
	}
	return s.store.ListBySite(ctx, siteID)
}

func (s *EquipmentService) FetchByClient(ctx context.Context, clientID string) ([]models.Equipment, error) {
	if err := requireID("clientId", clientID); err != nil {
		return nil, err
	}
	return s.store.ListByClient(ctx, clientID)
}

// Add creates an equipment, applying the statut/etatSante/quantite/inclureGMAO defaults.
func (s *EquipmentService) Add(ctx context.Context, in EquipmentInput) (*models.Equipment, error) {
	v := validation.Violations{}
	validation.Required("code", in.Code, v)
	validation.Required("libelle", in.Libelle, v)
	validation.RequiredID("locationId", in.LocationID, v)
	if in.Quantite != nil {
		validation.PositiveInt("quantite", *in.Quantite, v)
	}
	validation.NonNegativeInt("frequenceMaintenance", in.FrequenceMaintenance, v)
	if err := check(v); err != nil {
		return nil, err
	}

	e := &models.Equipment{
		Code:                 trim(in.Code),
		Libelle:              trim(in.Libelle),
		Type:                 trim(in.Type),
		Famille:              trim(in.Famille),
		SousFamille:          trim(in.SousFamille),
		Marque:               trim(in.Marque),
		Modele:               trim(in.Modele),
		NumeroSerie:          trim(in.NumeroSerie),
		Fournisseur:          trim(in.Fournisseur),
		DomaineTechnique:     trim(in.DomaineTechnique),
		Puissance:            trim(in.Puissance),
		Commentaire:          trim(in.Commentaire),
		Statut:               trim(in.Statut),
		EtatSante:            trim(in.EtatSante),
		Quantite:             models.DefaultQuantity,
		InclureGMAO:          true,
		EstCritique:          in.EstCritique,
		EstSensible:          in.EstSensible,
		FrequenceMaintenance: in.FrequenceMaintenance,
		DateInstallation:     in.DateInstallation,
		DateMiseEnService:    in.DateMiseEnService,
		DateFinGarantie:      in.DateFinGarantie,
		DerniereMaintenance:  in.DerniereMaintenance,
		ProchaineMaintenance: in.ProchaineMaintenance,
		Image:                trim(in.Image),
		PhotoURL:             trim(in.PhotoURL),
		QRCode:               trim(in.QRCode),
		LocationID:           trim(in.LocationID),
	}
	if e.Statut == "" {
		e.Statut = models.DefaultEquipmentStatus
	}
	if e.EtatSante == "" {
		e.EtatSante = models.DefaultEquipmentHealth
	}
	if in.Quantite != nil {
		e.Quantite = *in.Quantite
	}
	if in.InclureGMAO != nil {
		e.InclureGMAO = *in.InclureGMAO
	}
	if err := s.store.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *EquipmentService) Modify(ctx context.Context, id string, p EquipmentPatch) (*models.Equipment, error) {
	v := validation.Violations{}
	validation.RequiredID("id", id, v)
	p.validate(v)
	if err := check(v); err != nil {
		return nil, err
	}
	return s.store.Update(ctx, id, p.columns())
}

func (s *EquipmentService) UpdateStatus(ctx context.Context, id, statut string) (*models.Equipment, error) {
	v := validation.Violations{}
	validation.RequiredID("id", id, v)
	validation.Required("statut", statut, v)
	if err := check(v); err != nil {
		return nil, err
	}
	return s.store.Update(ctx, id, map[string]any{"statut": trim(statut)})
}

func (s *EquipmentService) UpdateHealth(ctx context.Context, id, etatSante string) (*models.Equipment, error) {
	v := validation.Violations{}
	validation.RequiredID("id", id, v)
	validation.Required("etatSante", etatSante, v)
	if err := check(v); err != nil {
		return nil, err
	}
	return s.store.Update(ctx, id, map[string]any{"etat_sante": trim(etatSante)})
}

func (s *EquipmentService) Remove(ctx context.Context, id string) (*models.Equipment, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	return s.store.Delete(ctx, id)
}

// AttachQRCode renders the QR code of the equipment code and stores it on the row.
func (s *EquipmentService) AttachQRCode(ctx context.Context, id string, gen QRGenerator) (*models.Equipment, error) {
	e, err := s.FetchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	uri, err := gen.GenerateQRCode(ctx, e.Code)
	if err != nil {
		return nil, apperr.Provider("failed to generate QR code", err)
	}
	return s.store.Update(ctx, id, map[string]any{"qr_code": uri})
}
