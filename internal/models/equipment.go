package models

import "time"

// Default values applied when equipment is created without them.
const (
	DefaultEquipmentStatus = "En service"
	DefaultEquipmentHealth = "Bon"
	DefaultQuantity        = 1
)

// Equipment is an asset installed in a location.
type Equipment struct {
	Base
	Code    string `gorm:"size:100;uniqueIndex;not null" json:"code"`
	Libelle string `gorm:"size:255;not null" json:"libelle"`

	Type             string `gorm:"size:100" json:"type,omitempty"`
	Famille          string `gorm:"size:100;index" json:"famille,omitempty"`
	SousFamille      string `gorm:"size:100" json:"sousFamille,omitempty"`
	Marque           string `gorm:"size:100" json:"marque,omitempty"`
	Modele           string `gorm:"size:100" json:"modele,omitempty"`
	NumeroSerie      string `gorm:"size:100" json:"numeroSerie,omitempty"`
	Fournisseur      string `gorm:"size:255" json:"fournisseur,omitempty"`
	DomaineTechnique string `gorm:"size:100" json:"domaineTechnique,omitempty"`
	Puissance        string `gorm:"size:50" json:"puissance,omitempty"`
	Commentaire      string `gorm:"type:text" json:"commentaire,omitempty"`

	Statut    string `gorm:"size:50;index;not null;default:'En service'" json:"statut"`
	EtatSante string `gorm:"size:50;index;not null;default:'Bon'" json:"etatSante"`

	Quantite    int  `gorm:"not null;default:1" json:"quantite"`
	InclureGMAO bool `gorm:"column:inclure_gmao;not null" json:"inclureGMAO"`
	EstCritique bool `gorm:"not null;default:false" json:"estCritique"`
	EstSensible bool `gorm:"not null;default:false" json:"estSensible"`

	// FrequenceMaintenance is the preventive maintenance period in days.
	FrequenceMaintenance int `gorm:"not null;default:0" json:"frequenceMaintenance"`

	DateInstallation     *time.Time `json:"dateInstallation,omitempty"`
	DateMiseEnService    *time.Time `json:"dateMiseEnService,omitempty"`
	DateFinGarantie      *time.Time `json:"dateFinGarantie,omitempty"`
	DerniereMaintenance  *time.Time `json:"derniereMaintenance,omitempty"`
	ProchaineMaintenance *time.Time `json:"prochaineMaintenance,omitempty"`

	Image    string `gorm:"size:1000" json:"image,omitempty"`
	PhotoURL string `gorm:"column:photo_url;size:1000" json:"photoUrl,omitempty"`
	QRCode   string `gorm:"column:qr_code;type:text" json:"qrCode,omitempty"`

	LocationID string    `gorm:"size:36;index;not null" json:"locationId"`
	Location   *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`

	Audits []Audit `gorm:"foreignKey:EquipmentID" json:"audits,omitempty"`
}

// Placement returns the ancestor ids of the equipment when its location chain is preloaded.
func (e *Equipment) Placement() (siteID, buildingID, levelID string) {
	if e.Location == nil || e.Location.Level == nil {
		return "", "", ""
	}
	levelID = e.Location.LevelID
	if b := e.Location.Level.Building; b != nil {
		buildingID = b.ID
		siteID = b.SiteID
	} else {
		buildingID = e.Location.Level.BuildingID
	}
	return siteID, buildingID, levelID
}

// TableName pins the table name; gorm treats "equipment" as uncountable.
func (Equipment) TableName() string { return "equipments" }
