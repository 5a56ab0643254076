package models

// Avancement tracks the progress of the audit campaign on a site.
type Avancement string

const (
	AvancementNonCommence Avancement = "non_commence"
	AvancementCommence    Avancement = "commence"
	AvancementEnCours     Avancement = "en_cours"
	AvancementTermine     Avancement = "termine"
)

// Avancements lists the accepted progress values.
var Avancements = []string{
	string(AvancementNonCommence),
	string(AvancementCommence),
	string(AvancementEnCours),
	string(AvancementTermine),
}

// Valid reports whether a is one of the known progress values.
func (a Avancement) Valid() bool {
	switch a {
	case AvancementNonCommence, AvancementCommence, AvancementEnCours, AvancementTermine:
		return true
	}
	return false
}

// Site is a physical site belonging to a client.
type Site struct {
	Base
	Name        string     `gorm:"size:255;not null" json:"name"`
	Address     string     `gorm:"size:500" json:"address,omitempty"`
	CodeClient  string     `gorm:"size:100" json:"codeClient,omitempty"`
	CodeAffaire string     `gorm:"size:100" json:"codeAffaire,omitempty"`
	CodeContrat string     `gorm:"size:100" json:"codeContrat,omitempty"`
	Image       string     `gorm:"size:1000" json:"image,omitempty"`
	EstPlanifie bool       `gorm:"not null;default:false" json:"estPlanifie"`
	Avancement  Avancement `gorm:"size:20;not null;default:'non_commence'" json:"avancement"`

	ClientID string  `gorm:"size:36;index;not null" json:"clientId"`
	Client   *Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`

	Buildings []Building `gorm:"foreignKey:SiteID" json:"buildings,omitempty"`
}
