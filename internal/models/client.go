package models

// Client is the root of ownership; it owns Sites.
type Client struct {
	Base
	Name        string `gorm:"size:255;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	Sites []Site `gorm:"foreignKey:ClientID" json:"sites,omitempty"`
}
