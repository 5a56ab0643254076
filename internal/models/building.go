package models

// Building belongs to a site and owns levels.
type Building struct {
	Base
	Name  string `gorm:"size:255;not null" json:"name"`
	Type  string `gorm:"size:100" json:"type,omitempty"`
	Image string `gorm:"size:1000" json:"image,omitempty"`

	SiteID string `gorm:"size:36;index;not null" json:"siteId"`
	Site   *Site  `gorm:"foreignKey:SiteID" json:"site,omitempty"`

	Levels []Level `gorm:"foreignKey:BuildingID" json:"levels,omitempty"`
}
