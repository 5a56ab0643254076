package models

// Level is a floor of a building.
type Level struct {
	Base
	Name  string `gorm:"size:255;not null" json:"name"`
	Image string `gorm:"size:1000" json:"image,omitempty"`

	BuildingID string    `gorm:"size:36;index;not null" json:"buildingId"`
	Building   *Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"`

	Locations []Location `gorm:"foreignKey:LevelID" json:"locations,omitempty"`
}
