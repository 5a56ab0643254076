package models

// Location is a room or zone on a level; it holds equipment.
type Location struct {
	Base
	Name  string `gorm:"size:255;not null" json:"name"`
	Image string `gorm:"size:1000" json:"image,omitempty"`

	LevelID string `gorm:"size:36;index;not null" json:"levelId"`
	Level   *Level `gorm:"foreignKey:LevelID" json:"level,omitempty"`

	Equipments []Equipment `gorm:"foreignKey:LocationID" json:"equipments,omitempty"`
}
