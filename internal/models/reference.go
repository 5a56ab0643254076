package models

import "time"

// User is an application account. Only the seeded admin exists for now.
type User struct {
	Base
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name     string `gorm:"size:255" json:"name,omitempty"`
	Password string `gorm:"size:255;not null" json:"-"` // Hashed, never exposed in JSON
	Role     string `gorm:"size:50;not null;default:'user'" json:"role"`
}

// TechnicalDomain is a maintenance discipline (CVC, electricity, ...).
type TechnicalDomain struct {
	Base
	Code string `gorm:"uniqueIndex;size:50;not null" json:"code"`
	Name string `gorm:"size:255;not null" json:"name"`
}

// Setting is an application-wide key/value pair.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// All lists every model in dependency order, for migrations and tests.
func All() []any {
	return []any{
		&User{}, &TechnicalDomain{}, &Setting{},
		&Client{}, &Site{}, &Building{}, &Level{}, &Location{}, &Equipment{}, &Audit{},
	}
}
