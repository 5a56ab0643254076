package models

import "time"

// Audit is a versioned inspection record of one equipment.
// (equipment_id, version) is unique; versions start at 1.
type Audit struct {
	Base
	EquipmentID string     `gorm:"size:36;not null;uniqueIndex:idx_audit_equipment_version,priority:1" json:"equipmentId"`
	Equipment   *Equipment `gorm:"foreignKey:EquipmentID" json:"equipment,omitempty"`
	Version     int        `gorm:"not null;uniqueIndex:idx_audit_equipment_version,priority:2" json:"version"`

	Auditeur      string     `gorm:"size:255;not null" json:"auditeur"`
	DateAudit     time.Time  `json:"dateAudit"`
	StatutGlobal  string     `gorm:"size:50" json:"statutGlobal,omitempty"`
	NotesGlobales string     `gorm:"type:text" json:"notesGlobales,omitempty"`
	Checklist     Checklist  `gorm:"type:text" json:"checklist"`
	Photos        StringList `gorm:"type:text" json:"photos"`
}
