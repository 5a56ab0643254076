package models

import (
	"testing"
)

func TestBase_BeforeCreateAssignsID(t *testing.T) {
	b := &Base{}
	if err := b.BeforeCreate(nil); err != nil {
		t.Fatalf("BeforeCreate: %v", err)
	}
	if len(b.ID) != 36 {
		t.Errorf("ID = %q, want a UUID", b.ID)
	}

	fixed := &Base{ID: "given"}
	_ = fixed.BeforeCreate(nil)
	if fixed.ID != "given" {
		t.Errorf("ID overwritten: %q", fixed.ID)
	}
}

func TestAvancement_Valid(t *testing.T) {
	tests := []struct {
		in   Avancement
		want bool
	}{
		{AvancementNonCommence, true},
		{AvancementCommence, true},
		{AvancementEnCours, true},
		{AvancementTermine, true},
		{"fini", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			if got := tt.in.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestChecklist_ScanValue(t *testing.T) {
	in := Checklist{{Label: "Filtre", Statut: "OK"}, {Label: "Courroie", Statut: "NOK", Commentaire: "usée"}}
	v, err := in.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	var out Checklist
	if err := out.Scan([]byte(v.(string))); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(out) != 2 || out[1].Commentaire != "usée" {
		t.Errorf("unexpected checklist %#v", out)
	}
}

func TestStringList_NilAndEmpty(t *testing.T) {
	var s StringList
	v, _ := s.Value()
	if v != "[]" {
		t.Errorf("nil list Value() = %v, want []", v)
	}
	if err := s.Scan(nil); err != nil {
		t.Errorf("Scan(nil): %v", err)
	}
	if err := s.Scan(""); err != nil {
		t.Errorf("Scan(empty): %v", err)
	}
	if err := s.Scan(42); err == nil {
		t.Errorf("expected error for unsupported type")
	}
}

func TestEquipment_Placement(t *testing.T) {
	e := &Equipment{
		Location: &Location{
			LevelID: "lvl",
			Level: &Level{
				Base:       Base{ID: "lvl"},
				BuildingID: "bld",
				Building:   &Building{Base: Base{ID: "bld"}, SiteID: "site"},
			},
		},
	}
	site, building, level := e.Placement()
	if site != "site" || building != "bld" || level != "lvl" {
		t.Errorf("Placement() = %q %q %q", site, building, level)
	}

	bare := &Equipment{}
	if s, b, l := bare.Placement(); s != "" || b != "" || l != "" {
		t.Errorf("expected empty placement without preload")
	}
}
