package navigator

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/diewo77/gmao/internal/apperr"
	"github.com/diewo77/gmao/internal/models"
	"github.com/diewo77/gmao/internal/services"
	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func sampleClient() *models.Client {
	eq := func(id, code, statut string, critical bool) models.Equipment {
		return models.Equipment{Base: models.Base{ID: id}, Code: code, Libelle: "CTA", Statut: statut, EtatSante: "Bon", InclureGMAO: true, EstCritique: critical}
	}
	return &models.Client{
		Base: models.Base{ID: "c1"}, Name: "Acme Énergie",
		Sites: []models.Site{{
			Base: models.Base{ID: "s1"}, Name: "Lyon Part-Dieu",
			Buildings: []models.Building{
				{
					Base: models.Base{ID: "b1"}, Name: "Bâtiment A",
					Levels: []models.Level{{
						Base: models.Base{ID: "l1"}, Name: "Rez-de-chaussée",
						Locations: []models.Location{{
							Base: models.Base{ID: "loc1"}, Name: "Local CTA",
							Equipments: []models.Equipment{
								eq("e1", "EQ-001", "En service", false),
								eq("e2", "EQ-002", "Alerte", true),
							},
						}},
					}},
				},
				{Base: models.Base{ID: "b2"}, Name: "Bâtiment A"},
			},
		}},
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Bâtiment A", "batiment-a"},
		{"Rez-de-chaussée", "rez-de-chaussee"},
		{"  Local   CTA / R+1 ", "local-cta-r-1"},
		{"Œuvre", "uvre"},
		{"EQ-001", "eq-001"},
		{"", "item"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildTree(t *testing.T) {
	root := Build(sampleClient())
	got := ToView(root, -1)
	want := View{Kind: KindClient, ID: "c1", Label: "Acme Énergie", Slug: "acme-energie", ChildCount: 1, Children: []View{
		{Kind: KindSite, ID: "s1", Label: "Lyon Part-Dieu", Slug: "lyon-part-dieu", ChildCount: 2, Children: []View{
			{Kind: KindBuilding, ID: "b1", Label: "Bâtiment A", Slug: "batiment-a", ChildCount: 1, Children: []View{
				{Kind: KindLevel, ID: "l1", Label: "Rez-de-chaussée", Slug: "rez-de-chaussee", ChildCount: 1, Children: []View{
					{Kind: KindLocation, ID: "loc1", Label: "Local CTA", Slug: "local-cta", ChildCount: 2, Children: []View{
						{Kind: KindEquipment, ID: "e1", Label: "EQ-001 - CTA", Slug: "eq-001"},
						{Kind: KindEquipment, ID: "e2", Label: "EQ-002 - CTA", Slug: "eq-002"},
					}},
				}},
			}},
			{Kind: KindBuilding, ID: "b2", Label: "Bâtiment A", Slug: "batiment-a-2"},
		}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve(t *testing.T) {
	root := Build(sampleClient())

	node, trail, err := Resolve(root, strings.Split("lyon-part-dieu/batiment-a/rez-de-chaussee/local-cta", "/"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if node.Kind() != KindLocation || node.ID() != "loc1" {
		t.Fatalf("resolved %s %s", node.Kind(), node.ID())
	}
	kinds := make([]Kind, len(trail))
	for i, n := range trail {
		kinds[i] = n.Kind()
	}
	if diff := cmp.Diff([]Kind{KindClient, KindSite, KindBuilding, KindLevel, KindLocation}, kinds); diff != "" {
		t.Errorf("trail kinds (-want +got):\n%s", diff)
	}

	// ids are accepted in place of slugs
	byID, _, err := Resolve(root, []string{"s1", "b2"})
	if err != nil || byID.ID() != "b2" {
		t.Fatalf("Resolve by id = %v, %v", byID, err)
	}

	_, _, err = Resolve(root, []string{"lyon-part-dieu", "nope"})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	self, trail, err := Resolve(root, nil)
	if err != nil || self != Node(root) || len(trail) != 1 {
		t.Fatalf("empty path must select the root")
	}
}

func TestBreadcrumbs(t *testing.T) {
	root := Build(sampleClient())
	_, trail, err := Resolve(root, []string{"lyon-part-dieu", "batiment-a"})
	if err != nil {
		t.Fatal(err)
	}
	got := Breadcrumbs(trail)
	want := []Crumb{
		{Kind: KindClient, ID: "c1", Label: "Acme Énergie", Path: []string{}},
		{Kind: KindSite, ID: "s1", Label: "Lyon Part-Dieu", Path: []string{"lyon-part-dieu"}},
		{Kind: KindBuilding, ID: "b1", Label: "Bâtiment A", Path: []string{"lyon-part-dieu", "batiment-a"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("breadcrumbs (-want +got):\n%s", diff)
	}
}

func TestScopeResetsDescendants(t *testing.T) {
	s := Scope{}.WithSite("s1").WithBuilding("b1").WithLevel("l1").WithLocation("loc1")
	if diff := cmp.Diff(Scope{SiteID: "s1", BuildingID: "b1", LevelID: "l1", LocationID: "loc1"}, s); diff != "" {
		t.Fatalf("full scope (-want +got):\n%s", diff)
	}
	if got := s.WithBuilding("b2"); got != (Scope{SiteID: "s1", BuildingID: "b2"}) {
		t.Errorf("WithBuilding kept descendants: %+v", got)
	}
	if got := s.WithSite("s2"); got != (Scope{SiteID: "s2"}) {
		t.Errorf("WithSite kept descendants: %+v", got)
	}
	if got := s.WithLevel("l2"); got != (Scope{SiteID: "s1", BuildingID: "b1", LevelID: "l2"}) {
		t.Errorf("WithLevel kept location: %+v", got)
	}
}

func TestScopeApplyAndOf(t *testing.T) {
	root := Build(sampleClient())
	_, trail, _ := Resolve(root, []string{"lyon-part-dieu", "batiment-a", "rez-de-chaussee"})
	s := ScopeOf(trail)
	if s != (Scope{SiteID: "s1", BuildingID: "b1", LevelID: "l1"}) {
		t.Fatalf("ScopeOf = %+v", s)
	}
	if n := s.Apply(root); n.ID() != "l1" {
		t.Errorf("Apply selected %s", n.ID())
	}
	if n := (Scope{SiteID: "ghost"}).Apply(root); n != Node(root) {
		t.Errorf("unknown scope must fall back to root")
	}
}

func TestFilter(t *testing.T) {
	root := Build(sampleClient())
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", Filter{}, []string{"EQ-001", "EQ-002"}},
		{"status", Filter{Statuses: []string{"Alerte"}}, []string{"EQ-002"}},
		{"critical", Filter{CriticalOnly: true}, []string{"EQ-002"}},
		{"text", Filter{Text: "001"}, []string{"EQ-001"}},
		{"no match", Filter{Health: []string{"Mauvais"}}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, e := range tt.filter.Apply(root) {
				got = append(got, e.Code)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("codes (-want +got):\n%s", diff)
			}
		})
	}
}

type recordingCreators struct {
	sites      []services.SiteInput
	equipments []services.EquipmentInput
}

type siteAdder struct{ r *recordingCreators }

func (a siteAdder) Add(_ context.Context, in services.SiteInput) (*models.Site, error) {
	a.r.sites = append(a.r.sites, in)
	return &models.Site{Name: in.Name, ClientID: in.ClientID}, nil
}

type equipmentAdder struct{ r *recordingCreators }

func (a equipmentAdder) Add(_ context.Context, in services.EquipmentInput) (*models.Equipment, error) {
	a.r.equipments = append(a.r.equipments, in)
	return &models.Equipment{Code: in.Code, LocationID: in.LocationID}, nil
}

func TestNewChildFormKinds(t *testing.T) {
	root := Build(sampleClient())
	site := root.Sites[0]
	building := site.Buildings[0]
	level := building.Levels[0]
	location := level.Locations[0]
	tests := []struct {
		parent Node
		want   Kind
	}{
		{root, KindSite},
		{site, KindBuilding},
		{building, KindLevel},
		{level, KindLocation},
		{location, KindEquipment},
	}
	for _, tt := range tests {
		t.Run(string(tt.parent.Kind()), func(t *testing.T) {
			f, err := NewChildForm(tt.parent)
			if err != nil {
				t.Fatalf("NewChildForm: %v", err)
			}
			if f.ChildKind() != tt.want {
				t.Errorf("ChildKind = %s, want %s", f.ChildKind(), tt.want)
			}
		})
	}
	if _, err := NewChildForm(location.Equipments[0]); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("equipment must not accept children, got %v", err)
	}
}

func TestFormBindsParentAndDefaults(t *testing.T) {
	root := Build(sampleClient())
	rec := &recordingCreators{}
	creators := Creators{Sites: siteAdder{rec}, Equipments: equipmentAdder{rec}}

	f, err := NewChildForm(root)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(`{"name":"Grenoble","clientId":"someone-else"}`), f); err != nil {
		t.Fatal(err)
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if _, err := f.Submit(context.Background(), creators); err != nil {
		t.Fatal(err)
	}
	if got := rec.sites[0]; got.ClientID != "c1" || got.Avancement != "non_commence" {
		t.Errorf("site input = %+v", got)
	}

	loc := root.Sites[0].Buildings[0].Levels[0].Locations[0]
	ef, _ := NewChildForm(loc)
	if err := json.Unmarshal([]byte(`{"code":"EQ-9","libelle":"Split"}`), ef); err != nil {
		t.Fatal(err)
	}
	if _, err := ef.Submit(context.Background(), creators); err != nil {
		t.Fatal(err)
	}
	got := rec.equipments[0]
	if got.LocationID != "loc1" || got.Statut != models.DefaultEquipmentStatus || got.Quantite == nil || *got.Quantite != 1 {
		t.Errorf("equipment input = %+v", got)
	}
}

func TestFormValidate(t *testing.T) {
	f, _ := NewChildForm(Build(sampleClient()))
	if err := f.Validate(); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("empty site form must fail validation, got %v", err)
	}
}
