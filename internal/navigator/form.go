package navigator

import (
	"context"

	"github.com/diewo77/gmao/internal/apperr"
	"github.com/diewo77/gmao/internal/models"
	"github.com/diewo77/gmao/internal/services"
	"github.com/diewo77/gmao/internal/validation"
)

// Form creates a child under a selected node. The parent id is bound when the
// form is built and cannot be overridden by the decoded body.
type Form interface {
	ChildKind() Kind
	Validate() error
	Submit(ctx context.Context, c Creators) (any, error)
}

type (
	SiteCreator interface {
		Add(ctx context.Context, in services.SiteInput) (*models.Site, error)
	}
	BuildingCreator interface {
		Add(ctx context.Context, in services.BuildingInput) (*models.Building, error)
	}
	LevelCreator interface {
		Add(ctx context.Context, in services.LevelInput) (*models.Level, error)
	}
	LocationCreator interface {
		Add(ctx context.Context, in services.LocationInput) (*models.Location, error)
	}
	EquipmentCreator interface {
		Add(ctx context.Context, in services.EquipmentInput) (*models.Equipment, error)
	}
)

// Creators are the services forms submit through.
type Creators struct {
	Sites      SiteCreator
	Buildings  BuildingCreator
	Levels     LevelCreator
	Locations  LocationCreator
	Equipments EquipmentCreator
}

// NewChildForm returns the form of the level below parent, filled with defaults.
func NewChildForm(parent Node) (Form, error) {
	switch p := parent.(type) {
	case *ClientNode:
		return &SiteForm{parentID: p.ID(), SiteInput: services.SiteInput{Avancement: string(models.AvancementNonCommence)}}, nil
	case *SiteNode:
		return &BuildingForm{parentID: p.ID()}, nil
	case *BuildingNode:
		return &LevelForm{parentID: p.ID()}, nil
	case *LevelNode:
		return &LocationForm{parentID: p.ID()}, nil
	case *LocationNode:
		qty, gmao := models.DefaultQuantity, true
		return &EquipmentForm{parentID: p.ID(), EquipmentInput: services.EquipmentInput{
			Statut:      models.DefaultEquipmentStatus,
			EtatSante:   models.DefaultEquipmentHealth,
			Quantite:    &qty,
			InclureGMAO: &gmao,
		}}, nil
	case *EquipmentNode:
		return nil, apperr.Invalid("equipment has no child level")
	default:
		return nil, apperr.Invalid("unknown node kind")
	}
}

type SiteForm struct {
	parentID string
	services.SiteInput
}

func (f *SiteForm) ChildKind() Kind { return KindSite }

func (f *SiteForm) Validate() error {
	v := validation.Violations{}
	validation.Required("name", f.Name, v)
	validation.OneOf("avancement", f.Avancement, models.Avancements, v)
	return violations(v)
}

func (f *SiteForm) Submit(ctx context.Context, c Creators) (any, error) {
	f.ClientID = f.parentID
	return c.Sites.Add(ctx, f.SiteInput)
}

type BuildingForm struct {
	parentID string
	services.BuildingInput
}

func (f *BuildingForm) ChildKind() Kind { return KindBuilding }

func (f *BuildingForm) Validate() error {
	v := validation.Violations{}
	validation.Required("name", f.Name, v)
	return violations(v)
}

func (f *BuildingForm) Submit(ctx context.Context, c Creators) (any, error) {
	f.SiteID = f.parentID
	return c.Buildings.Add(ctx, f.BuildingInput)
}

type LevelForm struct {
	parentID string
	services.LevelInput
}

func (f *LevelForm) ChildKind() Kind { return KindLevel }

func (f *LevelForm) Validate() error {
	v := validation.Violations{}
	validation.Required("name", f.Name, v)
	return violations(v)
}

func (f *LevelForm) Submit(ctx context.Context, c Creators) (any, error) {
	f.BuildingID = f.parentID
	return c.Levels.Add(ctx, f.LevelInput)
}

type LocationForm struct {
	parentID string
	services.LocationInput
}

func (f *LocationForm) ChildKind() Kind { return KindLocation }

func (f *LocationForm) Validate() error {
	v := validation.Violations{}
	validation.Required("name", f.Name, v)
	return violations(v)
}

func (f *LocationForm) Submit(ctx context.Context, c Creators) (any, error) {
	f.LevelID = f.parentID
	return c.Locations.Add(ctx, f.LocationInput)
}

type EquipmentForm struct {
	parentID string
	services.EquipmentInput
}

func (f *EquipmentForm) ChildKind() Kind { return KindEquipment }

func (f *EquipmentForm) Validate() error {
	v := validation.Violations{}
	validation.Required("code", f.Code, v)
	validation.Required("libelle", f.Libelle, v)
	return violations(v)
}

func (f *EquipmentForm) Submit(ctx context.Context, c Creators) (any, error) {
	f.LocationID = f.parentID
	return c.Equipments.Add(ctx, f.EquipmentInput)
}

func violations(v validation.Violations) error {
	if v.Empty() {
		return nil
	}
	return apperr.Validation(v)
}
