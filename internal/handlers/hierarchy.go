package handlers

import (
	"net/http"

	"github.com/diewo77/gmao/internal/models"
	"github.com/diewo77/gmao/internal/services"
)

type ClientHandler struct {
	resource[models.Client, services.ClientInput, services.ClientPatch]
}

func NewClientHandler(svc *services.ClientService) *ClientHandler {
	return &ClientHandler{resource[models.Client, services.ClientInput, services.ClientPatch]{
		list:   svc.FetchAll,
		get:    svc.FetchByID,
		add:    svc.Add,
		modify: svc.Modify,
		remove: svc.Remove,
	}}
}

type SiteHandler struct {
	resource[models.Site, services.SiteInput, services.SitePatch]
	ByClient http.HandlerFunc
}

func NewSiteHandler(svc *services.SiteService) *SiteHandler {
	return &SiteHandler{
		resource: resource[models.Site, services.SiteInput, services.SitePatch]{
			list:   svc.FetchAll,
			get:    svc.FetchByID,
			add:    svc.Add,
			modify: svc.Modify,
			remove: svc.Remove,
		},
		ByClient: scoped(svc.FetchByClient),
	}
}

type BuildingHandler struct {
	resource[models.Building, services.BuildingInput, services.BuildingPatch]
	BySite   http.HandlerFunc
	ByClient http.HandlerFunc
}

func NewBuildingHandler(svc *services.BuildingService) *BuildingHandler {
	return &BuildingHandler{
		resource: resource[models.Building, services.BuildingInput, services.BuildingPatch]{
			list:   svc.FetchAll,
			get:    svc.FetchByID,
			add:    svc.Add,
			modify: svc.Modify,
			remove: svc.Remove,
		},
		BySite:   scoped(svc.FetchBySite),
		ByClient: scoped(svc.FetchByClient),
	}
}

type LevelHandler struct {
	resource[models.Level, services.LevelInput, services.LevelPatch]
	ByBuilding http.HandlerFunc
	BySite     http.HandlerFunc
}

func NewLevelHandler(svc *services.LevelService) *LevelHandler {
	return &LevelHandler{
		resource: resource[models.Level, services.LevelInput, services.LevelPatch]{
			list:   svc.FetchAll,
			get:    svc.FetchByID,
			add:    svc.Add,
			modify: svc.Modify,
			remove: svc.Remove,
		},
		ByBuilding: scoped(svc.FetchByBuilding),
		BySite:     scoped(svc.FetchBySite),
	}
}

type LocationHandler struct {
	resource[models.Location, services.LocationInput, services.LocationPatch]
	ByLevel    http.HandlerFunc
	ByBuilding http.HandlerFunc
	BySite     http.HandlerFunc
}

func NewLocationHandler(svc *services.LocationService) *LocationHandler {
	return &LocationHandler{
		resource: resource[models.Location, services.LocationInput, services.LocationPatch]{
			list:   svc.FetchAll,
			get:    svc.FetchByID,
			add:    svc.Add,
			modify: svc.Modify,
			remove: svc.Remove,
		},
		ByLevel:    scoped(svc.FetchByLevel),
		ByBuilding: scoped(svc.FetchByBuilding),
		BySite:     scoped(svc.FetchBySite),
	}
}

type AuditHandler struct {
	resource[models.Audit, services.AuditInput, services.AuditPatch]
	ByEquipment http.HandlerFunc
	svc         *services.AuditService
}

func NewAuditHandler(svc *services.AuditService) *AuditHandler {
	return &AuditHandler{
		resource: resource[models.Audit, services.AuditInput, services.AuditPatch]{
			list:   svc.FetchAll,
			get:    svc.FetchByID,
			add:    svc.Add,
			modify: svc.Modify,
			remove: svc.Remove,
		},
		ByEquipment: scoped(svc.FetchByEquipment),
		svc:         svc,
	}
}

// Latest returns the highest audit version of an equipment.
func (h *AuditHandler) Latest(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.FetchLatest(r.Context(), r.PathValue("id"))
	respond(w, http.StatusOK, a, err)
}
