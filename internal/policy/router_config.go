// Package policy assembles repositories, services and handlers into the
// configuration the router is built from.
package policy

import (
	"github.com/diewo77/gmao/internal/blob"
	"github.com/diewo77/gmao/internal/flows"
	"github.com/diewo77/gmao/internal/handlers"
	"github.com/diewo77/gmao/internal/metrics"
	"github.com/diewo77/gmao/internal/navigator"
	"github.com/diewo77/gmao/internal/repository"
	"github.com/diewo77/gmao/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the process-wide collaborators shared by every handler.
type Deps struct {
	DB      *gorm.DB
	Flows   *flows.Flows
	Blob    blob.Store
	Metrics *metrics.Registry
	Log     *zap.Logger
}

// RouterConfig holds configured handlers for the application.
type RouterConfig struct {
	// Hierarchy handlers
	ClientHandler    *handlers.ClientHandler
	SiteHandler      *handlers.SiteHandler
	BuildingHandler  *handlers.BuildingHandler
	LevelHandler     *handlers.LevelHandler
	LocationHandler  *handlers.LocationHandler
	EquipmentHandler *handlers.EquipmentHandler
	AuditHandler     *handlers.AuditHandler

	// Navigation, session and explorer
	TreeHandler    *handlers.TreeHandler
	SessionHandler *handlers.SessionHandler

	// Supporting handlers
	FlowHandler      *handlers.FlowHandler
	ReferenceHandler *handlers.ReferenceHandler
	UploadHandler    *handlers.UploadHandler
	HealthHandler    *handlers.HealthHandler

	// Services
	Clients    *services.ClientService
	Equipments *services.EquipmentService
}

// NewRouterConfig wires repositories into services and services into handlers.
func NewRouterConfig(d Deps) (*RouterConfig, error) {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	clients := services.NewClientService(repository.NewClientRepository(d.DB))
	sites := services.NewSiteService(repository.NewSiteRepository(d.DB))
	buildings := services.NewBuildingService(repository.NewBuildingRepository(d.DB))
	levels := services.NewLevelService(repository.NewLevelRepository(d.DB))
	locations := services.NewLocationService(repository.NewLocationRepository(d.DB))
	equipments := services.NewEquipmentService(repository.NewEquipmentRepository(d.DB))
	audits := services.NewAuditService(repository.NewAuditRepository(d.DB))
	reference := services.NewReferenceService(repository.NewReferenceRepository(d.DB))

	sqlDB, err := d.DB.DB()
	if err != nil {
		return nil, err
	}

	creators := navigator.Creators{
		Sites:      sites,
		Buildings:  buildings,
		Levels:     levels,
		Locations:  locations,
		Equipments: equipments,
	}

	return &RouterConfig{
		ClientHandler:    handlers.NewClientHandler(clients),
		SiteHandler:      handlers.NewSiteHandler(sites),
		BuildingHandler:  handlers.NewBuildingHandler(buildings),
		LevelHandler:     handlers.NewLevelHandler(levels),
		LocationHandler:  handlers.NewLocationHandler(locations),
		EquipmentHandler: handlers.NewEquipmentHandler(equipments, d.Flows, d.Metrics),
		AuditHandler:     handlers.NewAuditHandler(audits),
		TreeHandler:      handlers.NewTreeHandler(clients, creators, log),
		SessionHandler:   handlers.NewSessionHandler(clients),
		FlowHandler:      handlers.NewFlowHandler(d.Flows),
		ReferenceHandler: handlers.NewReferenceHandler(reference),
		UploadHandler:    handlers.NewUploadHandler(d.Blob, log),
		HealthHandler:    handlers.NewHealthHandler(sqlDB),
		Clients:          clients,
		Equipments:       equipments,
	}, nil
}
