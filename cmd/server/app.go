package main

import (
	"net/http"

	"github.com/diewo77/gmao/internal/logging"
	"github.com/diewo77/gmao/internal/metrics"
	"github.com/diewo77/gmao/internal/middleware"
	"github.com/diewo77/gmao/internal/policy"
	"go.uber.org/zap"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux       *http.ServeMux
	routerCfg *policy.RouterConfig
	metrics   *metrics.Registry
	log       *zap.Logger
	handler   http.Handler
}

// NewApp creates a new application with all routes configured.
func NewApp(routerCfg *policy.RouterConfig, reg *metrics.Registry, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	app := &App{
		mux:       http.NewServeMux(),
		routerCfg: routerCfg,
		metrics:   reg,
		log:       log,
	}
	app.setupRoutes()
	// Preferences and the active client replace the request, so they run
	// outside the access log and metrics, which read the mux route pattern.
	app.handler = middleware.Preferences(middleware.ActiveClient(
		logging.Middleware(log, reg.Middleware(app.mux)),
	))
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

// setupRoutes configures all application routes.
func (a *App) setupRoutes() {
	// ─────────────────────────────────────────────────────────────────────────
	// Operations
	// ─────────────────────────────────────────────────────────────────────────
	hh := a.routerCfg.HealthHandler
	a.mux.HandleFunc("GET /health", hh.Live)
	a.mux.HandleFunc("GET /healthz", hh.Ready)
	a.mux.Handle("GET /metrics", a.metrics.Handler())

	// ─────────────────────────────────────────────────────────────────────────
	// Hierarchy
	// ─────────────────────────────────────────────────────────────────────────
	ch := a.routerCfg.ClientHandler
	a.mux.HandleFunc("GET /api/clients", ch.List)
	a.mux.HandleFunc("POST /api/clients", ch.Create)
	a.mux.HandleFunc("GET /api/clients/{id}", ch.Get)
	a.mux.HandleFunc("PUT /api/clients/{id}", ch.Update)
	a.mux.HandleFunc("DELETE /api/clients/{id}", ch.Delete)

	sh := a.routerCfg.SiteHandler
	a.mux.HandleFunc("GET /api/sites", sh.List)
	a.mux.HandleFunc("POST /api/sites", sh.Create)
	a.mux.HandleFunc("GET /api/sites/{id}", sh.Get)
	a.mux.HandleFunc("PUT /api/sites/{id}", sh.Update)
	a.mux.HandleFunc("DELETE /api/sites/{id}", sh.Delete)
	a.mux.HandleFunc("GET /api/sites/client/{id}", sh.ByClient)

	bh := a.routerCfg.BuildingHandler
	a.mux.HandleFunc("GET /api/buildings", bh.List)
	a.mux.HandleFunc("POST /api/buildings", bh.Create)
	a.mux.HandleFunc("GET /api/buildings/{id}", bh.Get)
	a.mux.HandleFunc("PUT /api/buildings/{id}", bh.Update)
	a.mux.HandleFunc("DELETE /api/buildings/{id}", bh.Delete)
	a.mux.HandleFunc("GET /api/buildings/site/{id}", bh.BySite)
	a.mux.HandleFunc("GET /api/buildings/client/{id}", bh.ByClient)

	lh := a.routerCfg.LevelHandler
	a.mux.HandleFunc("GET /api/levels", lh.List)
	a.mux.HandleFunc("POST /api/levels", lh.Create)
	a.mux.HandleFunc("GET /api/levels/{id}", lh.Get)
	a.mux.HandleFunc("PUT /api/levels/{id}", lh.Update)
	a.mux.HandleFunc("DELETE /api/levels/{id}", lh.Delete)
	a.mux.HandleFunc("GET /api/levels/building/{id}", lh.ByBuilding)
	a.mux.HandleFunc("GET /api/levels/site/{id}", lh.BySite)

	loh := a.routerCfg.LocationHandler
	a.mux.HandleFunc("GET /api/locations", loh.List)
	a.mux.HandleFunc("POST /api/locations", loh.Create)
	a.mux.HandleFunc("GET /api/locations/{id}", loh.Get)
	a.mux.HandleFunc("PUT /api/locations/{id}", loh.Update)
	a.mux.HandleFunc("DELETE /api/locations/{id}", loh.Delete)
	a.mux.HandleFunc("GET /api/locations/level/{id}", loh.ByLevel)
	a.mux.HandleFunc("GET /api/locations/building/{id}", loh.ByBuilding)
	a.mux.HandleFunc("GET /api/locations/site/{id}", loh.BySite)

	// ─────────────────────────────────────────────────────────────────────────
	// Equipment
	// ─────────────────────────────────────────────────────────────────────────
	eh := a.routerCfg.EquipmentHandler
	a.mux.HandleFunc("GET /api/equipments", eh.List)
	a.mux.HandleFunc("POST /api/equipments", eh.Create)
	a.mux.HandleFunc("GET /api/equipments/search", eh.Search)
	a.mux.HandleFunc("GET /api/equipments/stats", eh.Stats)
	a.mux.HandleFunc("GET /api/equipments/export", eh.Export)
	a.mux.HandleFunc("POST /api/equipments/bulk", eh.Bulk)
	a.mux.HandleFunc("GET /api/equipments/code/{code}", eh.ByCode)
	a.mux.HandleFunc("GET /api/equipments/{id}", eh.Get)
	a.mux.HandleFunc("PUT /api/equipments/{id}", eh.Update)
	a.mux.HandleFunc("DELETE /api/equipments/{id}", eh.Delete)
	a.mux.HandleFunc("PUT /api/equipments/{id}/status", eh.UpdateStatus)
	a.mux.HandleFunc("PUT /api/equipments/{id}/health", eh.UpdateHealth)
	a.mux.HandleFunc("POST /api/equipments/{id}/qrcode", eh.QRCode)
	a.mux.HandleFunc("GET /api/equipments/location/{id}", eh.ByLocation)
	a.mux.HandleFunc("GET /api/equipments/level/{id}", eh.ByLevel)
	a.mux.HandleFunc("GET /api/equipments/building/{id}", eh.ByBuilding)
	a.mux.HandleFunc("GET /api/equipments/site/{id}", eh.BySite)
	a.mux.HandleFunc("GET /api/equipments/client/{id}", eh.ByClient)

	ah := a.routerCfg.AuditHandler
	a.mux.HandleFunc("GET /api/audits", ah.List)
	a.mux.HandleFunc("POST /api/audits", ah.Create)
	a.mux.HandleFunc("GET /api/audits/{id}", ah.Get)
	a.mux.HandleFunc("PUT /api/audits/{id}", ah.Update)
	a.mux.HandleFunc("DELETE /api/audits/{id}", ah.Delete)
	a.mux.HandleFunc("GET /api/audits/equipment/{id}", ah.ByEquipment)
	a.mux.HandleFunc("GET /api/audits/equipment/{id}/latest", ah.Latest)

	// ─────────────────────────────────────────────────────────────────────────
	// Navigator, session and reference data
	// ─────────────────────────────────────────────────────────────────────────
	th := a.routerCfg.TreeHandler
	a.mux.HandleFunc("GET /api/clients/{id}/tree", th.Get)
	a.mux.HandleFunc("GET /api/clients/{id}/tree/{path...}", th.Get)
	a.mux.HandleFunc("POST /api/clients/{id}/tree", th.Create)
	a.mux.HandleFunc("POST /api/clients/{id}/tree/{path...}", th.Create)

	ssh := a.routerCfg.SessionHandler
	a.mux.HandleFunc("GET /api/session/client", ssh.Get)
	a.mux.HandleFunc("PUT /api/session/client", ssh.Put)

	rh := a.routerCfg.ReferenceHandler
	a.mux.HandleFunc("GET /api/technical-domains", rh.TechnicalDomains)
	a.mux.HandleFunc("GET /api/settings", rh.Settings)

	// ─────────────────────────────────────────────────────────────────────────
	// AI flows
	// ─────────────────────────────────────────────────────────────────────────
	fh := a.routerCfg.FlowHandler
	a.mux.HandleFunc("POST /api/ai/audit-report", fh.AuditReport)
	a.mux.HandleFunc("POST /api/ai/presentation", fh.Presentation)
	a.mux.HandleFunc("POST /api/ai/asset-details", fh.AssetDetails)
	a.mux.HandleFunc("POST /api/ai/qrcode", fh.QRCode)

	// ─────────────────────────────────────────────────────────────────────────
	// Uploads and explorer pages
	// ─────────────────────────────────────────────────────────────────────────
	uh := a.routerCfg.UploadHandler
	a.mux.HandleFunc("POST /api/uploads", uh.Create)
	a.mux.HandleFunc("GET /uploads/{key...}", uh.Serve)

	a.mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/explorer", http.StatusSeeOther)
	})
	a.mux.HandleFunc("GET /explorer", th.Clients)
	a.mux.HandleFunc("GET /explorer/{id}", th.Explorer)
	a.mux.HandleFunc("GET /explorer/{id}/{path...}", th.Explorer)
}
