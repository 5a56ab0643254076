package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/diewo77/gmao/internal/apperr"
	"github.com/diewo77/gmao/internal/httpx"
	"github.com/diewo77/gmao/internal/middleware"
	"github.com/diewo77/gmao/internal/models"
	"github.com/diewo77/gmao/internal/navigator"
	"github.com/diewo77/gmao/internal/services"
	"github.com/diewo77/gmao/internal/view"
	"go.uber.org/zap"
)

// TreeHandler serves the hierarchy navigator as JSON and as the explorer page.
type TreeHandler struct {
	clients  *services.ClientService
	creators navigator.Creators
	log      *zap.Logger
}

func NewTreeHandler(clients *services.ClientService, creators navigator.Creators, log *zap.Logger) *TreeHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &TreeHandler{clients: clients, creators: creators, log: log}
}

type treeResponse struct {
	Node        navigator.View     `json:"node"`
	Breadcrumbs []navigator.Crumb  `json:"breadcrumbs"`
	Scope       navigator.Scope    `json:"scope"`
	Filter      navigator.Filter   `json:"filter"`
	Equipments  []models.Equipment `json:"equipments"`
}

func segments(r *http.Request) []string {
	p := strings.Trim(r.PathValue("path"), "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// resolve loads the client subtree and walks the path segments of r.
func (h *TreeHandler) resolve(ctx context.Context, clientID string, segs []string) (*navigator.ClientNode, navigator.Node, []navigator.Node, error) {
	c, err := h.clients.FetchTree(ctx, clientID)
	if err != nil {
		return nil, nil, nil, err
	}
	root := navigator.Build(c)
	node, trail, err := navigator.Resolve(root, segs)
	if err != nil {
		return nil, nil, nil, err
	}
	return root, node, trail, nil
}

func filterFrom(r *http.Request) navigator.Filter {
	q := r.URL.Query()
	flag := func(name string) bool {
		b, _ := strconv.ParseBool(q.Get(name))
		return b
	}
	return navigator.Filter{
		Statuses:     q["statut"],
		Health:       q["etatSante"],
		Text:         q.Get("q"),
		GMAOOnly:     flag("gmao"),
		CriticalOnly: flag("critical"),
	}
}

// Get handles GET /api/clients/{id}/tree[/{path...}]. Without a path the
// scope query (siteId, buildingId, levelId, locationId) selects the node.
func (h *TreeHandler) Get(w http.ResponseWriter, r *http.Request) {
	segs := segments(r)
	root, node, trail, err := h.resolve(r.Context(), r.PathValue("id"), segs)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if len(segs) == 0 {
		q := r.URL.Query()
		requested := navigator.Scope{}.
			WithSite(q.Get("siteId")).
			WithBuilding(q.Get("buildingId")).
			WithLevel(q.Get("levelId")).
			WithLocation(q.Get("locationId"))
		node = requested.Apply(root)
		_, trail, _ = navigator.Resolve(root, scopeIDs(requested, node))
	}

	depth := -1
	if len(segs) > 0 {
		depth = 1
	}
	if s := r.URL.Query().Get("depth"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			httpx.WriteError(w, apperr.Validation(map[string]string{"depth": "invalid_value"}))
			return
		}
		depth = n
	}

	f := filterFrom(r)
	httpx.JSON(w, http.StatusOK, treeResponse{
		Node:        navigator.ToView(node, depth),
		Breadcrumbs: navigator.Breadcrumbs(trail),
		Scope:       navigator.ScopeOf(trail),
		Filter:      f,
		Equipments:  f.Apply(node),
	})
}

// scopeIDs lists the ids of the scope levels down to the node Apply selected.
func scopeIDs(s navigator.Scope, selected navigator.Node) []string {
	var ids []string
	for _, id := range []string{s.SiteID, s.BuildingID, s.LevelID, s.LocationID} {
		if id == "" {
			break
		}
		ids = append(ids, id)
		if id == selected.ID() {
			break
		}
	}
	if selected.Kind() == navigator.KindClient {
		return nil
	}
	return ids
}

// Create handles POST /api/clients/{id}/tree[/{path...}]: the body describes a
// child of the selected node, whose id is bound by the form.
func (h *TreeHandler) Create(w http.ResponseWriter, r *http.Request) {
	_, node, _, err := h.resolve(r.Context(), r.PathValue("id"), segments(r))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	form, err := navigator.NewChildForm(node)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := httpx.DecodeJSON(r, form); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if err := form.Validate(); err != nil {
		httpx.WriteError(w, err)
		return
	}
	created, err := form.Submit(r.Context(), h.creators)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	h.log.Info("tree child created",
		zap.String("parent", node.ID()),
		zap.String("kind", string(form.ChildKind())),
	)
	httpx.JSON(w, http.StatusCreated, map[string]any{"kind": form.ChildKind(), "item": created})
}

// Clients renders the explorer landing page with the client picker.
func (h *TreeHandler) Clients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.FetchAll(r.Context())
	if err != nil {
		h.renderError(w, err)
		return
	}
	active, _ := middleware.ActiveClientID(r.Context())
	h.render(w, r, "clients.html", map[string]any{
		"Clients":        clients,
		"ActiveClientID": active,
	})
}

// Explorer renders GET /explorer/{id}/{path...} and remembers the client as the active one.
func (h *TreeHandler) Explorer(w http.ResponseWriter, r *http.Request) {
	clientID := r.PathValue("id")
	_, node, trail, err := h.resolve(r.Context(), clientID, segments(r))
	if err != nil {
		h.renderError(w, err)
		return
	}
	if active, _ := middleware.ActiveClientID(r.Context()); active != clientID {
		middleware.SetActiveClient(w, clientID)
	}
	f := filterFrom(r)
	h.render(w, r, "explorer.html", map[string]any{
		"ClientID":   clientID,
		"Node":       navigator.ToView(node, 1),
		"Crumbs":     navigator.Breadcrumbs(trail),
		"Path":       navigator.Path(trail),
		"Filter":     f,
		"Equipments": f.Apply(node),
	})
}

func (h *TreeHandler) render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := view.Render(w, r, name, data); err != nil {
		h.log.Error("render failed", zap.String("page", name), zap.Error(err))
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

func (h *TreeHandler) renderError(w http.ResponseWriter, err error) {
	status := httpx.StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("explorer failed", zap.Error(err))
	}
	http.Error(w, http.StatusText(status), status)
}
