package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/diewo77/gmao/internal/apperr"
	"github.com/diewo77/gmao/internal/httpx"
	"github.com/diewo77/gmao/internal/models"
	"github.com/diewo77/gmao/internal/services"
)

// BulkObserver receives per-operation bulk counts.
type BulkObserver interface {
	ObserveBulk(operation string, succeeded, failed int)
}

type EquipmentHandler struct {
	resource[models.Equipment, services.EquipmentInput, services.EquipmentPatch]
	ByLocation http.HandlerFunc
	ByLevel    http.HandlerFunc
	ByBuilding http.HandlerFunc
	BySite     http.HandlerFunc
	ByClient   http.HandlerFunc

	svc      *services.EquipmentService
	qr       services.QRGenerator
	observer BulkObserver
	now      func() time.Time
}

func NewEquipmentHandler(svc *services.EquipmentService, qr services.QRGenerator, observer BulkObserver) *EquipmentHandler {
	return &EquipmentHandler{
		resource: resource[models.Equipment, services.EquipmentInput, services.EquipmentPatch]{
			list:   svc.FetchAll,
			get:    svc.FetchByID,
			add:    svc.Add,
			modify: svc.Modify,
			remove: svc.Remove,
		},
		ByLocation: scoped(svc.FetchByLocation),
		ByLevel:    scoped(svc.FetchByLevel),
		ByBuilding: scoped(svc.FetchByBuilding),
		BySite:     scoped(svc.FetchBySite),
		ByClient:   scoped(svc.FetchByClient),
		svc:        svc,
		qr:         qr,
		observer:   observer,
		now:        time.Now,
	}
}

func (h *EquipmentHandler) ByCode(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.FetchByCode(r.Context(), r.PathValue("code"))
	respond(w, http.StatusOK, e, err)
}

// UpdateStatus handles PUT /api/equipments/{id}/status with {"statut": "..."}.
func (h *EquipmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Statut string `json:"statut"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.WriteError(w, err)
		return
	}
	e, err := h.svc.UpdateStatus(r.Context(), r.PathValue("id"), body.Statut)
	respond(w, http.StatusOK, e, err)
}

// UpdateHealth handles PUT /api/equipments/{id}/health with {"etatSante": "..."}.
func (h *EquipmentHandler) UpdateHealth(w http.ResponseWriter, r *http.Request) {
	var body struct {
		EtatSante string `json:"etatSante"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.WriteError(w, err)
		return
	}
	e, err := h.svc.UpdateHealth(r.Context(), r.PathValue("id"), body.EtatSante)
	respond(w, http.StatusOK, e, err)
}

func (h *EquipmentHandler) Search(w http.ResponseWriter, r *http.Request) {
	p, err := searchParams(r)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	res, err := h.svc.Search(r.Context(), p)
	respond(w, http.StatusOK, res, err)
}

func searchParams(r *http.Request) (services.SearchParams, error) {
	q := r.URL.Query()
	p := services.SearchParams{
		Q:          q.Get("q"),
		Statut:     q.Get("statut"),
		EtatSante:  q.Get("etatSante"),
		Famille:    q.Get("famille"),
		LocationID: q.Get("locationId"),
		SortBy:     q.Get("sortBy"),
		SortOrder:  q.Get("sortOrder"),
	}
	fields := map[string]string{}
	if s := q.Get("inclureGMAO"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			fields["inclureGMAO"] = "invalid_value"
		} else {
			p.InclureGMAO = &b
		}
	}
	for name, dst := range map[string]*int{"page": &p.Page, "limit": &p.Limit} {
		s := q.Get(name)
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			fields[name] = "invalid_value"
			continue
		}
		*dst = n
	}
	if len(fields) > 0 {
		return p, apperr.Validation(fields)
	}
	return p, nil
}

func (h *EquipmentHandler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Stats(r.Context())
	respond(w, http.StatusOK, st, err)
}

// Export handles GET /api/equipments/export?format=json|csv&includeAudits=true&clientId=.
func (h *EquipmentHandler) Export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	withAudits, _ := strconv.ParseBool(q.Get("includeAudits"))
	records, opts, err := h.svc.Export(r.Context(), services.ExportOptions{
		Format:        q.Get("format"),
		IncludeAudits: withAudits,
		ClientID:      q.Get("clientId"),
	})
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	filename := fmt.Sprintf("equipments-%s.%s", h.now().Format("20060102"), opts.Format)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if opts.Format == services.FormatCSV {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_ = services.WriteCSV(w, records, opts.IncludeAudits)
		return
	}
	httpx.JSON(w, http.StatusOK, records)
}

type bulkResult struct {
	ID   string            `json:"id"`
	Item *models.Equipment `json:"item,omitempty"`
}

type bulkError struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

type bulkSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

type bulkResponse struct {
	Results []bulkResult `json:"results"`
	Errors  []bulkError  `json:"errors"`
	Summary bulkSummary  `json:"summary"`
}

// Bulk handles POST /api/equipments/bulk. Per-item failures are reported in errors, never as the status.
func (h *EquipmentHandler) Bulk(w http.ResponseWriter, r *http.Request) {
	var req services.BulkRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, err)
		return
	}
	outcomes, err := h.svc.Bulk(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	resp := bulkResponse{Results: []bulkResult{}, Errors: []bulkError{}}
	for _, o := range outcomes {
		if o.OK() {
			resp.Results = append(resp.Results, bulkResult{ID: o.ID, Item: o.Item})
			continue
		}
		resp.Errors = append(resp.Errors, bulkError{ID: o.ID, Error: o.Err.Error()})
	}
	resp.Summary = bulkSummary{
		Total:     len(outcomes),
		Succeeded: len(resp.Results),
		Failed:    len(resp.Errors),
	}
	if h.observer != nil {
		h.observer.ObserveBulk(req.Operation, resp.Summary.Succeeded, resp.Summary.Failed)
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// QRCode handles POST /api/equipments/{id}/qrcode.
func (h *EquipmentHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.AttachQRCode(r.Context(), r.PathValue("id"), h.qr)
	respond(w, http.StatusOK, e, err)
}
