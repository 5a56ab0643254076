package handlers

import (
	"context"
	"net/http"

	"github.com/diewo77/gmao/internal/flows"
	"github.com/diewo77/gmao/internal/httpx"
)

// FlowHandler exposes the AI flows as POST endpoints under /api/ai.
type FlowHandler struct {
	flows *flows.Flows
}

func NewFlowHandler(f *flows.Flows) *FlowHandler {
	return &FlowHandler{flows: f}
}

func invoke[I, O any](fn func(context.Context, I) (*O, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in I
		if err := httpx.DecodeJSON(r, &in); err != nil {
			httpx.WriteError(w, err)
			return
		}
		out, err := fn(r.Context(), in)
		respond(w, http.StatusOK, out, err)
	}
}

func (h *FlowHandler) AuditReport(w http.ResponseWriter, r *http.Request) {
	invoke(h.flows.GenerateAuditReport)(w, r)
}

func (h *FlowHandler) Presentation(w http.ResponseWriter, r *http.Request) {
	invoke(h.flows.GeneratePresentation)(w, r)
}

func (h *FlowHandler) AssetDetails(w http.ResponseWriter, r *http.Request) {
	invoke(h.flows.ExtractAssetDetailsFromQRCode)(w, r)
}

func (h *FlowHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	invoke(h.flows.QRCode)(w, r)
}
