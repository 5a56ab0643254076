package handlers

import (
	"net/http"

	"github.com/diewo77/gmao/internal/services"
)

type ReferenceHandler struct {
	svc *services.ReferenceService
}

func NewReferenceHandler(svc *services.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{svc: svc}
}

func (h *ReferenceHandler) TechnicalDomains(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.TechnicalDomains(r.Context())
	respond(w, http.StatusOK, items, err)
}

func (h *ReferenceHandler) Settings(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Settings(r.Context())
	respond(w, http.StatusOK, s, err)
}
