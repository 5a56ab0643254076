package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/gmao/internal/apperr"
	"github.com/diewo77/gmao/internal/httpx"
	"github.com/diewo77/gmao/internal/middleware"
	"github.com/diewo77/gmao/internal/services"
)

// SessionHandler reads and changes the client selected for the browser session.
type SessionHandler struct {
	clients *services.ClientService
}

func NewSessionHandler(clients *services.ClientService) *SessionHandler {
	return &SessionHandler{clients: clients}
}

type activeClient struct {
	ClientID string `json:"clientId"`
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.ActiveClientID(r.Context())
	if !ok {
		httpx.JSON(w, http.StatusOK, activeClient{})
		return
	}
	c, err := h.clients.FetchByID(r.Context(), id)
	if errors.Is(err, apperr.ErrNotFound) {
		// stale cookie, the client is gone
		middleware.SetActiveClient(w, "")
		httpx.JSON(w, http.StatusOK, activeClient{})
		return
	}
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"clientId": c.ID, "client": c})
}

// Put selects a client; an empty clientId clears the selection.
func (h *SessionHandler) Put(w http.ResponseWriter, r *http.Request) {
	var body activeClient
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.WriteError(w, err)
		return
	}
	if body.ClientID == "" {
		middleware.SetActiveClient(w, "")
		httpx.JSON(w, http.StatusOK, activeClient{})
		return
	}
	c, err := h.clients.FetchByID(r.Context(), body.ClientID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	middleware.SetActiveClient(w, c.ID)
	httpx.JSON(w, http.StatusOK, map[string]any{"clientId": c.ID, "client": c})
}
