// Package handlers holds the JSON HTTP handlers of the API and the explorer page.
package handlers

import (
	"context"
	"net/http"

	"github.com/diewo77/gmao/internal/httpx"
)

// resource adapts a service's CRUD methods to handlers.
type resource[T, I, P any] struct {
	list   func(ctx context.Context) ([]T, error)
	get    func(ctx context.Context, id string) (*T, error)
	add    func(ctx context.Context, in I) (*T, error)
	modify func(ctx context.Context, id string, p P) (*T, error)
	remove func(ctx context.Context, id string) (*T, error)
}

func (h resource[T, I, P]) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.list(r.Context())
	respond(w, http.StatusOK, items, err)
}

func (h resource[T, I, P]) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.get(r.Context(), r.PathValue("id"))
	respond(w, http.StatusOK, item, err)
}

func (h resource[T, I, P]) Create(w http.ResponseWriter, r *http.Request) {
	var in I
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.WriteError(w, err)
		return
	}
	item, err := h.add(r.Context(), in)
	respond(w, http.StatusCreated, item, err)
}

func (h resource[T, I, P]) Update(w http.ResponseWriter, r *http.Request) {
	var p P
	if err := httpx.DecodeJSON(r, &p); err != nil {
		httpx.WriteError(w, err)
		return
	}
	item, err := h.modify(r.Context(), r.PathValue("id"), p)
	respond(w, http.StatusOK, item, err)
}

// Delete answers with the removed row.
func (h resource[T, I, P]) Delete(w http.ResponseWriter, r *http.Request) {
	item, err := h.remove(r.Context(), r.PathValue("id"))
	respond(w, http.StatusOK, item, err)
}

// scoped lists the children of the parent named by the {id} path value.
func scoped[T any](fetch func(ctx context.Context, parentID string) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := fetch(r.Context(), r.PathValue("id"))
		respond(w, http.StatusOK, items, err)
	}
}

func respond(w http.ResponseWriter, status int, payload any, err error) {
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.JSON(w, status, payload)
}
