package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/diewo77/gmao/internal/i18n"
	"github.com/diewo77/gmao/internal/models"
	"github.com/diewo77/gmao/internal/navigator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(lang string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/explorer", nil)
	return r.WithContext(i18n.WithLang(r.Context(), lang))
}

func TestRenderClientsTranslates(t *testing.T) {
	data := map[string]any{
		"Clients":        []models.Client{{Base: models.Base{ID: "c1"}, Name: "Acme"}},
		"ActiveClientID": "c1",
	}
	rec := httptest.NewRecorder()
	require.NoError(t, Render(rec, request("en"), "clients.html", data))
	body := rec.Body.String()
	assert.Contains(t, body, `<html lang="en">`)
	assert.Contains(t, body, `class="active"`)
	assert.Contains(t, body, "Acme")
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	require.NoError(t, Render(rec, request("fr"), "clients.html", map[string]any{"ActiveClientID": ""}))
	assert.Contains(t, rec.Body.String(), "Aucun élément")
}

func TestRenderExplorer(t *testing.T) {
	root := navigator.Build(&models.Client{
		Base:  models.Base{ID: "c1"},
		Name:  "Acme",
		Sites: []models.Site{{Base: models.Base{ID: "s1"}, Name: "Lyon Part-Dieu"}},
	})
	data := map[string]any{
		"ClientID":   "c1",
		"Node":       navigator.ToView(root, 1),
		"Crumbs":     navigator.Breadcrumbs([]navigator.Node{root}),
		"Path":       []string{},
		"Filter":     navigator.Filter{Text: "pompe"},
		"Equipments": []models.Equipment{{Code: "P-1", Libelle: "Pompe"}},
	}
	rec := httptest.NewRecorder()
	require.NoError(t, Render(rec, request("fr"), "explorer.html", data))
	body := rec.Body.String()
	assert.Contains(t, body, `/explorer/c1/lyon-part-dieu`)
	assert.Contains(t, body, "Équipements (1)")
	assert.Contains(t, body, `value="pompe"`)
}

func TestRenderUnknownPage(t *testing.T) {
	err := Render(httptest.NewRecorder(), request("fr"), "missing.html", nil)
	assert.Error(t, err)
}
