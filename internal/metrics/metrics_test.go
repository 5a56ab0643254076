package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFlow(t *testing.T) {
	r := New()
	r.ObserveFlow("generateAuditReport", nil)
	r.ObserveFlow("generateAuditReport", errors.New("boom"))
	r.ObserveFlow("generateAuditReport", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.flows.WithLabelValues("generateAuditReport", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.flows.WithLabelValues("generateAuditReport", "error")))
}

func TestObserveBulk(t *testing.T) {
	r := New()
	r.ObserveBulk("delete", 3, 1)
	assert.Equal(t, 3.0, testutil.ToFloat64(r.bulk.WithLabelValues("delete", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.bulk.WithLabelValues("delete", "error")))
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	r := New()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/clients/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := r.Middleware(mux)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/clients/abc", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(r.requests.WithLabelValues("GET", "GET /api/clients/{id}", "404")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	r := New()
	r.ObserveFlow("generateQrCode", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gmao_ai_flow_runs_total")
}

func TestNilRegistryIsNoop(t *testing.T) {
	var r *Registry
	r.ObserveFlow("x", nil)
	r.ObserveBulk("delete", 1, 0)
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	assert.NotNil(t, r.Middleware(next))
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
