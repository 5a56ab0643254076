// Package metrics exposes Prometheus collectors for HTTP traffic, AI flows and bulk operations.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/diewo77/gmao/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns the application collectors. A nil *Registry is a no-op.
type Registry struct {
	reg      *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	flows    *prometheus.CounterVec
	bulk     *prometheus.CounterVec
}

func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gmao",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gmao",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		flows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gmao",
			Name:      "ai_flow_runs_total",
			Help:      "AI flow invocations by flow and outcome.",
		}, []string{"flow", "outcome"}),
		bulk: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gmao",
			Name:      "equipment_bulk_items_total",
			Help:      "Equipment bulk operation items by operation and outcome.",
		}, []string{"operation", "outcome"}),
	}
	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.requests, r.latency, r.flows, r.bulk,
	)
	return r
}

func outcome(failed bool) string {
	if failed {
		return "error"
	}
	return "success"
}

// ObserveFlow records one flow run.
func (r *Registry) ObserveFlow(name string, err error) {
	if r == nil {
		return
	}
	r.flows.WithLabelValues(name, outcome(err != nil)).Inc()
}

// ObserveBulk records the per-item results of a bulk request.
func (r *Registry) ObserveBulk(operation string, succeeded, failed int) {
	if r == nil {
		return
	}
	r.bulk.WithLabelValues(operation, "success").Add(float64(succeeded))
	r.bulk.WithLabelValues(operation, "error").Add(float64(failed))
}

// Middleware counts requests by matched route pattern.
func (r *Registry) Middleware(next http.Handler) http.Handler {
	if r == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &logging.StatusRecorder{ResponseWriter: w, Status: http.StatusOK}
		next.ServeHTTP(rec, req)
		route := req.Pattern
		if route == "" {
			route = "unmatched"
		}
		r.requests.WithLabelValues(req.Method, route, strconv.Itoa(rec.Status)).Inc()
		r.latency.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the exposition format.
func (r *Registry) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}
