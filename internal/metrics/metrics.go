// Package metrics exposes prometheus instrumentation for the HTTP surface and
// the pricing/allocation calculators.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AngelCh415/atelier/internal/utils"
)

type Recorder struct {
	reg *prometheus.Registry

	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	allocations prometheus.Counter
	allocated   prometheus.Histogram
	quotes      *prometheus.CounterVec
	auditSize   prometheus.Gauge
}

// New usa un registry propio para que los tests no choquen con el global.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		reg: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "atelier_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "atelier_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
		allocations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "atelier_spend_allocations_total",
			Help: "Spend allocations computed.",
		}),
		allocated: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "atelier_spend_allocated_budget",
			Help:    "Total budget recommended per allocation.",
			Buckets: prometheus.ExponentialBuckets(1000, 4, 8),
		}),
		quotes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "atelier_cpq_quotes_total",
			Help: "Quotes computed by tier (unknown for unrecognized tiers).",
		}, []string{"tier"}),
		auditSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "atelier_audit_log_entries",
			Help: "Entries currently held in the audit log.",
		}),
	}
	reg.MustRegister(
		r.requests, r.latency, r.allocations, r.allocated, r.quotes, r.auditSize,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// Middleware etiqueta por patrón de ruta chi para no explotar cardinalidad.
func (r *Recorder) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		sr := utils.NewStatusRecorder(w)
		next.ServeHTTP(sr, req)

		route := "unmatched"
		if rc := chi.RouteContext(req.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		r.requests.WithLabelValues(route, req.Method, strconv.Itoa(sr.Status)).Inc()
		r.latency.WithLabelValues(route, req.Method).Observe(time.Since(start).Seconds())
	})
}

func (r *Recorder) ObserveAllocation(total int64) {
	r.allocations.Inc()
	r.allocated.Observe(float64(total))
}

func (r *Recorder) ObserveQuote(tierID string) {
	if tierID == "" {
		tierID = "unknown"
	}
	r.quotes.WithLabelValues(tierID).Inc()
}

func (r *Recorder) SetAuditSize(n int) { r.auditSize.Set(float64(n)) }
