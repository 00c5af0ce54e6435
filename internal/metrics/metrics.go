package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrJamesThe3rd/tenderbook/internal/ledger"
)

// Metrics owns a private registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	gatewayOps      *prometheus.CounterVec
	gatewayDuration *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "requests_total",
				Help: "How many HTTP requests processed, partitioned by status code, method and route.",
			},
			[]string{"code", "method", "url"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "request_duration_seconds",
				Help: "The HTTP request latencies in seconds.",
			},
			[]string{"code", "method", "url"},
		),
		gatewayOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_gateway_operations_total",
				Help: "Document loads and saves, partitioned by operation and outcome.",
			},
			[]string{"op", "outcome"},
		),
		gatewayDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "ledger_gateway_duration_seconds",
				Help: "Latency of document loads and saves in seconds.",
			},
			[]string{"op"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestCount,
		m.requestDuration,
		m.gatewayOps,
		m.gatewayDuration,
	)

	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latencies. Routes are labelled by
// their chi pattern to keep cardinality low.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		code := strconv.Itoa(status)
		m.requestDuration.WithLabelValues(code, r.Method, route).Observe(time.Since(start).Seconds())
		m.requestCount.WithLabelValues(code, r.Method, route).Inc()
	})
}

// InstrumentGateway wraps gw so every load and save is counted and timed.
func (m *Metrics) InstrumentGateway(gw ledger.Gateway) ledger.Gateway {
	return &instrumentedGateway{next: gw, m: m}
}

type instrumentedGateway struct {
	next ledger.Gateway
	m    *Metrics
}

func (g *instrumentedGateway) Load(ctx context.Context) (ledger.Document, error) {
	start := time.Now()
	doc, err := g.next.Load(ctx)
	g.m.observe("load", start, err)

	return doc, err
}

func (g *instrumentedGateway) Save(ctx context.Context, doc ledger.Document) error {
	start := time.Now()
	err := g.next.Save(ctx, doc)
	g.m.observe("save", start, err)

	return err
}

func (m *Metrics) observe(op string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}

	m.gatewayDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	m.gatewayOps.WithLabelValues(op, outcome).Inc()
}
