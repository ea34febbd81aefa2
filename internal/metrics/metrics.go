// Package metrics implements the observability hooks with Prometheus
// collectors.
//
// A [Metrics] value owns its own registry so tests and embedded servers never
// collide on the global default registry. Call [Metrics.Install] once at
// startup to route engine, cache and HTTP events into the collectors, and
// expose [Metrics.Handler] on /metrics.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/ontograph/pkg/observability"
)

const namespace = "ontograph"

// Metrics holds every collector registered by ontograph.
type Metrics struct {
	registry *prometheus.Registry

	// ClosuresTotal counts freshly computed closures.
	// Labels: direction (outgoing, incoming)
	ClosuresTotal *prometheus.CounterVec

	// ClosureEdges observes the edge count of computed closures.
	ClosureEdges *prometheus.HistogramVec

	// ClosureDuration observes closure computation time.
	ClosureDuration *prometheus.HistogramVec

	// MalformedAxiomsTotal counts skipped axiom shapes by axiom kind.
	MalformedAxiomsTotal *prometheus.CounterVec

	// CycleScansTotal counts cycle detector runs.
	CycleScansTotal prometheus.Counter

	// CyclesFound reports the component count of the last cycle scan.
	CyclesFound prometheus.Gauge

	// CycleScanDuration observes cycle detector runs.
	CycleScanDuration prometheus.Histogram

	// CacheOpsTotal counts cache operations.
	// Labels: cache (closure, primitive, ...), op (hit, miss, set, clear)
	CacheOpsTotal *prometheus.CounterVec

	// CacheEntries reports the entry count after the last write.
	CacheEntries *prometheus.GaugeVec

	// RequestsInFlight tracks requests being served.
	RequestsInFlight prometheus.Gauge

	// RequestsTotal counts served requests by method, route and status.
	RequestsTotal *prometheus.CounterVec

	// RequestDuration observes request latency by method and route.
	RequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ClosuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "graph",
				Name:      "closures_total",
				Help:      "Closures computed (cache misses) by direction",
			},
			[]string{"direction"},
		),
		ClosureEdges: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "graph",
				Name:      "closure_edges",
				Help:      "Number of edges in computed closures",
				Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
			},
			[]string{"direction"},
		),
		ClosureDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "graph",
				Name:      "closure_duration_seconds",
				Help:      "Time spent computing a closure",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
			[]string{"direction"},
		),
		MalformedAxiomsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "graph",
				Name:      "malformed_axioms_total",
				Help:      "Axiom shapes skipped during edge extraction",
			},
			[]string{"axiom"},
		),
		CycleScansTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "graph",
			Name:      "cycle_scans_total",
			Help:      "Cycle detector runs",
		}),
		CyclesFound: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "graph",
			Name:      "cycles_found",
			Help:      "Strongly connected components reported by the last cycle scan",
		}),
		CycleScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "graph",
			Name:      "cycle_scan_duration_seconds",
			Help:      "Time spent in the cycle detector",
			Buckets:   prometheus.DefBuckets,
		}),
		CacheOpsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "operations_total",
				Help:      "Cache operations by cache and operation",
			},
			[]string{"cache", "op"},
		),
		CacheEntries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "cache",
				Name:      "entries",
				Help:      "Entries held by each cache",
			},
			[]string{"cache"},
		),
		RequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Requests currently being served",
		}),
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Requests served by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Request latency by method and route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ClosuresTotal,
		m.ClosureEdges,
		m.ClosureDuration,
		m.MalformedAxiomsTotal,
		m.CycleScansTotal,
		m.CyclesFound,
		m.CycleScanDuration,
		m.CacheOpsTotal,
		m.CacheEntries,
		m.RequestsInFlight,
		m.RequestsTotal,
		m.RequestDuration,
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Install registers m as the process-wide graph, cache and HTTP hooks.
func (m *Metrics) Install() {
	observability.SetGraphHooks(graphHooks{m})
	observability.SetCacheHooks(cacheHooks{m})
	observability.SetHTTPHooks(httpHooks{m})
}

type graphHooks struct{ m *Metrics }

func (h graphHooks) OnClosureComplete(direction string, edges int, d time.Duration) {
	h.m.ClosuresTotal.WithLabelValues(direction).Inc()
	h.m.ClosureEdges.WithLabelValues(direction).Observe(float64(edges))
	h.m.ClosureDuration.WithLabelValues(direction).Observe(d.Seconds())
}

func (h graphHooks) OnMalformedAxiom(axiomKind string) {
	h.m.MalformedAxiomsTotal.WithLabelValues(axiomKind).Inc()
}

func (h graphHooks) OnCycleScan(_, cycles int, d time.Duration) {
	h.m.CycleScansTotal.Inc()
	h.m.CyclesFound.Set(float64(cycles))
	h.m.CycleScanDuration.Observe(d.Seconds())
}

type cacheHooks struct{ m *Metrics }

func (h cacheHooks) OnCacheHit(keyType string) {
	h.m.CacheOpsTotal.WithLabelValues(keyType, "hit").Inc()
}

func (h cacheHooks) OnCacheMiss(keyType string) {
	h.m.CacheOpsTotal.WithLabelValues(keyType, "miss").Inc()
}

func (h cacheHooks) OnCacheSet(keyType string, size int) {
	h.m.CacheOpsTotal.WithLabelValues(keyType, "set").Inc()
	h.m.CacheEntries.WithLabelValues(keyType).Set(float64(size))
}

func (h cacheHooks) OnCacheClear(keyType string) {
	h.m.CacheOpsTotal.WithLabelValues(keyType, "clear").Inc()
	h.m.CacheEntries.WithLabelValues(keyType).Set(0)
}

type httpHooks struct{ m *Metrics }

func (h httpHooks) OnRequest(_ context.Context, _, _ string) {
	h.m.RequestsInFlight.Inc()
}

func (h httpHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.m.RequestsInFlight.Dec()
	h.m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	h.m.RequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.GraphHooks = graphHooks{}
	_ observability.CacheHooks = cacheHooks{}
	_ observability.HTTPHooks  = httpHooks{}
)
