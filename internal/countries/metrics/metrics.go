package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the countries module.
type Metrics struct {
	// Upstream call latency by operation (list, detail, neighbours)
	UpstreamLatency *prometheus.HistogramVec

	// Upstream failures by operation and error category
	UpstreamErrors *prometheus.CounterVec

	// Circuit breaker transitions (opened, closed)
	BreakerTransitions *prometheus.CounterVec

	// Payload cache lookups by result (hit, miss)
	CacheLookups *prometheus.CounterVec

	// Records skipped during ingestion by failing field
	IngestWarnings *prometheus.CounterVec

	ActiveSessions prometheus.Gauge

	// Store recomputations by stage (sort, filter)
	Recomputations *prometheus.CounterVec

	PageResets prometheus.Counter
}

// New registers the module metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the module metrics with reg. Tests pass a fresh
// prometheus.NewRegistry() to avoid duplicate registration.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		UpstreamLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "worldranks_upstream_duration_seconds",
			Help:    "Duration of country API calls by operation",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),

		UpstreamErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worldranks_upstream_errors_total",
			Help: "Total country API failures by operation and category",
		}, []string{"operation", "category"}),

		BreakerTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worldranks_upstream_breaker_transitions_total",
			Help: "Circuit breaker state transitions for the country API",
		}, []string{"transition"}),

		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worldranks_payload_cache_lookups_total",
			Help: "Payload cache lookups by result",
		}, []string{"result"}),

		IngestWarnings: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worldranks_ingest_skipped_records_total",
			Help: "Country records skipped during ingestion by failing field",
		}, []string{"field"}),

		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Name: "worldranks_browse_sessions_active",
			Help: "Number of live browse sessions",
		}),

		Recomputations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worldranks_store_recomputations_total",
			Help: "Derived-state recomputations by stage",
		}, []string{"stage"}),

		PageResets: f.NewCounter(prometheus.CounterOpts{
			Name: "worldranks_store_page_resets_total",
			Help: "Times the current page was reset to the first page",
		}),
	}
}

// ObserveUpstreamLatency records the duration of one upstream call.
func (m *Metrics) ObserveUpstreamLatency(operation string, d time.Duration) {
	if m != nil {
		m.UpstreamLatency.WithLabelValues(operation).Observe(d.Seconds())
	}
}

func (m *Metrics) IncrementUpstreamError(operation, category string) {
	if m != nil {
		m.UpstreamErrors.WithLabelValues(operation, category).Inc()
	}
}

func (m *Metrics) IncrementBreakerTransition(transition string) {
	if m != nil {
		m.BreakerTransitions.WithLabelValues(transition).Inc()
	}
}

// IncrementCacheHit and IncrementCacheMiss count payload cache lookups.
func (m *Metrics) IncrementCacheHit() {
	if m != nil {
		m.CacheLookups.WithLabelValues("hit").Inc()
	}
}

func (m *Metrics) IncrementCacheMiss() {
	if m != nil {
		m.CacheLookups.WithLabelValues("miss").Inc()
	}
}

func (m *Metrics) IncrementIngestWarning(field string) {
	if m != nil {
		m.IngestWarnings.WithLabelValues(field).Inc()
	}
}

func (m *Metrics) SetActiveSessions(n int) {
	if m != nil {
		m.ActiveSessions.Set(float64(n))
	}
}

// AddRecomputations adds store recompute deltas for one mutation.
func (m *Metrics) AddRecomputations(sorts, filters, resets int) {
	if m == nil {
		return
	}
	if sorts > 0 {
		m.Recomputations.WithLabelValues("sort").Add(float64(sorts))
	}
	if filters > 0 {
		m.Recomputations.WithLabelValues("filter").Add(float64(filters))
	}
	if resets > 0 {
		m.PageResets.Add(float64(resets))
	}
}
