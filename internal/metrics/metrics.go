package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for towerlog
type MetricsRegistry struct {
	// HTTP metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Upstream provider metrics
	ProviderRequestsTotal prometheus.CounterVec

	// Ingestion metrics
	RecordsUpsertedTotal prometheus.CounterVec
	IngestRunDuration    prometheus.HistogramVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "towerlog_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "towerlog_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "towerlog_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		ProviderRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "towerlog_provider_requests_total",
				Help: "Total upstream provider requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),

		RecordsUpsertedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "towerlog_records_upserted_total",
				Help: "Total entity records written by kind and operation",
			},
			[]string{"kind", "op"},
		),
		IngestRunDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "towerlog_ingest_run_duration_seconds",
				Help:    "Ingestion run execution time in seconds",
				Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600, 1800},
			},
			[]string{"job_name"},
		),
	}
}

// ObserveStats folds a run's per-kind tallies into the upsert counters.
func (m *MetricsRegistry) ObserveStats(created, updated map[string]int) {
	for kind, n := range created {
		m.RecordsUpsertedTotal.WithLabelValues(kind, "created").Add(float64(n))
	}
	for kind, n := range updated {
		m.RecordsUpsertedTotal.WithLabelValues(kind, "updated").Add(float64(n))
	}
}
