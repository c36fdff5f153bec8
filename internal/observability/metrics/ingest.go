// Package metrics provides data ingest metrics for observability
package metrics

import "github.com/prometheus/client_golang/prometheus"

// IngestMetrics contains Prometheus metrics for the CSV load pipeline
type IngestMetrics struct {
	registry *prometheus.Registry

	rowsTotal       *prometheus.CounterVec
	loadDurationSec prometheus.Histogram

	collectors []prometheus.Collector
}

// NewIngestMetrics creates and registers new ingest metrics
func NewIngestMetrics(registry *prometheus.Registry) (*IngestMetrics, error) {
	m := &IngestMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *IngestMetrics) initMetrics() {
	m.rowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ingest_rows_total",
			Help: "CSV rows processed by outcome",
		},
		[]string{"outcome"}, // loaded, bad_date, old_year, no_coord
	)

	m.loadDurationSec = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ingest_load_duration_seconds",
			Help:    "Time taken to load and clean the fire dataset",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	m.collectors = []prometheus.Collector{
		m.rowsTotal,
		m.loadDurationSec,
	}
}

// Describe implements the prometheus.Collector interface
func (m *IngestMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range m.collectors {
		c.Describe(ch)
	}
}

// Collect implements the prometheus.Collector interface
func (m *IngestMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, c := range m.collectors {
		c.Collect(ch)
	}
}

// RecordRows adds to the per-outcome row counter
func (m *IngestMetrics) RecordRows(outcome string, count int) {
	if count > 0 {
		m.rowsTotal.WithLabelValues(outcome).Add(float64(count))
	}
}

// RecordLoadDuration records one dataset load
func (m *IngestMetrics) RecordLoadDuration(seconds float64) {
	m.loadDurationSec.Observe(seconds)
}
