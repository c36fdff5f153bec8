// Package metrics provides datastore metrics for observability
package metrics

import "github.com/prometheus/client_golang/prometheus"

// DatastoreMetrics contains Prometheus metrics for datastore operations
type DatastoreMetrics struct {
	registry *prometheus.Registry

	analyticsOperationsTotal   *prometheus.CounterVec
	analyticsOperationDuration *prometheus.HistogramVec
	analyticsOperationErrors   *prometheus.CounterVec

	fireRecordsGauge prometheus.Gauge

	collectors []prometheus.Collector
}

// NewDatastoreMetrics creates and registers new datastore metrics
func NewDatastoreMetrics(registry *prometheus.Registry) (*DatastoreMetrics, error) {
	m := &DatastoreMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *DatastoreMetrics) initMetrics() {
	m.analyticsOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datastore_analytics_operations_total",
			Help: "Total number of analytics queries",
		},
		[]string{"operation", "status"},
	)

	m.analyticsOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "datastore_analytics_operation_duration_seconds",
			Help:    "Time taken for analytics queries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	m.analyticsOperationErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "datastore_analytics_operation_errors_total",
			Help: "Total number of analytics query errors",
		},
		[]string{"operation"},
	)

	m.fireRecordsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "datastore_fire_records",
			Help: "Number of fire records loaded into the database",
		},
	)

	m.collectors = []prometheus.Collector{
		m.analyticsOperationsTotal,
		m.analyticsOperationDuration,
		m.analyticsOperationErrors,
		m.fireRecordsGauge,
	}
}

// Describe implements the prometheus.Collector interface
func (m *DatastoreMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range m.collectors {
		c.Describe(ch)
	}
}

// Collect implements the prometheus.Collector interface
func (m *DatastoreMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, c := range m.collectors {
		c.Collect(ch)
	}
}

// RecordAnalyticsOperation records the outcome of one analytics query
func (m *DatastoreMetrics) RecordAnalyticsOperation(operation, status string, duration float64) {
	m.analyticsOperationsTotal.WithLabelValues(operation, status).Inc()
	m.analyticsOperationDuration.WithLabelValues(operation).Observe(duration)
	if status == "error" {
		m.analyticsOperationErrors.WithLabelValues(operation).Inc()
	}
}

// SetFireRecords sets the loaded record count gauge
func (m *DatastoreMetrics) SetFireRecords(count int) {
	m.fireRecordsGauge.Set(float64(count))
}
