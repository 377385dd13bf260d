// Package metrics provides Prometheus metrics for highscores summaries.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultNamespace = "highscores"
	defaultSubsystem = "summary"

	reportSizeBucketStart  = 1
	reportSizeBucketFactor = 2
	reportSizeBucketCount  = 12
)

// Manager owns the Prometheus collectors for summaries.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Report Metrics
	reports      prometheus.Counter
	emptyReports prometheus.Counter
	reportSize   prometheus.Histogram

	// Query Metrics
	queries       *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        defaultNamespace,
		subsystem:        defaultSubsystem,
		histogramBuckets: prometheus.DefBuckets,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates and registers every collector.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.reports = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "reports_total",
		Help:        "Total number of summary reports built",
		ConstLabels: labels,
	})

	m.emptyReports = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "empty_reports_total",
		Help:        "Total number of summary reports built over no scores",
		ConstLabels: labels,
	})

	m.reportSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "report_size",
		Help:        "Number of scores per summary report",
		Buckets:     prometheus.ExponentialBuckets(reportSizeBucketStart, reportSizeBucketFactor, reportSizeBucketCount),
		ConstLabels: labels,
	})

	m.queries = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "queries_total",
			Help:        "Total number of summary queries by operation",
			ConstLabels: labels,
		},
		[]string{"operation"},
	)

	m.queryDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "query_duration_milliseconds",
			Help:        "Summary query duration in milliseconds by operation",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"operation"},
	)
}

// RecordReport counts one report over size scores.
func (m *Manager) RecordReport(size int) {
	m.reports.Inc()
	m.reportSize.Observe(float64(size))
	if size == 0 {
		m.emptyReports.Inc()
	}
}

// RecordQuery counts one query and its duration in milliseconds.
func (m *Manager) RecordQuery(operation string, durationMs float64) {
	m.queries.WithLabelValues(operation).Inc()
	m.queryDuration.WithLabelValues(operation).Observe(durationMs)
}

// Global returns the process-wide manager bound to the custom registry.
func Global() *Manager {
	return globalManager
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes the metrics gathered by g to path in the text
// exposition format, replacing the file atomically.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteTextfile, path, err)
	}
	return nil
}
