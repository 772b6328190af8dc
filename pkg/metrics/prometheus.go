// Package metrics provides Prometheus metrics for the setterboard service.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the setterboard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Pipeline Metrics - one recomputation per report
	pipelineRuns     *prometheus.CounterVec
	pipelineDuration prometheus.Histogram
	rowsNormalized   prometheus.Counter
	undatedRows      prometheus.Counter
	clusters         prometheus.Gauge
	merges           *prometheus.CounterVec

	// Source Metrics - remote record fetching
	sourcePages   prometheus.Counter
	sourceErrors  *prometheus.CounterVec
	sourceLatency prometheus.Histogram

	// Store Metrics
	offerCount prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "setterboard",
		subsystem:        "report",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.pipelineRuns = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("pipeline_runs_total"),
		Help:        "Total number of report recomputations by date range",
		ConstLabels: labels,
	}, []string{"range"})

	m.pipelineDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("pipeline_duration_milliseconds"),
		Help:        "Histogram of report recomputation time in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.rowsNormalized = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("rows_normalized_total"),
		Help:        "Total number of raw rows normalized",
		ConstLabels: labels,
	})

	m.undatedRows = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("undated_rows_total"),
		Help:        "Total number of rows without a parseable date (indicates data quality)",
		ConstLabels: labels,
	})

	m.clusters = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("clusters"),
		Help:        "Number of identity clusters in the last report",
		ConstLabels: labels,
	})

	m.merges = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("merges_total"),
		Help:        "Total number of records merged into an existing cluster by match kind",
		ConstLabels: labels,
	}, []string{"kind"})

	m.sourcePages = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("source_pages_total"),
		Help:        "Total number of pages fetched from the record source",
		ConstLabels: labels,
	})

	m.sourceErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("source_errors_total"),
		Help:        "Total number of failed record source fetches by reason",
		ConstLabels: labels,
	}, []string{"reason"})

	m.sourceLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("source_fetch_duration_milliseconds"),
		Help:        "Histogram of full record source fetch time in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.offerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("offers"),
		Help:        "Number of configured offers",
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_requests_total"),
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("http_request_duration_milliseconds"),
		Help:        "HTTP request duration in milliseconds (user experience)",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_component_total"),
		Help:        "Total number of errors by component and error type",
		ConstLabels: labels,
	}, []string{"component", "error_type"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name("errors_by_endpoint_total"),
		Help:        "Total number of errors by endpoint, method and error type",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "error_type"})
}

// RecordPipelineRun counts one recomputation and its duration.
func (m *Manager) RecordPipelineRun(rangeName string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.pipelineRuns.WithLabelValues(rangeName).Inc()
	m.pipelineDuration.Observe(durationMs)
}

// RecordRows adds normalized and undated row counts.
func (m *Manager) RecordRows(normalized, undated int) {
	if !m.enabled {
		return
	}
	m.rowsNormalized.Add(float64(normalized))
	m.undatedRows.Add(float64(undated))
}

// RecordClusters sets the cluster gauge and adds merge counts.
func (m *Manager) RecordClusters(clusters, exact, fuzzy int) {
	if !m.enabled {
		return
	}
	m.clusters.Set(float64(clusters))
	m.merges.WithLabelValues("exact").Add(float64(exact))
	m.merges.WithLabelValues("fuzzy").Add(float64(fuzzy))
}

// RecordSourcePage increments the fetched page counter.
func (m *Manager) RecordSourcePage() {
	if !m.enabled {
		return
	}
	m.sourcePages.Inc()
}

// RecordSourceError increments the source error counter.
func (m *Manager) RecordSourceError(reason string) {
	if !m.enabled {
		return
	}
	m.sourceErrors.WithLabelValues(reason).Inc()
}

// RecordSourceLatency records a full fetch duration.
func (m *Manager) RecordSourceLatency(latencyMs float64) {
	if !m.enabled {
		return
	}
	m.sourceLatency.Observe(latencyMs)
}

// UpdateOfferCount sets the offer gauge.
func (m *Manager) UpdateOfferCount(count int) {
	if !m.enabled {
		return
	}
	m.offerCount.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByComponent records an error with component and type labels.
func (m *Manager) RecordErrorByComponent(component, errorType string) {
	if !m.enabled {
		return
	}
	m.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !m.enabled {
		return
	}
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// Package-level helpers write to the global manager.

// RecordPipelineRun counts one recomputation and its duration.
func RecordPipelineRun(rangeName string, durationMs float64) {
	globalManager.RecordPipelineRun(rangeName, durationMs)
}

// RecordRows adds normalized and undated row counts.
func RecordRows(normalized, undated int) {
	globalManager.RecordRows(normalized, undated)
}

// RecordClusters sets the cluster gauge and adds merge counts.
func RecordClusters(clusters, exact, fuzzy int) {
	globalManager.RecordClusters(clusters, exact, fuzzy)
}

// RecordSourcePage increments the fetched page counter.
func RecordSourcePage() {
	globalManager.RecordSourcePage()
}

// RecordSourceError increments the source error counter.
func RecordSourceError(reason string) {
	globalManager.RecordSourceError(reason)
}

// RecordSourceLatency records a full fetch duration.
func RecordSourceLatency(latencyMs float64) {
	globalManager.RecordSourceLatency(latencyMs)
}

// UpdateOfferCount sets the offer gauge.
func UpdateOfferCount(count int) {
	globalManager.UpdateOfferCount(count)
}

// RecordHTTPRequest records an HTTP request and its duration.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.RecordErrorByComponent(component, errorType)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// RegisterRuntimeCollectors adds Go runtime and process metrics to reg.
// Collectors that are already registered are left alone.
func RegisterRuntimeCollectors(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return fmt.Errorf("%w: %w", ErrRegisterFailed, err)
		}
	}
	return nil
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
