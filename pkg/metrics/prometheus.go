package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Error kinds recorded by RecordAnalysisError.
const (
	ErrorKindDegenerateInput  = "degenerate_input"
	ErrorKindOutOfRangeScore  = "out_of_range_score"
	ErrorKindInternal         = "internal"
	ErrorKindUnreadableSource = "unreadable_source"
)

var errorKinds = []string{
	ErrorKindDegenerateInput,
	ErrorKindOutOfRangeScore,
	ErrorKindInternal,
	ErrorKindUnreadableSource,
}

// Manager owns every Prometheus collector of the analyzer.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         *prometheus.Registry

	// Analysis
	documentsAnalyzed prometheus.Counter
	analysisErrors    *prometheus.CounterVec
	analysisDuration  prometheus.Histogram
	analysesInFlight  prometheus.Gauge
	documentWords     prometheus.Histogram
	averageAge        prometheus.Histogram
	scoreValue        *prometheus.HistogramVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to keep the exposition limited to our own collectors plus
// the standard process/runtime ones.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	customRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager. Without WithPrometheusRegistry it
// registers on a fresh private registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "readability",
		subsystem:        "analyzer",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		constLabels:      map[string]string{},
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.documentsAnalyzed = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "documents_analyzed_total",
		Help:        "Total number of documents scored successfully",
		ConstLabels: labels,
	})

	m.analysisErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "analysis_errors_total",
		Help:        "Total number of failed analyses by error kind",
		ConstLabels: labels,
	}, []string{"kind"})

	m.analysisDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "analysis_duration_milliseconds",
		Help:        "Time spent computing metrics and scores for one document",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.analysesInFlight = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "analyses_in_flight",
		Help:        "Number of documents currently being analyzed",
		ConstLabels: labels,
	})

	m.documentWords = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "document_words",
		Help:        "Word count of analyzed documents",
		Buckets:     prometheus.ExponentialBuckets(10, 4, 8),
		ConstLabels: labels,
	})

	m.averageAge = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "average_age_years",
		Help:        "Averaged reader age estimate of analyzed documents",
		Buckets:     []float64{6, 8, 10, 12, 14, 16, 18, 20, 24},
		ConstLabels: labels,
	})

	m.scoreValue = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "score_value",
		Help:        "Rounded readability score by formula",
		Buckets:     prometheus.LinearBuckets(1, 1, 14),
		ConstLabels: labels,
	}, []string{"kind"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	for _, k := range errorKinds {
		m.analysisErrors.WithLabelValues(k)
	}
}

// Registry returns the registry the manager's collectors live on.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// Enabled reports whether Record calls are collected.
func (m *Manager) Enabled() bool { return m.enabled }

// RecordDocumentAnalyzed records one successful analysis.
func (m *Manager) RecordDocumentAnalyzed(words int, averageAge, durationMs float64) {
	if !m.enabled {
		return
	}
	m.documentsAnalyzed.Inc()
	m.documentWords.Observe(float64(words))
	m.averageAge.Observe(averageAge)
	m.analysisDuration.Observe(durationMs)
}

// RecordScore records a rounded score for a formula such as "ARI".
func (m *Manager) RecordScore(kind string, score float64) {
	if !m.enabled {
		return
	}
	m.scoreValue.WithLabelValues(kind).Observe(score)
}

// RecordAnalysisError counts a failed analysis. kind must be one of the
// ErrorKind constants.
func (m *Manager) RecordAnalysisError(kind string) error {
	if !knownErrorKind(kind) {
		return fmt.Errorf("%w: %s", ErrUnknownErrorKind, kind)
	}
	if m.enabled {
		m.analysisErrors.WithLabelValues(kind).Inc()
	}
	return nil
}

// AnalysisStarted bumps the in-flight gauge and returns the matching decrement.
func (m *Manager) AnalysisStarted() func() {
	if !m.enabled {
		return func() {}
	}
	m.analysesInFlight.Inc()
	return m.analysesInFlight.Dec
}

// RecordHTTPRequest records one served request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

func knownErrorKind(kind string) bool {
	for _, k := range errorKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Default returns the process-wide manager.
func Default() *Manager { return globalManager }

// GetRegistry returns the process-wide registry.
func GetRegistry() *prometheus.Registry { return customRegistry }
