// Package metrics provides Prometheus metrics for the pinpoint game server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Check result labels.
const (
	CheckHit     = "hit"
	CheckMiss    = "miss"
	CheckUnknown = "unknown_character"
	CheckInvalid = "invalid"
)

// Manager manages all Prometheus metrics for the game server.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Gameplay
	checks          *prometheus.CounterVec
	resets          prometheus.Counter
	scoresSubmitted prometheus.Counter
	charactersFound prometheus.Gauge
	charactersTotal prometheus.Gauge
	scoresTotal     prometheus.Gauge
	winningTime     prometheus.Histogram

	// Store
	storeDuration *prometheus.HistogramVec
	storeErrors   *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry; only collectors registered by this process are exposed.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pinpoint",
		subsystem:        "game",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets, ConstLabels: m.constLabels}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.checks = auto.NewCounterVec(m.counterOpts("checks_total", "Hit-test requests by result"), []string{"result"})
	m.resets = auto.NewCounter(m.counterOpts("resets_total", "Number of game resets"))
	m.scoresSubmitted = auto.NewCounter(m.counterOpts("scores_submitted_total", "Number of scores accepted"))
	m.charactersFound = auto.NewGauge(m.gaugeOpts("characters_found", "Characters currently marked found"))
	m.charactersTotal = auto.NewGauge(m.gaugeOpts("characters", "Characters defined in the store"))
	m.scoresTotal = auto.NewGauge(m.gaugeOpts("scores", "Scores held in the store"))
	m.winningTime = auto.NewHistogram(m.histogramOpts("winning_time_seconds", "Submitted completion times",
		[]float64{5, 10, 20, 30, 60, 120, 300, 600}))

	m.storeDuration = auto.NewHistogramVec(m.histogramOpts("store_operation_duration_milliseconds",
		"Latency of full-document store operations", m.histogramBuckets), []string{"op", "backend"})
	m.storeErrors = auto.NewCounterVec(m.counterOpts("store_errors_total", "Failed store operations"), []string{"op", "backend"})

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total",
		"Total number of HTTP requests by endpoint and method"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", m.histogramBuckets), []string{"endpoint", "method", "status_code"})
	m.errorsByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total",
		"HTTP errors by endpoint, method and error type"), []string{"endpoint", "method", "error_type"})
}

// RecordCheck counts a hit-test by result label.
func (m *Manager) RecordCheck(result string) error {
	switch result {
	case CheckHit, CheckMiss, CheckUnknown, CheckInvalid:
		m.checks.WithLabelValues(result).Inc()
		return nil
	}
	return ErrUnknownCheckResult
}

// RecordCheck counts a hit-test on the global manager.
func RecordCheck(result string) error { return globalManager.RecordCheck(result) }

// RecordReset increments the reset counter.
func RecordReset() { globalManager.resets.Inc() }

// RecordScoreSubmitted counts an accepted score and observes its time.
func RecordScoreSubmitted(timeMs int64) {
	globalManager.scoresSubmitted.Inc()
	globalManager.winningTime.Observe(float64(timeMs) / 1000)
}

// UpdateGameState sets the store-derived gauges.
func UpdateGameState(characters, found, scores int) {
	globalManager.charactersTotal.Set(float64(characters))
	globalManager.charactersFound.Set(float64(found))
	globalManager.scoresTotal.Set(float64(scores))
}

// RecordStoreOperation observes a store call; failed calls are also counted.
func RecordStoreOperation(op, backend string, latencyMs float64, err error) {
	globalManager.storeDuration.WithLabelValues(op, backend).Observe(latencyMs)
	if err != nil {
		globalManager.storeErrors.WithLabelValues(op, backend).Inc()
	}
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
