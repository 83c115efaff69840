// Package metrics provides Prometheus metrics for the matching engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector the engine records into.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	scoreBuckets     []float64
	registry         prometheus.Registerer

	// Core business metrics
	swipesAnalyzed     prometheus.Counter
	classifications    *prometheus.CounterVec
	compatibilityScore prometheus.Histogram
	pairsScored        prometheus.Counter
	selections         prometheus.Counter
	candidatesFiltered *prometheus.CounterVec
	candidatesSkipped  *prometheus.CounterVec
	matchesReturned    prometheus.Histogram

	// Latency
	selectionLatency prometheus.Histogram
	scoringLatency   prometheus.Histogram

	// Queue / worker
	queueSize         prometheus.Gauge
	queueCapacity     prometheus.Gauge
	queueEnqueued     prometheus.Counter
	queueDequeued     prometheus.Counter
	queueEnqueueError prometheus.Counter
	workerCount       prometheus.Gauge
	workerActive      prometheus.Gauge
	workerErrors      prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "nac",
		subsystem:        "matching",
		histogramBuckets: prometheus.DefBuckets,
		scoreBuckets:     prometheus.LinearBuckets(0, 10, 11),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	m.swipesAnalyzed = m.counter("swipes_analyzed_total", "Total number of swipe events aggregated into statistics")
	m.classifications = m.counterVec("classifications_total", "Archetype classifications by confidence level", "level")
	m.compatibilityScore = m.histogram("compatibility_score", "Distribution of overall pair compatibility scores", m.scoreBuckets)
	m.pairsScored = m.counter("pairs_scored_total", "Total number of user pairs scored")
	m.selections = m.counter("selections_total", "Total number of candidate selections served")
	m.candidatesFiltered = m.counterVec("candidates_filtered_total", "Candidates removed by a hard filter", "reason")
	m.candidatesSkipped = m.counterVec("candidates_skipped_total", "Candidates skipped because their record or scoring failed", "reason")
	m.matchesReturned = m.histogram("matches_returned", "Number of matches returned per selection",
		[]float64{0, 1, 3, 5, 10, 20, 50, 100})

	m.selectionLatency = m.histogram("selection_latency_milliseconds", "Candidate selection latency in milliseconds", m.histogramBuckets)
	m.scoringLatency = m.histogram("scoring_latency_milliseconds", "Per-candidate scoring latency in milliseconds", m.histogramBuckets)

	m.queueSize = m.gauge("queue_size", "Current number of scoring jobs waiting in the queue")
	m.queueCapacity = m.gauge("queue_capacity", "Capacity of the most recent scoring queue")
	m.queueEnqueued = m.counter("queue_enqueue_total", "Total number of scoring jobs enqueued")
	m.queueDequeued = m.counter("queue_dequeue_total", "Total number of scoring jobs dequeued")
	m.queueEnqueueError = m.counter("queue_enqueue_errors_total", "Total number of enqueue failures")
	m.workerCount = m.gauge("worker_count", "Configured number of scoring workers")
	m.workerActive = m.gauge("worker_active_count", "Number of workers currently scoring")
	m.workerErrors = m.counter("worker_errors_total", "Total number of failed scoring jobs")

	m.httpRequests = m.counterVec("http_requests_total", "Total number of HTTP requests by endpoint and method",
		"endpoint", "method", "status_code")
	m.httpRequestDuration = promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = m.counterVec("errors_by_component_total", "Total number of errors by component", "component", "error_type")
	m.errorsByEndpoint = m.counterVec("errors_by_endpoint_total", "Total number of errors by endpoint", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap memory in use in bytes")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
}

// RecordSwipesAnalyzed adds n analyzed swipe events.
func RecordSwipesAnalyzed(n int) {
	globalManager.swipesAnalyzed.Add(float64(n))
}

// RecordClassification counts one classification at the given confidence level.
func RecordClassification(level string) {
	globalManager.classifications.WithLabelValues(level).Inc()
}

// RecordCompatibilityScore observes one overall pair score.
func RecordCompatibilityScore(score int) {
	globalManager.pairsScored.Inc()
	globalManager.compatibilityScore.Observe(float64(score))
}

// RecordSelection records a finished selection and its result size.
func RecordSelection(returned int, latencyMs float64) {
	globalManager.selections.Inc()
	globalManager.matchesReturned.Observe(float64(returned))
	globalManager.selectionLatency.Observe(latencyMs)
}

// RecordCandidatesFiltered counts n candidates removed by a hard filter.
func RecordCandidatesFiltered(reason string, n int) {
	globalManager.candidatesFiltered.WithLabelValues(reason).Add(float64(n))
}

// RecordCandidatesSkipped counts n malformed or failed candidates.
func RecordCandidatesSkipped(reason string, n int) {
	globalManager.candidatesSkipped.WithLabelValues(reason).Add(float64(n))
}

// RecordScoringLatency records per-candidate scoring latency in milliseconds.
func RecordScoringLatency(latencyMs float64) {
	globalManager.scoringLatency.Observe(latencyMs)
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeued.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueError.Inc()
}

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// AddWorkerActive moves the active worker gauge by delta.
func AddWorkerActive(delta int) {
	globalManager.workerActive.Add(float64(delta))
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
