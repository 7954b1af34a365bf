// Package metrics provides Prometheus metrics for the eventdesk service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager owns every collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec

	// Events provider
	providerRequests *prometheus.CounterVec
	providerLatency  *prometheus.HistogramVec
	providerPages    prometheus.Histogram
	eventsReturned   prometheus.Histogram

	// Contacts store
	storeLatency    *prometheus.HistogramVec
	storeErrors     *prometheus.CounterVec
	contactsCreated prometheus.Counter
	contactsDeleted prometheus.Counter

	// OAuth and notifications
	oauthExchanges         *prometheus.CounterVec
	notificationsPublished *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
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
		namespace:        "eventdesk",
		subsystem:        "api",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of collectors
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "Total number of error responses by endpoint",
	}, []string{"endpoint", "method", "error_type"})

	m.providerRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "provider_requests_total",
		Help:      "Requests issued to the events provider by outcome",
	}, []string{"provider", "outcome"})

	m.providerLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "provider_request_latency_milliseconds",
		Help:      "Latency of single events provider page requests",
		Buckets:   m.histogramBuckets,
	}, []string{"provider"})

	m.providerPages = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "provider_pages_per_search",
		Help:      "Provider pages fetched per events search",
		Buckets:   []float64{0, 1, 2, 3, 5, 8, 10},
	})

	m.eventsReturned = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_per_search",
		Help:      "Events accumulated per events search",
		Buckets:   []float64{0, 10, 50, 100, 250, 500, 1000},
	})

	m.storeLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_operation_latency_milliseconds",
		Help:      "Contacts store operation latency",
		Buckets:   m.histogramBuckets,
	}, []string{"operation"})

	m.storeErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_errors_total",
		Help:      "Contacts store operation failures",
	}, []string{"operation"})

	m.contactsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "contacts_created_total",
		Help:      "Contacts created",
	})

	m.contactsDeleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "contacts_deleted_total",
		Help:      "Contact delete requests that reached the store",
	})

	m.oauthExchanges = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "oauth_exchanges_total",
		Help:      "OAuth authorization code exchanges by provider and outcome",
	}, []string{"provider", "outcome"})

	m.notificationsPublished = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "notifications_total",
		Help:      "Contact change notifications by routing key and outcome",
	}, []string{"routing_key", "outcome"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "Heap bytes allocated",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordHTTPRequest records an HTTP request and its duration.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint records an error response.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordProviderRequest records one provider page request.
func RecordProviderRequest(provider, outcome string, latencyMs float64) {
	globalManager.providerRequests.WithLabelValues(provider, outcome).Inc()
	globalManager.providerLatency.WithLabelValues(provider).Observe(latencyMs)
}

// RecordSearch records how many pages and events one search produced.
func RecordSearch(pages, events int) {
	globalManager.providerPages.Observe(float64(pages))
	globalManager.eventsReturned.Observe(float64(events))
}

// RecordStoreOperation records a contacts store call.
func RecordStoreOperation(operation string, latencyMs float64, err error) {
	globalManager.storeLatency.WithLabelValues(operation).Observe(latencyMs)
	if err != nil {
		globalManager.storeErrors.WithLabelValues(operation).Inc()
	}
}

// RecordContactCreated increments the created contacts counter.
func RecordContactCreated() {
	globalManager.contactsCreated.Inc()
}

// RecordContactDeleted increments the deleted contacts counter.
func RecordContactDeleted() {
	globalManager.contactsDeleted.Inc()
}

// RecordOAuthExchange records a token exchange outcome.
func RecordOAuthExchange(provider, outcome string) {
	globalManager.oauthExchanges.WithLabelValues(provider, outcome).Inc()
}

// RecordNotification records a publish attempt.
func RecordNotification(routingKey, outcome string) {
	globalManager.notificationsPublished.WithLabelValues(routingKey, outcome).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
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
