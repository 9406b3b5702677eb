package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"placestats/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(slot string, duration time.Duration)
	IncSlotOperation(slot, op string, ok bool)
	SetSlotSize(slot string, bytes int)
	IncTrackedEvents(eventType string)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration *prometheus.HistogramVec
	slotOperations      *prometheus.CounterVec
	slotSize            *prometheus.GaugeVec
	trackedEvents       *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(slot string, duration time.Duration) {
	m.persistenceDuration.WithLabelValues(slot).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncSlotOperation(slot, op string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.slotOperations.WithLabelValues(slot, op, result).Inc()
}

func (m *MetricsProvider) SetSlotSize(slot string, bytes int) {
	m.slotSize.WithLabelValues(slot).Set(float64(bytes))
}

func (m *MetricsProvider) IncTrackedEvents(eventType string) {
	m.trackedEvents.WithLabelValues(eventType).Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "placestats_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "placestats_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "placestats_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "placestats_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "placestats_slot_write_duration_seconds",
			Help:    "Duration of slot writes in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"slot"}),

		slotOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "placestats_slot_operations_total",
			Help: "Slot reads and writes by result",
		}, []string{"slot", "op", "result"}),

		slotSize: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "placestats_slot_size_bytes",
			Help: "Size of the last written slot document",
		}, []string{"slot"}),

		trackedEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "placestats_tracked_events_total",
			Help: "Tracking events accepted, by type",
		}, []string{"type"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                     {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration)     {}
func (n *noopMetrics) IncCacheHits()                                        {}
func (n *noopMetrics) IncCacheMisses()                                      {}
func (n *noopMetrics) ObservePersistenceDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncSlotOperation(_, _ string, _ bool)                 {}
func (n *noopMetrics) SetSlotSize(_ string, _ int)                          {}
func (n *noopMetrics) IncTrackedEvents(_ string)                            {}
