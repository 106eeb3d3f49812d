package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)
	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "geocode_cache_hits_total",
			Help: "Total number of geocode cache hits",
		},
	)
	CacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "geocode_cache_misses_total",
			Help: "Total number of geocode cache misses",
		},
	)
	RedisOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"operation"},
	)
	RedisErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_errors_total",
			Help: "Total number of failed Redis operations",
		},
		[]string{"operation"},
	)
	GeocodeResolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_resolutions_total",
			Help: "Coordinate resolutions by the source that produced them",
		},
		[]string{"source"},
	)
	GeocodeAPIDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "geocode_api_duration_seconds",
			Help:    "External geocoding request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)
	StreamFramesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stream_frames_total",
			Help: "Total number of project frames written to event streams",
		},
	)
	StreamsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "streams_active",
			Help: "Number of event streams currently open",
		},
	)
	StreamErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stream_errors_total",
			Help: "Stream failures by stage",
		},
		[]string{"stage"},
	)
)

// Geocode resolution sources.
const (
	SourceCityTable    = "city_table"
	SourceDefaultNoKey = "default_no_key"
	SourceCache        = "cache"
	SourceExternal     = "external"
	SourceFallback     = "fallback"
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			HTTPRequestsTotal,
			HTTPRequestDuration,
			CacheHitsTotal,
			CacheMissesTotal,
			RedisOperationDuration,
			RedisErrorsTotal,
			GeocodeResolutionsTotal,
			GeocodeAPIDuration,
			StreamFramesTotal,
			StreamsActive,
			StreamErrorsTotal,
		)
	})
}
