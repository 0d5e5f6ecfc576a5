package metrics

import (
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registry holds every collector exposed on /api/metrics
	Registry = prometheus.NewRegistry()

	factory = promauto.With(Registry)

	initOnce sync.Once

	// Histogram buckets for API response times ranging from milliseconds to 30+ seconds.
	// Mail provider calls sit at the long end.
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

	// HTTP Metrics
	HTTPRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Mail provider metrics
	MailRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mail_client_operation_duration_seconds",
			Help:    "Mail provider operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"provider", "status"},
	)

	MailRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_client_operation_total",
			Help: "Total number of mail provider operations",
		},
		[]string{"provider", "status"},
	)

	// Cache Metrics
	CacheHits = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_name"},
	)

	CacheMisses = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_name"},
	)

	CacheSize = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Number of entries in cache",
		},
		[]string{"cache_name"},
	)

	// Storage Client Metrics (S3-compatible datasheet bucket)
	StorageRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storage_client_operation_duration_seconds",
			Help:    "Storage client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	StorageRequestTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storage_client_operation_total",
			Help: "Total number of storage client operations",
		},
		[]string{"operation", "status"},
	)

	// Business Metrics
	ProductViews = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radshield_product_views_total",
			Help: "Total number of product detail views",
		},
		[]string{"product_slug"},
	)

	CatalogueQueries = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radshield_catalogue_queries_total",
			Help: "Total number of catalogue listings by sort order",
		},
		[]string{"sort"},
	)

	WizardMounts = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radshield_quote_wizard_mounts_total",
			Help: "Total number of quote wizards started",
		},
		[]string{"prefilled"},
	)

	WizardTransitions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radshield_quote_wizard_transitions_total",
			Help: "Total number of wizard actions by outcome",
		},
		[]string{"action", "result"},
	)

	QuoteSubmissions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radshield_quote_submissions_total",
			Help: "Total number of quote request submissions",
		},
		[]string{"status"},
	)

	ContactFormSubmissions = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "radshield_contact_form_submissions_total",
			Help: "Total number of contact form submissions",
		},
		[]string{"status"},
	)

	// 0 closed, 1 half-open, 2 open
	CircuitBreakerState = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state",
		},
		[]string{"breaker"},
	)

	// Infrastructure Metrics
	GoRoutines = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// Init registers the standard process and build collectors on Registry.
func Init(serviceName string) {
	initOnce.Do(func() {
		Registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: ""}),
			collectors.NewBuildInfoCollector(),
		)
		factory.NewGauge(prometheus.GaugeOpts{
			Name:        "radshield_service_info",
			Help:        "Service identity",
			ConstLabels: prometheus.Labels{"service_name": serviceName},
		}).Set(1)
	})
}

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
