package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Counter metrics
var (
	// Registration and login counters
	RegisterCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_register_total",
			Help: "Total number of registrations by role",
		},
		[]string{"role"},
	)

	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "marketplace_login_total",
			Help: "Total number of login attempts",
		},
	)

	// Profile status transition counter
	ProfileTransitionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_profile_transitions_total",
			Help: "Total number of profile status transitions",
		},
		[]string{"role", "action"}, // action: approve, reject, suspend, reactivate
	)

	// Product operation counters
	ProductCreatedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_products_created_total",
			Help: "Total number of products created by creator type",
		},
		[]string{"created_by_type"},
	)

	ProductLinkCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "marketplace_product_links_total",
			Help: "Total number of linked products created",
		},
	)

	PriceQuoteCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "marketplace_price_quotes_total",
			Help: "Total number of price quote calculations",
		},
	)

	// Error counter
	ErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "marketplace_errors_total",
			Help: "Total number of errors by type",
		},
		[]string{"type"}, // validation, not_found, permission, conflict, internal
	)
)

// Histogram metrics
var (
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "marketplace_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // query, insert, update, delete
	)
)

// InitMetrics registers all metrics with the default registry.
func InitMetrics() {
	prometheus.MustRegister(
		RegisterCounter,
		LoginCounter,
		ProfileTransitionCounter,
		ProductCreatedCounter,
		ProductLinkCounter,
		PriceQuoteCounter,
		ErrorCounter,
		DBOperationDuration,
	)
}

// RecordError increments the error counter for a type.
func RecordError(errorType string) {
	ErrorCounter.WithLabelValues(errorType).Inc()
}

// TrackDBOperation returns a function that records operation duration when
// called, intended for use with defer:
//
//	defer prometheus.TrackDBOperation("query")(time.Now())
func TrackDBOperation(operation string) func(time.Time) {
	return func(start time.Time) {
		DBOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}
