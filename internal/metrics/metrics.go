package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tennisclub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tennisclub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tennisclub_reservations_created_total",
			Help: "Total number of reservations created",
		},
	)

	ReservationConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tennisclub_reservation_conflicts_total",
			Help: "Total number of reservation attempts rejected due to an overlapping slot",
		},
	)

	ReservationCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tennisclub_reservation_cancellations_total",
			Help: "Total number of reservations soft-deleted",
		},
	)

	TransientRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tennisclub_store_transient_retries_total",
			Help: "Total number of reservation writes retried after a transient store failure",
		},
	)

	CourtCacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tennisclub_court_cache_total",
			Help: "Court cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordReservationCreated() {
	ReservationsCreatedTotal.Inc()
}

func RecordReservationConflict() {
	ReservationConflictsTotal.Inc()
}

func RecordReservationCancellation() {
	ReservationCancellationsTotal.Inc()
}

func RecordTransientRetry() {
	TransientRetriesTotal.Inc()
}

func RecordCourtCache(outcome string) {
	CourtCacheHitsTotal.WithLabelValues(outcome).Inc()
}
