package metrics

import (
	"time"

	"court-booking-engine/internal/domain/ledger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BookingMetrics holds the Prometheus collectors for bookings and ledger movements.
type BookingMetrics struct {
	ReservationsTotal  *prometheus.CounterVec
	RejectionsTotal    *prometheus.CounterVec
	PointsCharged      *prometheus.CounterVec
	CommitDuration     *prometheus.HistogramVec
	LedgerPointsMoved  *prometheus.CounterVec
	HTTPRequestsTotal  *prometheus.CounterVec
	HTTPRequestLatency *prometheus.HistogramVec
}

// New registers every collector on reg. Pass prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *BookingMetrics {
	factory := promauto.With(reg)
	return &BookingMetrics{
		ReservationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "court_booking",
			Subsystem: "reservations",
			Name:      "committed_total",
			Help:      "Reservations committed, by booking kind.",
		}, []string{"kind"}), // kind: single, full_venue
		RejectionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "court_booking",
			Subsystem: "reservations",
			Name:      "rejected_total",
			Help:      "Reservation attempts rejected, by booking kind and reason.",
		}, []string{"kind", "reason"}),
		PointsCharged: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "court_booking",
			Subsystem: "reservations",
			Name:      "points_charged_total",
			Help:      "Points charged for committed reservations.",
		}, []string{"kind"}),
		CommitDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "court_booking",
			Subsystem: "reservations",
			Name:      "commit_duration_seconds",
			Help:      "Time from request to commit for reservations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		LedgerPointsMoved: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "court_booking",
			Subsystem: "ledger",
			Name:      "points_moved_total",
			Help:      "Absolute points moved through the ledger, by transaction kind.",
		}, []string{"kind"}),
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "court_booking",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPRequestLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "court_booking",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *BookingMetrics) ReservationCommitted(kind string, price int64, elapsed time.Duration) {
	m.ReservationsTotal.WithLabelValues(kind).Inc()
	m.PointsCharged.WithLabelValues(kind).Add(float64(price))
	m.CommitDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (m *BookingMetrics) ReservationRejected(kind, reason string) {
	m.RejectionsTotal.WithLabelValues(kind, reason).Inc()
}

func (m *BookingMetrics) LedgerMoved(kind ledger.Kind, amount int64) {
	if amount < 0 {
		amount = -amount
	}
	m.LedgerPointsMoved.WithLabelValues(string(kind)).Add(float64(amount))
}

func (m *BookingMetrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, statusLabel(status)).Inc()
	m.HTTPRequestLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
