package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	BookingCreated  = "created"
	BookingConflict = "conflict"
	BookingFailed   = "failed"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	bookings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Booking attempts by result",
		},
		[]string{"result"},
	)

	bookedSeats = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booked_seats_total",
			Help: "Seats booked successfully",
		},
	)

	payments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_total",
			Help: "Processed payments by payment method",
		},
		[]string{"method"},
	)
)

// ObserveHTTP records one finished request. path must be the route pattern,
// not the raw URL, to keep label cardinality bounded.
func ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	if path == "" {
		path = "unmatched"
	}
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func RecordBooking(result string, seats int) {
	bookings.WithLabelValues(result).Inc()
	if result == BookingCreated && seats > 0 {
		bookedSeats.Add(float64(seats))
	}
}

// paymentMethods is the closed set of payments_total labels. Anything else
// is counted as "other".
var paymentMethods = map[string]string{
	"card":        "card",
	"credit_card": "card",
	"debit_card":  "card",
	"upi":         "upi",
	"netbanking":  "netbanking",
	"net_banking": "netbanking",
	"wallet":      "wallet",
	"cash":        "cash",
}

// PaymentMethodLabel maps a client-supplied payment method to its metric label.
func PaymentMethodLabel(method string) string {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(method)), " ", "_")
	key = strings.ReplaceAll(key, "-", "_")
	if label, ok := paymentMethods[key]; ok {
		return label
	}
	return "other"
}

func RecordPayment(method string) {
	payments.WithLabelValues(PaymentMethodLabel(method)).Inc()
}
