// Package services – domain metrics
//
// Prometheus counters for the transactional operations. HTTP-level metrics
// (latency, status codes) live in the middleware package; these counters
// track business outcomes regardless of transport.
package services

import "github.com/prometheus/client_golang/prometheus"

var (
	purchasesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "program_purchases_total",
			Help: "Total number of recorded diet program purchases.",
		},
	)

	bookingsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "class_bookings_total",
			Help: "Total number of confirmed live class bookings.",
		},
	)

	// bookingRejections tracks why booking attempts were turned away.
	// reason is one of: full, expired, not_found.
	bookingRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "class_booking_rejections_total",
			Help: "Booking attempts rejected before any write.",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(purchasesTotal, bookingsTotal, bookingRejections)
}
