// Package observability registers the application's Prometheus metrics.
// HTTP-level metrics live in internal/middleware; this package holds the
// domain counters updated by the service layer.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	tripsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "globetrotter",
		Subsystem: "trips",
		Name:      "created_total",
		Help:      "Number of trips successfully created.",
	})
	tripBudget = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "globetrotter",
		Subsystem: "trips",
		Name:      "budget",
		Help:      "Computed total budget of created trips, in whole currency units.",
		Buckets:   prometheus.ExponentialBuckets(100, 4, 8),
	})
)

func init() {
	prometheus.MustRegister(tripsCreated, tripBudget)
}

// RecordTripCreated counts a committed trip creation and observes its budget.
func RecordTripCreated(totalBudget int64) {
	tripsCreated.Inc()
	tripBudget.Observe(float64(totalBudget))
}
