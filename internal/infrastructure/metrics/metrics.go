package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PatriotMetrics holds the counters and histograms for the discovery and
// donation flows.
type PatriotMetrics struct {
	SearchesTotal      prometheus.CounterVec
	SearchDuration     prometheus.HistogramVec
	SearchResultsCount prometheus.HistogramVec
	SupplementFailures prometheus.Counter
	GeocodeFallbacks   prometheus.Counter

	DonationsCreatedTotal    prometheus.CounterVec
	DonationsCompletedTotal  prometheus.CounterVec
	DonationsCompletedAmount prometheus.Counter
	CaptureFailuresTotal     prometheus.Counter

	RegistrationsTotal       prometheus.Counter
	RegistrationsRateLimited prometheus.Counter
	EmailsQueuedTotal        prometheus.CounterVec
}

func NewPatriotMetrics() *PatriotMetrics {
	return NewPatriotMetricsWith(prometheus.DefaultRegisterer)
}

// NewPatriotMetricsWith registers against the given registerer; tests pass
// a fresh registry so repeated construction does not collide.
func NewPatriotMetricsWith(reg prometheus.Registerer) *PatriotMetrics {
	factory := promauto.With(reg)

	return &PatriotMetrics{
		SearchesTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "searches_total",
				Help: "Total number of discovery searches by search type",
			},
			[]string{"search_type"},
		),

		SearchDuration: *factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "search_duration_seconds",
				Help:    "Discovery search latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"search_type"},
		),

		SearchResultsCount: *factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "search_results_count",
				Help:    "Number of results returned per search",
				Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
			},
			[]string{"source"},
		),

		SupplementFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "search_supplement_failures_total",
				Help: "External places directory failures (degraded, not fatal)",
			},
		),

		GeocodeFallbacks: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "search_geocode_fallbacks_total",
				Help: "Geocoding failures that fell back to exact zip match",
			},
		),

		DonationsCreatedTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "donations_created_total",
				Help: "Total donations created by payment method",
			},
			[]string{"method"},
		),

		DonationsCompletedTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "donations_completed_total",
				Help: "Total donations confirmed by payment method",
			},
			[]string{"method"},
		),

		DonationsCompletedAmount: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "donations_completed_amount_total",
				Help: "Total confirmed donation amount in dollars",
			},
		),

		CaptureFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "donation_capture_failures_total",
				Help: "Payment captures that failed and aborted confirmation",
			},
		),

		RegistrationsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "registrations_total",
				Help: "Total accounts registered",
			},
		),

		RegistrationsRateLimited: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "registrations_rate_limited_total",
				Help: "Registration attempts rejected by the per-IP limiter",
			},
		),

		EmailsQueuedTotal: *factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "emails_queued_total",
				Help: "Notification emails queued by kind",
			},
			[]string{"kind"},
		),
	}
}
