package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP API
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookhub_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookhub_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	AuthFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookhub_auth_failures_total",
			Help: "Total number of rejected basic auth attempts",
		},
	)

	// Summarizer gateway
	SummarizerRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookhub_summarizer_requests_total",
			Help: "Total number of summarization calls by outcome",
		},
		[]string{"outcome"}, // "success", "error", "rejected"
	)

	SummarizerDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "bookhub_summarizer_duration_seconds",
			Help: "Duration of summarization calls in seconds",
			// model latency is measured in seconds to minutes
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	SummarizerBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bookhub_summarizer_breaker_state",
			Help: "Summarizer circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// Summarizer outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
)

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordSummarizerCall records one summarization attempt.
func RecordSummarizerCall(outcome string, duration time.Duration) {
	SummarizerRequestsTotal.WithLabelValues(outcome).Inc()
	if outcome != OutcomeRejected {
		SummarizerDuration.Observe(duration.Seconds())
	}
}
