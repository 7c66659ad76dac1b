// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobportal_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobportal_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	messagesSentTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobportal_messages_sent_total",
			Help: "Total number of direct messages stored",
		},
	)

	realtimeDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobportal_realtime_dropped_events_total",
			Help: "Realtime events dropped because a buffer was full",
		},
	)

	rateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobportal_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"scope"},
	)
)

func IncrementMessagesSent() {
	messagesSentTotal.Inc()
}

func IncrementRealtimeDropped() {
	realtimeDroppedTotal.Inc()
}

func IncrementRateLimited(scope string) {
	rateLimitedTotal.WithLabelValues(scope).Inc()
}
