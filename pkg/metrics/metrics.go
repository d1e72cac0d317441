// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// MessagesTotal tracks processed chat messages by topic, language, and
	// reply route.
	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Total chat messages processed",
		},
		[]string{"topic", "language", "routed"},
	)

	// EscalationsTotal tracks escalation recommendations.
	EscalationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "escalation_recommendations_total",
			Help: "Total escalation recommendations by reason and urgency",
		},
		[]string{"reason", "urgency"},
	)

	// FallbacksTotal tracks fallback responses served.
	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fallback_responses_total",
			Help: "Total fallback responses served by topic",
		},
		[]string{"topic"},
	)

	// HandoffsOpened tracks user-initiated handoff channel openings.
	HandoffsOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "handoffs_opened_total",
			Help: "Total handoff channel openings by topic and reason",
		},
		[]string{"topic", "reason"},
	)

	// GeneratorDuration tracks primary generator call duration.
	GeneratorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "generator_duration_seconds",
			Help:    "Primary generator call duration",
			Buckets: []float64{.25, .5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"provider", "status"},
	)

	// GeneratorTokensTotal tracks generator tokens processed.
	GeneratorTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generator_tokens_total",
			Help: "Total generator tokens processed",
		},
		[]string{"provider", "direction"},
	)

	// AnalyticsDuration tracks analytics computation duration.
	AnalyticsDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analytics_compute_duration_seconds",
			Help:    "Analytics report computation duration",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordGeneration records metrics for a primary generator call.
func RecordGeneration(provider, status string, duration float64, tokensIn, tokensOut int) {
	GeneratorDuration.WithLabelValues(provider, status).Observe(duration)
	GeneratorTokensTotal.WithLabelValues(provider, "in").Add(float64(tokensIn))
	GeneratorTokensTotal.WithLabelValues(provider, "out").Add(float64(tokensOut))
}
