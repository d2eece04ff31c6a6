package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	QuestionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jarvis_questions_total",
		Help: "Total questions answered, partitioned by mode and outcome",
	}, []string{"mode", "status"})

	CompletionLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jarvis_completion_latency_seconds",
		Help:    "Latency of calls to the hosted completion API",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 16, 32},
	}, []string{"mode"})

	VoiceEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jarvis_voice_events_total",
		Help: "Voice webhook events handled, partitioned by request kind and outcome",
	}, []string{"kind", "outcome"})

	// Infrastructure metrics
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jarvis_http_requests_total",
		Help: "Total HTTP requests, partitioned by method, route and status code",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jarvis_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds, partitioned by method and route",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)
