// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ToolInvocationsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_invocations_completed_total",
			Help: "Total number of tool invocations completed",
		},
		[]string{"tool"},
	)

	ToolInvocationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_invocations_failed_total",
			Help: "Total number of tool invocations failed",
		},
		[]string{"tool", "error_code"},
	)

	ToolInvocationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "tool_invocation_duration_seconds",
			Help: "Duration of tool invocation processing in seconds",
		},
		[]string{"tool"},
	)

	RequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	ProviderRequestsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_requests_completed_total",
			Help: "Total number of provider requests that returned results",
		},
		[]string{"provider"},
	)

	ProviderRequestsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_requests_failed_total",
			Help: "Total number of provider requests degraded to empty results",
		},
		[]string{"provider", "error_code"},
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "provider_request_duration_seconds",
			Help: "Duration of provider requests in seconds",
		},
		[]string{"provider"},
	)

	// Zero results and degraded failures look identical in the response
	// body; this histogram is where the two are told apart.
	ProviderResultsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "provider_results_returned",
			Help:    "Number of records returned per provider request",
			Buckets: []float64{0, 1, 2, 3, 5, 10},
		},
		[]string{"provider"},
	)
)
