package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Refresh outcomes recorded by TokenRefreshCounter.
const (
	RefreshSkipped   = "skipped"
	RefreshSucceeded = "succeeded"
	RefreshFailed    = "failed"
	RefreshRejected  = "rejected"
)

var (
	UpstreamRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shopadmin",
			Name:      "upstream_requests_total",
			Help:      "Requests sent to the shop API, by resource, method and status code.",
		},
		[]string{"resource", "method", "status"},
	)

	TokenRefreshCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shopadmin",
			Name:      "token_refresh_total",
			Help:      "Access token refresh attempts, by outcome.",
		},
		[]string{"outcome"},
	)

	RequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shopadmin",
			Name:      "http_request_duration_seconds",
			Help:      "Latency of requests served by the admin server.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// NewRegistry returns a registry holding every shopadmin collector.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		UpstreamRequestCounter,
		TokenRefreshCounter,
		RequestDurationHistogram,
	)
	return registry
}

func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
