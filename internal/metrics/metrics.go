package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDurationSeconds measures HTTP request latency
	HTTPRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// ManagementCallsTotal counts calls to the identity platform management API
	ManagementCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "management_api_calls_total",
			Help: "Total number of identity platform management API calls",
		},
		[]string{"operation", "outcome"},
	)

	// ManagementCallDurationSeconds measures management API latency
	ManagementCallDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "management_api_call_duration_seconds",
			Help:    "Duration of identity platform management API calls in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		[]string{"operation"},
	)

	// JWKSRefreshTotal counts signing key refreshes
	JWKSRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jwks_refresh_total",
			Help: "Total number of session signing key refreshes",
		},
		[]string{"outcome"},
	)
)

// Register adds every collector to the given registerer.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		HTTPRequestsTotal,
		HTTPRequestDurationSeconds,
		ManagementCallsTotal,
		ManagementCallDurationSeconds,
		JWKSRefreshTotal,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
