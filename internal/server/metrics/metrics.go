// Package metrics holds the Prometheus collectors of the server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Результаты операций для label result
const (
	ResultSuccess      = "success"
	ResultNoUser       = "no_user"
	ResultBadPassword  = "invalid_password"
	ResultInvalidInput = "invalid_input"
	ResultNotFound     = "not_found"
	ResultError        = "error"
)

var HTTPRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "passvault_http_requests_total",
		Help: "Total count of HTTP requests by method, route pattern and status code",
	},
	[]string{"method", "route", "status"},
)

var HTTPDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "passvault_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route pattern",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

var AuthAttempts = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "passvault_auth_attempts_total",
		Help: "Total count of sign-in attempts by result",
	},
	[]string{"result"},
)

var VaultOperations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "passvault_vault_operations_total",
		Help: "Total count of vault operations by operation and result",
	},
	[]string{"op", "result"},
)

var RateLimited = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "passvault_rate_limited_total",
		Help: "Total count of requests rejected by the auth rate limiter",
	},
	[]string{"path"},
)

// Register registers all collectors plus the Go runtime and process collectors
func Register(reg prometheus.Registerer) error {
	cs := []prometheus.Collector{
		HTTPRequests,
		HTTPDuration,
		AuthAttempts,
		VaultOperations,
		RateLimited,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Handler returns the exposition endpoint for the given registry
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// ObserveAuth records a sign-in attempt
func ObserveAuth(result string) {
	AuthAttempts.WithLabelValues(result).Inc()
}

// ObserveVault records a vault operation
func ObserveVault(op, result string) {
	VaultOperations.WithLabelValues(op, result).Inc()
}
