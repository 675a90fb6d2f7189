package middleware

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billsplit_http_requests_total",
			Help: "Total number of HTTP requests by status code and method.",
		},
		[]string{"code", "method"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "billsplit_http_request_duration_seconds",
			Help:    "HTTP request latency by status code and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"code", "method"},
	)
)

// Metrics returns a middleware that records request counts and latencies.
func Metrics(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerDuration(requestDuration,
		promhttp.InstrumentHandlerCounter(requestsTotal, next))
}

// MetricsHandler exposes the Prometheus scrape endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
