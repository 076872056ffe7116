// Package metrics exposes Prometheus collectors for the interaction endpoint.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dongerhook_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dongerhook_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "route"},
	)

	// Interaction outcomes: pong, message, unsigned, bad_request, error
	InteractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dongerhook_interactions_total",
			Help: "Interactions handled, by outcome",
		},
		[]string{"outcome"},
	)

	RejectedBodiesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dongerhook_rejected_bodies_total",
			Help: "Request bodies rejected before dispatch",
		},
		[]string{"reason"}, // "too_large" or "read_error"
	)

	ContentEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dongerhook_content_entries",
			Help: "Number of strings in the loaded content table",
		},
	)
)

// Handler serves the default registry for scraping.
func Handler() http.Handler {
	return promhttp.Handler()
}
