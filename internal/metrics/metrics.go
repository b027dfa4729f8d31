// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videotube_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "videotube_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "videotube_http_active_requests",
			Help: "Current number of in-flight HTTP requests",
		},
	)

	// Sessions
	AuthRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "videotube_auth_rejections_total",
			Help: "Requests rejected by the authentication middleware",
		},
	)

	TokenRotations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videotube_token_rotations_total",
			Help: "Rotation token exchanges by result",
		},
		[]string{"result"},
	)

	// Social graph
	EdgeToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videotube_edge_toggles_total",
			Help: "Like and subscription toggles by edge kind and resulting state",
		},
		[]string{"edge", "active"},
	)

	// Media
	MediaUploadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "videotube_media_upload_duration_seconds",
			Help:    "Duration of media uploads to object storage",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "videotube_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videotube_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// RecordHTTPRequest records one finished HTTP request.
func RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordTokenRotation records the outcome of a rotation token exchange.
func RecordTokenRotation(ok bool) {
	result := "rejected"
	if ok {
		result = "success"
	}
	TokenRotations.WithLabelValues(result).Inc()
}

// RecordEdgeToggle records the state an edge was left in by a toggle.
func RecordEdgeToggle(edge string, active bool) {
	EdgeToggles.WithLabelValues(edge, strconv.FormatBool(active)).Inc()
}

// RecordMediaUpload records one upload attempt to object storage.
func RecordMediaUpload(duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	MediaUploadDuration.WithLabelValues(result).Observe(duration.Seconds())
}
