package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-video-tube/internal/metrics"
	"github.com/go-chi/chi/v5"
)

// withMetrics records request count, latency and in-flight requests. Routes
// are labelled by their chi pattern so path ids do not explode cardinality.
func (h *Handler) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPActiveRequests.Inc()
		defer metrics.HTTPActiveRequests.Dec()

		start := time.Now()
		mw := newResponseWriter(w)

		next.ServeHTTP(mw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		metrics.RecordHTTPRequest(r.Method, route, mw.Status(), time.Since(start))
	})
}
