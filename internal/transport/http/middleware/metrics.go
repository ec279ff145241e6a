package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"kpm/internal/platform/metrics"
)

// Metrics records per-route counters and latency. The route pattern comes
// from chi after the handler ran, so parameterized paths collapse into one
// series instead of one per ID.
func Metrics(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			collector.RecordRequest(r.Method, route, recorder.status, time.Since(start))
		})
	}
}
