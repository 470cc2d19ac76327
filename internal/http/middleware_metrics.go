package httpx

import (
	"net/http"
	"time"

	"github.com/janasethu/civic-api/internal/observability/metrics"
	"github.com/janasethu/civic-api/internal/observability/statsd"
)

// Metrics returns a middleware that emits request count and latency metrics.
// The raw URL path is not tagged; its cardinality is unbounded.
func Metrics(sink statsd.Sink) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)

			metrics.EmitHTTPRequest(sink, metrics.HTTPMetric{
				Method:   r.Method,
				Status:   ww.status,
				Duration: time.Since(start),
			})
		})
	}
}
