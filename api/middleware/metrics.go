package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/edsu-house/edsu-backend/pkg/metrics"
)

// Metrics records request counts and latencies per chi route pattern.
func Metrics(httpMetrics *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if httpMetrics == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(rec, r)

			if rec.status == 0 {
				rec.status = http.StatusOK
			}
			route := ""
			if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
				route = routeCtx.RoutePattern()
			}
			httpMetrics.Observe(r.Method, route, strconv.Itoa(rec.status), time.Since(start))
		})
	}
}
