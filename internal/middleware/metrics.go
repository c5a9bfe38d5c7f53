package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"t20cli/internal/infrastructure"
)

// Metrics records request count and latency on the OTel instruments.
// Paths are labelled by the matched route pattern, not the raw URL, so
// batter names never become metric label values.
func Metrics(t *infrastructure.Telemetry) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if t == nil {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			pattern := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				pattern = rctx.RoutePattern()
			}

			attrs := metric.WithAttributes(
				attribute.String("method", r.Method),
				attribute.String("path", pattern),
				attribute.String("status", strconv.Itoa(ww.Status())),
			)

			ctx := r.Context()
			t.RequestCount.Add(ctx, 1, attrs)
			t.RequestDuration.Record(ctx, time.Since(start).Seconds(), attrs)
		})
	}
}
