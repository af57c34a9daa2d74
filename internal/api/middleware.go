package api

import (
	"net/http"
	"time"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-reward-distributor/internal/observability/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const traceIDHeader = "X-Trace-Id"

func traceRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := tracing.InjectTraceID(r.Context())
		w.Header().Set(traceIDHeader, tracing.TraceIDFromContext(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func recordDuration(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		// the pattern is only known once routing is done
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		duration := time.Since(startTime)
		metrics.RecordHttpRequestDuration(duration, route, status)
		log.Ctx(r.Context()).Debug().
			Str("method", r.Method).
			Str("route", route).
			Int("status", status).
			Dur("duration", duration).
			Msg("request served")
	})
}
