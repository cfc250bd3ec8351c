package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// Logger returns a middleware that logs one line per HTTP request. The
// request-scoped logger is stored in the context for zerolog.Ctx.
func Logger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := newStatusWriter(w)

			logCtx := log.With().Str("request_id", GetRequestID(r.Context()))
			spanCtx := trace.SpanContextFromContext(r.Context())
			if spanCtx.IsValid() {
				logCtx = logCtx.
					Str("trace_id", spanCtx.TraceID().String()).
					Str("span_id", spanCtx.SpanID().String())
			}
			reqLog := logCtx.Logger()

			next.ServeHTTP(wrapped, r.WithContext(reqLog.WithContext(r.Context())))

			event := reqLog.Info()
			switch {
			case wrapped.statusCode >= http.StatusInternalServerError:
				event = reqLog.Error()
			case wrapped.statusCode >= http.StatusBadRequest:
				event = reqLog.Warn()
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", routePattern(r)).
				Int("status", wrapped.statusCode).
				Int64("bytes", wrapped.written).
				Dur("duration", time.Since(start)).
				Str("remote_addr", r.RemoteAddr).
				Str("user_agent", r.UserAgent()).
				Msg("request completed")
		})
	}
}
