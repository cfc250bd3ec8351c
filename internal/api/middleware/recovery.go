package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/breatheroute/airindex/internal/api/models"
)

// Recovery turns a handler panic into a 500 problem. The panic is logged on
// the request logger when Logger ran first, otherwise on log.
func Recovery(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				requestID := GetRequestID(r.Context())
				logger := zerolog.Ctx(r.Context())
				if logger.GetLevel() == zerolog.Disabled {
					fallback := log.With().Str("request_id", requestID).Logger()
					logger = &fallback
				}
				logger.Error().
					Interface("panic", rec).
					Str("stack", string(debug.Stack())).
					Msg("panic recovered")

				problem := models.NewInternalError(requestID, "the index could not be computed")
				problem.Instance = r.URL.Path
				problem.Write(w)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
