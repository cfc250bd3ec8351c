package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/httprate"

	"github.com/breatheroute/airindex/internal/api/models"
)

// RateLimitConfig is a fixed request budget per client and window.
type RateLimitConfig struct {
	RequestLimit int
	WindowLength time.Duration
}

var (
	// ComputeRateLimit applies to the calculation endpoints (120 req/min).
	ComputeRateLimit = RateLimitConfig{
		RequestLimit: 120,
		WindowLength: time.Minute,
	}

	// StandardRateLimit applies to metadata endpoints (100 req/min).
	StandardRateLimit = RateLimitConfig{
		RequestLimit: 100,
		WindowLength: time.Minute,
	}
)

// RateLimitByIP creates a rate limiter keyed on the client IP. Run chi's
// RealIP middleware first so proxied requests are keyed correctly.
func RateLimitByIP(cfg RateLimitConfig) func(http.Handler) http.Handler {
	retryAfter := strconv.Itoa(int(cfg.WindowLength.Round(time.Second).Seconds()))

	return httprate.Limit(
		cfg.RequestLimit,
		cfg.WindowLength,
		httprate.WithKeyFuncs(httprate.KeyByRealIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			// httprate does not expose the reset time; a full window is the upper bound.
			w.Header().Set("Retry-After", retryAfter)

			problem := models.NewTooManyRequests(GetRequestID(r.Context()),
				"Rate limit of "+strconv.Itoa(cfg.RequestLimit)+" requests per "+cfg.WindowLength.String()+" exceeded")
			problem.Instance = r.URL.Path
			problem.Write(w)
		}),
	)
}
