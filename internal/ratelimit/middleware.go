package ratelimit

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"worldranks/pkg/platform/httputil"
	"worldranks/pkg/requestcontext"
)

type exceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"error_description"`
	RetryAfter int    `json:"retry_after"`
}

// Middleware rejects requests once the client IP exhausts its window.
// It relies on the request metadata middleware having set the client IP.
func Middleware(w *Window, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)
			if ip == "" {
				ip = "unknown"
			}

			result := w.Allow(ip)
			rw.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			rw.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			rw.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
				logger.WarnContext(ctx, "rate limit exceeded",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
					"retry_after_s", retryAfter,
				)
				rw.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				httputil.WriteJSON(rw, http.StatusTooManyRequests, &exceededResponse{
					Error:      "rate_limit_exceeded",
					Message:    "Too many requests from this IP address. Please try again later.",
					RetryAfter: retryAfter,
				})
				return
			}
			next.ServeHTTP(rw, r)
		})
	}
}
