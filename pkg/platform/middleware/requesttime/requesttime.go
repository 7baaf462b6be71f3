// Package requesttime stamps each request with one "now" so every log line
// and duration within the request uses the same reference time.
package requesttime

import (
	"net/http"
	"time"

	"worldranks/pkg/requestcontext"
)

// Middleware captures time.Now at the start of the request.
func Middleware(next http.Handler) http.Handler {
	return WithClock(time.Now)(next)
}

// WithClock builds the middleware around a custom clock, for tests.
func WithClock(now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), now())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
