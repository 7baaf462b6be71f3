package testutil

import (
	"net/http"
	"time"

	"worldranks/pkg/requestcontext"
)

// WithRequestID stamps the request the way the request middleware would.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithRequestTime fixes the request-scoped "now".
func WithRequestTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
