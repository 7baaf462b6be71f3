package client

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalized failure taxonomy for country API calls.
type ErrorCategory string

const (
	// ErrorTimeout indicates the API took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates the API returned a payload we could not read
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorProviderOutage indicates the API is unavailable (5xx, network, open circuit)
	ErrorProviderOutage ErrorCategory = "provider_outage"

	// ErrorNotFound indicates the requested country doesn't exist
	ErrorNotFound ErrorCategory = "not_found"

	// ErrorRateLimited indicates too many requests
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorInternal indicates an unexpected internal error
	ErrorInternal ErrorCategory = "internal"
)

// UpstreamError wraps country API failures with a normalized category.
type UpstreamError struct {
	Category   ErrorCategory
	Operation  string
	Message    string
	Underlying error
	Retryable  bool
}

func (e *UpstreamError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("countries api %s [%s]: %s: %v", e.Operation, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("countries api %s [%s]: %s", e.Operation, e.Category, e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Underlying
}

// NewUpstreamError creates a categorized error. Timeouts, outages and rate
// limiting are retryable.
func NewUpstreamError(category ErrorCategory, operation, message string, underlying error) *UpstreamError {
	retryable := category == ErrorTimeout ||
		category == ErrorProviderOutage ||
		category == ErrorRateLimited

	return &UpstreamError{
		Category:   category,
		Operation:  operation,
		Message:    message,
		Underlying: underlying,
		Retryable:  retryable,
	}
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Retryable
	}
	return false
}

// CategoryOf extracts the error category, defaulting to ErrorInternal.
func CategoryOf(err error) ErrorCategory {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue.Category
	}
	return ErrorInternal
}
