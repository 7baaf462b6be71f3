package handler

import (
	"fmt"

	"worldranks/internal/countries/query"
	dErrors "worldranks/pkg/domain-errors"
)

const maxSearchTextLen = 100

// SearchRequest is the body of PUT /v1/browse/{sessionID}/search. The text is
// used as typed; it is not trimmed.
type SearchRequest struct {
	Text string `json:"text"`
}

// Validate implements httputil.Validatable.
func (r *SearchRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Text) > maxSearchTextLen {
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("text must be at most %d bytes", maxSearchTextLen))
	}
	return nil
}

// SortRequest is the body of PUT /v1/browse/{sessionID}/sort.
type SortRequest struct {
	Key string `json:"key"`

	parsedKey query.SortKey
}

func (r *SortRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Key == "" {
		return dErrors.New(dErrors.CodeValidation, "key is required")
	}
	key, err := query.ParseSortKey(r.Key)
	if err != nil {
		return err
	}
	r.parsedKey = key
	return nil
}

func (r *SortRequest) ParsedKey() query.SortKey { return r.parsedKey }

// StatusRequest is the body of PUT /v1/browse/{sessionID}/status.
type StatusRequest struct {
	Status string `json:"status"`
	Value  *bool  `json:"value"`

	parsedStatus query.Status
}

func (r *StatusRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Status == "" {
		return dErrors.New(dErrors.CodeValidation, "status is required")
	}
	if r.Value == nil {
		return dErrors.New(dErrors.CodeValidation, "value is required")
	}
	status, err := query.ParseStatus(r.Status)
	if err != nil {
		return err
	}
	r.parsedStatus = status
	return nil
}

func (r *StatusRequest) ParsedStatus() query.Status { return r.parsedStatus }

// PageRequest is the body of PUT /v1/browse/{sessionID}/page. Page is a
// zero-based index; out-of-range values are clamped by the store.
type PageRequest struct {
	Page *int `json:"page"`
}

func (r *PageRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if r.Page == nil {
		return dErrors.New(dErrors.CodeValidation, "page is required")
	}
	return nil
}
