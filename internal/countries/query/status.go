package query

import (
	"fmt"

	dErrors "worldranks/pkg/domain-errors"
)

// Status names one of the boolean status filters.
type Status string

const (
	StatusUN          Status = "UN"
	StatusIndependent Status = "Independent"
)

// AllStatuses returns the status filters in display order.
func AllStatuses() []Status {
	return []Status{StatusUN, StatusIndependent}
}

// ParseStatus matches s exactly against the status names.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusUN, StatusIndependent:
		return st, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("invalid status %q: must be UN or Independent", s))
}

// Label is the checkbox text for the status filter.
func (s Status) Label() string {
	if s == StatusUN {
		return "Member of the United Nations"
	}
	return string(s)
}

// StatusFlags are the two "required" switches of the status filter.
type StatusFlags struct {
	IndependentRequired bool `json:"independent_required"`
	UNMemberRequired    bool `json:"un_member_required"`
}

// With returns a copy of f with the flag for s set to value.
func (f StatusFlags) With(s Status, value bool) StatusFlags {
	switch s {
	case StatusIndependent:
		f.IndependentRequired = value
	case StatusUN:
		f.UNMemberRequired = value
	}
	return f
}

// Get returns the flag for s.
func (f StatusFlags) Get(s Status) bool {
	if s == StatusUN {
		return f.UNMemberRequired
	}
	return f.IndependentRequired
}
