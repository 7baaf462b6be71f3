package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Caches, session stores and the
// upstream client return these (optionally wrapped) so services can translate
// them into domain errors:
//   - ErrNotFound: key or record does not exist
//   - ErrExpired: entry existed but outlived its TTL
//   - ErrUnavailable: dependency temporarily unavailable (e.g. circuit open)
//
// For validation errors use pkg/domain-errors directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrExpired     = errors.New("expired")
	ErrUnavailable = errors.New("unavailable")
)
