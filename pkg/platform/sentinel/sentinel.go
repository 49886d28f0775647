package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores, caches and upstream clients
// return these (optionally wrapped) so services can translate them into domain
// errors or degrade.
//
//   - ErrNotFound: entity or cache entry does not exist
//   - ErrExpired: session has passed its idle TTL
//   - ErrInvalidState: entity in wrong state for the requested operation
//   - ErrUnavailable: upstream temporarily unavailable (open breaker, outage)
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrExpired      = errors.New("expired")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
