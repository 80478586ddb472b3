package errs

import "errors"

// The subsystem-wide error taxonomy. Every error surfaced across a
// package boundary wraps exactly one of these sentinels so callers can
// branch with errors.Is without inspecting messages.
var (
	// ErrValidation covers bad input that the caller can correct:
	// duplicate slugs, unsafe schema names, invalid status transitions.
	ErrValidation = errors.New("validation error")

	// ErrAuthentication covers bad, expired, revoked or tenant-mismatched
	// credentials. It deliberately carries no detail that would help
	// probing; the cause stays in the wrapped chain for the logs only.
	ErrAuthentication = errors.New("authentication failed")

	// ErrAccountLocked is distinct from ErrAuthentication so the edge can
	// render a different message. Correct passwords still fail while the
	// lock is in effect.
	ErrAccountLocked = errors.New("account locked")

	ErrNotFound = errors.New("resource not found")
)
