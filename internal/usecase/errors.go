package usecase

import "errors"

// Sentinel errors returned by the services. Callers wrap them with detail
// and the HTTP layer maps each one to a status code.
var (
	// ErrInvalidInput covers malformed odds, unknown results and empty fields.
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the caller is authenticated but not a member, or not
	// the commissioner for commissioner-only actions.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict is a state conflict: the slip is locked or the per-user pick
	// limit is reached.
	ErrConflict              = errors.New("conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
