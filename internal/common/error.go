// Package common defines shared constants and sentinel errors used across
// the server and client layers. Callers should use errors.Is to match these
// values; layers add context with fmt.Errorf("%w: ...").
package common

import "errors"

var (
	// Input errors (malformed body, disallowed sort field, bad identifiers).
	ErrorValidation = errors.New("validation error")

	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Token errors. Both are also ErrorUnauthorized for transport mapping.
	ErrTokenExpired   = errors.New("token expired")
	ErrMalformedToken = errors.New("malformed token")
)
