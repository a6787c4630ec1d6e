package domain

import (
	"github.com/allisson/passkeeper/internal/errors"
)

// Session error definitions, built on the standard domain errors.
var (
	// ErrAuthenticationFailed indicates the presented secret did not match
	// the configured one. Any existing session is left untouched.
	ErrAuthenticationFailed = errors.Wrap(errors.ErrUnauthorized, "authentication failed")

	// ErrUnauthenticated indicates a secret-touching operation ran without
	// any session.
	ErrUnauthenticated = errors.Wrap(errors.ErrUnauthorized, "unauthenticated")

	// ErrSessionExpired indicates a session exists but its expiry has passed.
	ErrSessionExpired = errors.Wrap(errors.ErrUnauthorized, "session expired")
)
