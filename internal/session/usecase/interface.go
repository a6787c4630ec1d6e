// Package usecase implements session-based authentication gating. Every
// secret-touching command consults EnsureAuthenticated before it runs.
package usecase

import (
	"context"
	"time"

	sessionDomain "github.com/allisson/passkeeper/internal/session/domain"
)

// Clock abstracts time so the authentication gate is testable with an
// injected clock.
type Clock interface {
	Now() time.Time
}

// SecretVerifier checks a presented secret against the configured one.
type SecretVerifier interface {
	Verify(presentedSecret, expectedSecret string) bool
}

// SessionRepository defines the interface for session persistence.
type SessionRepository interface {
	Get(ctx context.Context) (*sessionDomain.Session, error)
	Save(ctx context.Context, session *sessionDomain.Session) error
	Delete(ctx context.Context) error
}

// SessionUseCase defines the session management operations.
type SessionUseCase interface {
	// Auth verifies the presented secret and, on match, persists a session
	// expiring ttl from now. On mismatch it fails with
	// ErrAuthenticationFailed and leaves any existing session untouched.
	Auth(ctx context.Context, presentedSecret string, ttl time.Duration) (*sessionDomain.Session, error)

	// Logout deletes the persisted session unconditionally.
	Logout(ctx context.Context) error

	// Status reports the observable session state.
	Status(ctx context.Context) (sessionDomain.Status, error)

	// EnsureAuthenticated fails with ErrUnauthenticated when no session
	// exists and ErrSessionExpired when the expiry has passed. It never
	// renews the session: the TTL runs from the moment of auth, not of
	// last activity.
	EnsureAuthenticated(ctx context.Context) error
}
