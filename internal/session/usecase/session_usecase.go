package usecase

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/allisson/passkeeper/internal/errors"
	sessionDomain "github.com/allisson/passkeeper/internal/session/domain"
)

// systemClock is the production Clock reading the wall clock.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewSystemClock returns a Clock backed by time.Now.
func NewSystemClock() Clock {
	return systemClock{}
}

// sessionUseCase implements SessionUseCase over an injected repository,
// verifier and clock.
type sessionUseCase struct {
	repo           SessionRepository
	verifier       SecretVerifier
	expectedSecret string
	clock          Clock
}

// NewSessionUseCase creates a SessionUseCase. expectedSecret is the
// configured operator secret (plaintext or Argon2id digest).
func NewSessionUseCase(
	repo SessionRepository,
	verifier SecretVerifier,
	expectedSecret string,
	clock Clock,
) SessionUseCase {
	return &sessionUseCase{
		repo:           repo,
		verifier:       verifier,
		expectedSecret: expectedSecret,
		clock:          clock,
	}
}

// Auth verifies the presented secret and persists a fresh session on match.
func (s *sessionUseCase) Auth(
	ctx context.Context,
	presentedSecret string,
	ttl time.Duration,
) (*sessionDomain.Session, error) {
	if s.expectedSecret == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "AUTH_SECRET is not configured")
	}
	if ttl <= 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "session ttl must be positive")
	}

	if !s.verifier.Verify(presentedSecret, s.expectedSecret) {
		return nil, sessionDomain.ErrAuthenticationFailed
	}

	session := &sessionDomain.Session{
		ExpiresAt: s.clock.Now().Add(ttl).Truncate(time.Second),
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// Logout deletes the persisted session; idempotent.
func (s *sessionUseCase) Logout(ctx context.Context) error {
	return s.repo.Delete(ctx)
}

// Status reports the current session state without mutating it.
func (s *sessionUseCase) Status(ctx context.Context) (sessionDomain.Status, error) {
	session, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return sessionDomain.Status{State: sessionDomain.StateNoSession}, nil
		}
		return sessionDomain.Status{}, err
	}

	now := s.clock.Now()
	if !now.Before(session.ExpiresAt) {
		return sessionDomain.Status{State: sessionDomain.StateExpired}, nil
	}

	return sessionDomain.Status{
		State:     sessionDomain.StateActive,
		Remaining: session.ExpiresAt.Sub(now),
	}, nil
}

// EnsureAuthenticated gates secret-touching operations.
func (s *sessionUseCase) EnsureAuthenticated(ctx context.Context) error {
	session, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return sessionDomain.ErrUnauthenticated
		}
		return err
	}

	if !s.clock.Now().Before(session.ExpiresAt) {
		return sessionDomain.ErrSessionExpired
	}

	return nil
}
