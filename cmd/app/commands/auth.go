package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	authService "github.com/allisson/passkeeper/internal/auth/service"
	sessionDomain "github.com/allisson/passkeeper/internal/session/domain"
	sessionUseCase "github.com/allisson/passkeeper/internal/session/usecase"
)

// RunAuth verifies the operator secret and starts a session valid for ttl.
// An empty secret triggers an interactive prompt.
func RunAuth(
	ctx context.Context,
	sessionUC sessionUseCase.SessionUseCase,
	logger *logrus.Logger,
	secret string,
	ttl time.Duration,
	ioTuple IOTuple,
) error {
	if secret == "" {
		var err error
		secret, err = promptSecret(ioTuple)
		if err != nil {
			return err
		}
	}

	session, err := sessionUC.Auth(ctx, secret, ttl)
	if err != nil {
		return err
	}

	logger.WithField("expires_at", session.ExpiresAt.Unix()).Debug("session created")
	fmt.Fprintf(ioTuple.Writer, "authenticated, session expires at %s\n",
		session.ExpiresAt.Local().Format(time.RFC3339))

	return nil
}

// RunLogout deletes the current session. Succeeds even when no session
// exists.
func RunLogout(ctx context.Context, sessionUC sessionUseCase.SessionUseCase, ioTuple IOTuple) error {
	if err := sessionUC.Logout(ctx); err != nil {
		return err
	}

	fmt.Fprintln(ioTuple.Writer, "logged out")
	return nil
}

// RunStatus reports the current session state.
func RunStatus(ctx context.Context, sessionUC sessionUseCase.SessionUseCase, ioTuple IOTuple) error {
	status, err := sessionUC.Status(ctx)
	if err != nil {
		return err
	}

	if status.State == sessionDomain.StateActive {
		fmt.Fprintf(ioTuple.Writer, "state=%s remaining=%s\n",
			status.State, status.Remaining.Round(time.Second))
		return nil
	}

	fmt.Fprintf(ioTuple.Writer, "state=%s\n", status.State)
	return nil
}

// RunHashSecret prints the Argon2id digest of a secret, suitable as the
// AUTH_SECRET value. An empty secret triggers an interactive prompt.
func RunHashSecret(secretService *authService.SecretService, secret string, ioTuple IOTuple) error {
	if secret == "" {
		var err error
		secret, err = promptSecret(ioTuple)
		if err != nil {
			return err
		}
	}

	digest, err := secretService.HashSecret(secret)
	if err != nil {
		return err
	}

	fmt.Fprintln(ioTuple.Writer, digest)
	return nil
}
