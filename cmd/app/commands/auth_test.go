package commands

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authService "github.com/allisson/passkeeper/internal/auth/service"
	sessionDomain "github.com/allisson/passkeeper/internal/session/domain"
)

func TestRunAuth(t *testing.T) {
	ctx := context.Background()

	t.Run("secret flag starts a session", func(t *testing.T) {
		env := newTestEnv(t)
		ioTuple, out := bufferIO("")

		err := RunAuth(ctx, env.sessionUC, testLogger, testSecret, 5*time.Minute, ioTuple)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "authenticated")

		require.NoError(t, env.sessionUC.EnsureAuthenticated(ctx))
	})

	t.Run("empty secret prompts on the reader", func(t *testing.T) {
		env := newTestEnv(t)
		ioTuple, out := bufferIO(testSecret + "\n")

		err := RunAuth(ctx, env.sessionUC, testLogger, "", 5*time.Minute, ioTuple)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Secret: ")
	})

	t.Run("wrong secret fails and leaves no session", func(t *testing.T) {
		env := newTestEnv(t)
		ioTuple, _ := bufferIO("")

		err := RunAuth(ctx, env.sessionUC, testLogger, "wrong", 5*time.Minute, ioTuple)
		require.ErrorIs(t, err, sessionDomain.ErrAuthenticationFailed)

		assert.Error(t, env.sessionUC.EnsureAuthenticated(ctx))
	})
}

func TestRunLogout(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.authenticate(t)

	ioTuple, out := bufferIO("")
	require.NoError(t, RunLogout(ctx, env.sessionUC, ioTuple))
	assert.Contains(t, out.String(), "logged out")
	assert.Error(t, env.sessionUC.EnsureAuthenticated(ctx))

	t.Run("is idempotent", func(t *testing.T) {
		ioTuple, _ := bufferIO("")
		assert.NoError(t, RunLogout(ctx, env.sessionUC, ioTuple))
	})
}

func TestRunStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("reports no session", func(t *testing.T) {
		env := newTestEnv(t)
		ioTuple, out := bufferIO("")

		require.NoError(t, RunStatus(ctx, env.sessionUC, ioTuple))
		assert.Contains(t, out.String(), "state=no_session")
	})

	t.Run("reports active with remaining time", func(t *testing.T) {
		env := newTestEnv(t)
		env.authenticate(t)
		ioTuple, out := bufferIO("")

		require.NoError(t, RunStatus(ctx, env.sessionUC, ioTuple))
		assert.Contains(t, out.String(), "state=active")
		assert.Contains(t, out.String(), "remaining=")
	})
}

func TestRunHashSecret(t *testing.T) {
	secretService := authService.NewSecretService()

	t.Run("prints an Argon2id digest", func(t *testing.T) {
		ioTuple, out := bufferIO("")

		require.NoError(t, RunHashSecret(secretService, "my-secret", ioTuple))
		assert.True(t, strings.HasPrefix(out.String(), "$argon2id$"))
	})

	t.Run("digest verifies against the secret", func(t *testing.T) {
		ioTuple, out := bufferIO("")
		require.NoError(t, RunHashSecret(secretService, "my-secret", ioTuple))

		digest := strings.TrimSpace(out.String())
		assert.True(t, secretService.Verify("my-secret", digest))
		assert.False(t, secretService.Verify("other", digest))
	})
}
