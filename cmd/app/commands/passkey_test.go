package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/passkeeper/internal/errors"
	vaultDomain "github.com/allisson/passkeeper/internal/vault/domain"
	vaultUseCase "github.com/allisson/passkeeper/internal/vault/usecase"
)

func testPasskeyInput() vaultUseCase.PasskeyInput {
	return vaultUseCase.PasskeyInput{
		RpID:         "example.com",
		CredentialID: "cred-1",
		UserHandle:   "user-1",
		PublicKey:    "pk-material",
		SignCount:    3,
		Transports:   []string{"usb"},
	}
}

func TestRunPasskeyAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("requires an active session", func(t *testing.T) {
		env := newTestEnv(t)
		ioTuple, _ := bufferIO("")

		err := RunPasskeyAdd(ctx, env.sessionUC, env.passkeyUC, testPasskeyInput(), ioTuple)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("stores the record without echoing the key", func(t *testing.T) {
		env := newTestEnv(t)
		env.authenticate(t)
		ioTuple, out := bufferIO("")

		require.NoError(t, RunPasskeyAdd(ctx, env.sessionUC, env.passkeyUC, testPasskeyInput(), ioTuple))
		assert.Contains(t, out.String(), `rp_id="example.com"`)
		assert.NotContains(t, out.String(), "pk-material")
	})
}

func TestRunPasskeyGetSearch(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.authenticate(t)

	_, err := env.passkeyUC.Add(ctx, testPasskeyInput())
	require.NoError(t, err)

	t.Run("get prints the decrypted key", func(t *testing.T) {
		ioTuple, out := bufferIO("")

		require.NoError(t, RunPasskeyGet(ctx, env.sessionUC, env.passkeyUC, "example.com", "", ioTuple))
		assert.Contains(t, out.String(), `public_key="pk-material"`)
		assert.Contains(t, out.String(), "sign_count=3")
	})

	t.Run("user handle narrows the result", func(t *testing.T) {
		ioTuple, _ := bufferIO("")
		err := RunPasskeyGet(ctx, env.sessionUC, env.passkeyUC, "example.com", "other-user", ioTuple)
		assert.ErrorIs(t, err, vaultDomain.ErrRecordNotFound)
	})

	t.Run("search never reveals the key", func(t *testing.T) {
		ioTuple, out := bufferIO("")

		require.NoError(t, RunPasskeySearch(ctx, env.sessionUC, env.passkeyUC, "cred-1", ioTuple))
		assert.Contains(t, out.String(), `credential_id="cred-1"`)
		assert.NotContains(t, out.String(), "pk-material")
	})
}

func TestRunPasskeyUpdateDelete(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.authenticate(t)

	record, err := env.passkeyUC.Add(ctx, testPasskeyInput())
	require.NoError(t, err)

	t.Run("update bumps the signature counter", func(t *testing.T) {
		ioTuple, out := bufferIO("")
		signCount := uint32(10)

		err := RunPasskeyUpdate(ctx, env.sessionUC, env.passkeyUC, record.ID,
			vaultDomain.PasskeyUpdate{SignCount: &signCount}, ioTuple)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "sign_count=10")
	})

	t.Run("delete removes the record", func(t *testing.T) {
		ioTuple, _ := bufferIO("")

		require.NoError(t, RunPasskeyDelete(ctx, env.sessionUC, env.passkeyUC, record.ID, ioTuple))

		err := RunPasskeyGet(ctx, env.sessionUC, env.passkeyUC, "example.com", "", ioTuple)
		assert.ErrorIs(t, err, vaultDomain.ErrRecordNotFound)
	})
}

func TestRunPasskeyExportImport(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.authenticate(t)

	_, err := env.passkeyUC.Add(ctx, testPasskeyInput())
	require.NoError(t, err)

	exportIO, exportOut := bufferIO("")
	require.NoError(t, RunPasskeyExport(ctx, env.sessionUC, env.passkeyUC, testLogger, "-", exportIO))
	assert.Contains(t, exportOut.String(), "pk-material")

	target := newTestEnv(t)
	target.authenticate(t)

	importIO, importOut := bufferIO(exportOut.String())
	require.NoError(t, RunPasskeyImport(ctx, target.sessionUC, target.passkeyUC, testLogger, "-", importIO))
	assert.Contains(t, importOut.String(), "imported 1 records")

	getIO, getOut := bufferIO("")
	require.NoError(t, RunPasskeyGet(ctx, target.sessionUC, target.passkeyUC, "example.com", "", getIO))
	assert.Contains(t, getOut.String(), `public_key="pk-material"`)
}
