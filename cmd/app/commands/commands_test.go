package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	authService "github.com/allisson/passkeeper/internal/auth/service"
	cryptoService "github.com/allisson/passkeeper/internal/crypto/service"
	"github.com/allisson/passkeeper/internal/logging"
	sessionRepository "github.com/allisson/passkeeper/internal/session/repository"
	sessionUseCase "github.com/allisson/passkeeper/internal/session/usecase"
	"github.com/allisson/passkeeper/internal/testutil"
	vaultUseCase "github.com/allisson/passkeeper/internal/vault/usecase"
)

const testSecret = "test-secret"

// testEnv wires real components against per-test temporary storage.
type testEnv struct {
	sessionUC  sessionUseCase.SessionUseCase
	passwordUC vaultUseCase.PasswordUseCase
	passkeyUC  vaultUseCase.PasskeyUseCase
	generator  cryptoService.Generator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sessionRepo := sessionRepository.NewFileSessionRepository(filepath.Join(t.TempDir(), "session"))
	sessionUC := sessionUseCase.NewSessionUseCase(
		sessionRepo,
		authService.NewSecretService(),
		testSecret,
		sessionUseCase.NewSystemClock(),
	)

	store := testutil.SetupStore(t)
	keyDeriver := cryptoService.NewKeyDerivation()
	codec := cryptoService.NewAeadCodec(nil)
	masterSecret := []byte(testSecret)

	return &testEnv{
		sessionUC:  sessionUC,
		passwordUC: vaultUseCase.NewPasswordUseCase(store, keyDeriver, codec, masterSecret, false),
		passkeyUC:  vaultUseCase.NewPasskeyUseCase(store, keyDeriver, codec, masterSecret, false),
		generator:  cryptoService.NewGenerator(nil),
	}
}

func (e *testEnv) authenticate(t *testing.T) {
	t.Helper()
	_, err := e.sessionUC.Auth(context.Background(), testSecret, 5*time.Minute)
	require.NoError(t, err)
}

// bufferIO returns an IOTuple capturing output, optionally feeding input.
func bufferIO(input string) (IOTuple, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return IOTuple{Reader: bytes.NewBufferString(input), Writer: out}, out
}

var testLogger = logging.New("warn")
