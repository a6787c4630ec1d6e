// Package app provides the dependency injection container assembling the
// application components.
package app

import (
	"sync"

	"github.com/sirupsen/logrus"

	authService "github.com/allisson/passkeeper/internal/auth/service"
	"github.com/allisson/passkeeper/internal/config"
	cryptoService "github.com/allisson/passkeeper/internal/crypto/service"
	"github.com/allisson/passkeeper/internal/logging"
	sessionRepository "github.com/allisson/passkeeper/internal/session/repository"
	sessionUseCase "github.com/allisson/passkeeper/internal/session/usecase"
	badgerRepository "github.com/allisson/passkeeper/internal/vault/repository/badger"
	vaultUseCase "github.com/allisson/passkeeper/internal/vault/usecase"
)

// Container holds all application dependencies and provides methods to
// access them. Components are created lazily on first access, so commands
// that never touch the record store never open it.
type Container struct {
	config *config.Config

	logger *logrus.Logger
	store  *badgerRepository.Store

	secretService *authService.SecretService
	generator     cryptoService.Generator
	keyDeriver    cryptoService.KeyDeriver
	codec         cryptoService.Codec

	sessionUseCase  sessionUseCase.SessionUseCase
	passwordUseCase vaultUseCase.PasswordUseCase
	passkeyUseCase  vaultUseCase.PasskeyUseCase

	loggerInit          sync.Once
	storeInit           sync.Once
	secretServiceInit   sync.Once
	generatorInit       sync.Once
	keyDeriverInit      sync.Once
	codecInit           sync.Once
	sessionUseCaseInit  sync.Once
	passwordUseCaseInit sync.Once
	passkeyUseCaseInit  sync.Once
	storeErr            error
}

// NewContainer creates a new dependency injection container with the
// provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{config: cfg}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *logrus.Logger {
	c.loggerInit.Do(func() {
		c.logger = logging.New(c.config.LogLevel)
	})
	return c.logger
}

// SecretService returns the secret hashing and verification service.
func (c *Container) SecretService() *authService.SecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = authService.NewSecretService()
	})
	return c.secretService
}

// Generator returns the password generation service.
func (c *Container) Generator() cryptoService.Generator {
	c.generatorInit.Do(func() {
		c.generator = cryptoService.NewGenerator(nil)
	})
	return c.generator
}

// KeyDeriver returns the per-record key derivation service.
func (c *Container) KeyDeriver() cryptoService.KeyDeriver {
	c.keyDeriverInit.Do(func() {
		c.keyDeriver = cryptoService.NewKeyDerivation()
	})
	return c.keyDeriver
}

// Codec returns the authenticated encryption codec.
func (c *Container) Codec() cryptoService.Codec {
	c.codecInit.Do(func() {
		c.codec = cryptoService.NewAeadCodec(nil)
	})
	return c.codec
}

// SessionUseCase returns the session lifecycle use case.
func (c *Container) SessionUseCase() sessionUseCase.SessionUseCase {
	c.sessionUseCaseInit.Do(func() {
		c.sessionUseCase = sessionUseCase.NewSessionUseCase(
			sessionRepository.NewFileSessionRepository(c.config.SessionPath()),
			c.SecretService(),
			c.config.AuthSecret,
			sessionUseCase.NewSystemClock(),
		)
	})
	return c.sessionUseCase
}

// Store returns the record store, opening it on first access.
func (c *Container) Store() (*badgerRepository.Store, error) {
	c.storeInit.Do(func() {
		c.store, c.storeErr = badgerRepository.Open(c.config.StorePath())
	})
	return c.store, c.storeErr
}

// PasswordUseCase returns the password record use case.
func (c *Container) PasswordUseCase() (vaultUseCase.PasswordUseCase, error) {
	var err error
	c.passwordUseCaseInit.Do(func() {
		var store *badgerRepository.Store
		store, err = c.Store()
		if err != nil {
			return
		}
		c.passwordUseCase = vaultUseCase.NewPasswordUseCase(
			store,
			c.KeyDeriver(),
			c.Codec(),
			c.config.DerivationSecret(),
			c.config.LegacyDecryptFallback,
		)
	})
	if err != nil {
		return nil, err
	}
	if c.passwordUseCase == nil {
		return nil, c.storeErr
	}
	return c.passwordUseCase, nil
}

// PasskeyUseCase returns the passkey record use case.
func (c *Container) PasskeyUseCase() (vaultUseCase.PasskeyUseCase, error) {
	var err error
	c.passkeyUseCaseInit.Do(func() {
		var store *badgerRepository.Store
		store, err = c.Store()
		if err != nil {
			return
		}
		c.passkeyUseCase = vaultUseCase.NewPasskeyUseCase(
			store,
			c.KeyDeriver(),
			c.Codec(),
			c.config.DerivationSecret(),
			c.config.LegacyDecryptFallback,
		)
	})
	if err != nil {
		return nil, err
	}
	if c.passkeyUseCase == nil {
		return nil, c.storeErr
	}
	return c.passkeyUseCase, nil
}

// Close releases the resources held by the container. Safe to call when the
// store was never opened.
func (c *Container) Close() error {
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}
