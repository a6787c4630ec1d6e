// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// AuthSecret is the expected operator secret presented to the auth command.
	// It may hold either the plaintext secret or an Argon2id digest produced by
	// the "secret hash" command. Never logged.
	AuthSecret string

	// MasterSecret is the key-derivation input keying all records at rest.
	// When empty, AuthSecret is used (which requires AuthSecret to be plaintext).
	// Never logged, never persisted.
	MasterSecret string

	// HomeDir is the directory holding the record store and the session file.
	HomeDir string

	// SessionTTL is the default session lifetime applied when auth is invoked
	// without an explicit --ttl flag.
	SessionTTL time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// LegacyDecryptFallback enables the compatibility behavior where a record
	// that fails authenticated decryption is displayed as its raw stored blob
	// instead of surfacing an error. Off by default.
	LegacyDecryptFallback bool
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		AuthSecret:   env.GetString("AUTH_SECRET", ""),
		MasterSecret: env.GetString("MASTER_SECRET", ""),

		HomeDir:    env.GetString("PASSKEEPER_HOME", defaultHomeDir()),
		SessionTTL: env.GetDuration("SESSION_TTL_MINUTES", 5, time.Minute),

		LogLevel: env.GetString("LOG_LEVEL", "warn"),

		LegacyDecryptFallback: env.GetBool("LEGACY_DECRYPT_FALLBACK", false),
	}
}

// DerivationSecret returns the secret used as key-derivation input.
// MasterSecret wins when set; otherwise the plaintext AuthSecret is used.
func (c *Config) DerivationSecret() []byte {
	if c.MasterSecret != "" {
		return []byte(c.MasterSecret)
	}
	return []byte(c.AuthSecret)
}

// StorePath returns the directory of the record store.
func (c *Config) StorePath() string {
	return filepath.Join(c.HomeDir, "store")
}

// SessionPath returns the location of the session file.
func (c *Config) SessionPath() string {
	return filepath.Join(c.HomeDir, "session")
}

// defaultHomeDir resolves the per-user data directory.
func defaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".passkeeper"
	}
	return filepath.Join(home, ".passkeeper")
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached the root directory
			return
		}
		dir = parent
	}
}
