package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "", cfg.AuthSecret)
				assert.Equal(t, "", cfg.MasterSecret)
				assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
				assert.Equal(t, "warn", cfg.LogLevel)
				assert.False(t, cfg.LegacyDecryptFallback)
				assert.NotEmpty(t, cfg.HomeDir)
			},
		},
		{
			name: "load custom session configuration",
			envVars: map[string]string{
				"AUTH_SECRET":         "s3cret",
				"SESSION_TTL_MINUTES": "30",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "s3cret", cfg.AuthSecret)
				assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
			},
		},
		{
			name: "load custom home directory",
			envVars: map[string]string{
				"PASSKEEPER_HOME": "/tmp/keeper-home",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/tmp/keeper-home", cfg.HomeDir)
				assert.Equal(t, filepath.Join("/tmp/keeper-home", "store"), cfg.StorePath())
				assert.Equal(t, filepath.Join("/tmp/keeper-home", "session"), cfg.SessionPath())
			},
		},
		{
			name: "load legacy decrypt fallback",
			envVars: map[string]string{
				"LEGACY_DECRYPT_FALLBACK": "true",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.LegacyDecryptFallback)
			},
		},
		{
			name: "load custom log level",
			envVars: map[string]string{
				"LOG_LEVEL": "debug",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.LogLevel)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.envVars {
				t.Setenv(key, value)
			}
			cfg := Load()
			tt.validate(t, cfg)
		})
	}
}

func TestDerivationSecret(t *testing.T) {
	t.Run("auth secret doubles as derivation input", func(t *testing.T) {
		cfg := &Config{AuthSecret: "plain-secret"}
		assert.Equal(t, []byte("plain-secret"), cfg.DerivationSecret())
	})

	t.Run("master secret wins when set", func(t *testing.T) {
		cfg := &Config{AuthSecret: "$argon2id$v=19$...", MasterSecret: "ikm"}
		assert.Equal(t, []byte("ikm"), cfg.DerivationSecret())
	})
}
