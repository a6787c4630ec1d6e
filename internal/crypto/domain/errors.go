package domain

import (
	"github.com/allisson/passkeeper/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures. The CLI layer maps them
// to user-facing messages and a non-zero exit code.
var (
	// ErrInvalidKeySize indicates a key that is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidLength indicates a negative password length was requested.
	ErrInvalidLength = errors.Wrap(errors.ErrInvalidInput, "invalid password length")

	// ErrKeyDerivationFailed indicates malformed key-derivation inputs,
	// such as an empty record identifier or an empty master secret.
	ErrKeyDerivationFailed = errors.Wrap(errors.ErrInvalidInput, "key derivation failed")

	// ErrEncryptionFailed indicates a seal operation failed, which in normal
	// operation only happens when the random source is exhausted.
	ErrEncryptionFailed = errors.Wrap(errors.ErrInvalidInput, "encryption failed")

	// ErrDecryptionFailed indicates an open operation failed.
	//
	// This error can occur due to:
	//   - Wrong decryption key used
	//   - Ciphertext has been tampered with (authentication failure)
	//   - Structurally malformed or truncated blob
	//
	// For security reasons, the specific cause is not disclosed to prevent
	// information leakage that could aid attackers.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")
)
