// Package service provides verification and hashing for the operator secret.
// Supports plaintext comparison in constant time and Argon2id digests so the
// expected secret does not have to sit in the environment in clear.
package service

import (
	"crypto/subtle"
	"strings"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/passkeeper/internal/errors"
)

// argonPrefix marks configured secrets that hold an Argon2id digest instead
// of the plaintext secret.
const argonPrefix = "$argon2id$"

// SecretService verifies a presented secret against the configured one.
type SecretService struct {
	hasher *pwdhash.PasswordHasher
}

// NewSecretService creates a new SecretService using Argon2id hashing.
// Uses the Moderate policy for a balance between security and performance.
func NewSecretService() *SecretService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &SecretService{
		hasher: hasher,
	}
}

// HashSecret hashes a plain text secret using Argon2id. The digest can be
// used as the AUTH_SECRET value in place of the plaintext secret.
func (s *SecretService) HashSecret(plainSecret string) (string, error) {
	hashedSecret, err := s.hasher.Hash([]byte(plainSecret))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash secret")
	}
	return hashedSecret, nil
}

// Verify compares a presented secret against the expected configured value.
//
// When the expected value is an Argon2id digest, verification runs through
// the hasher; otherwise both values are compared in constant time so the
// comparison leaks nothing about the position of the first mismatch.
// An empty expected value never verifies.
func (s *SecretService) Verify(presentedSecret, expectedSecret string) bool {
	if expectedSecret == "" {
		return false
	}

	if strings.HasPrefix(expectedSecret, argonPrefix) {
		ok, err := s.hasher.Verify([]byte(presentedSecret), expectedSecret)
		if err != nil {
			return false
		}
		return ok
	}

	return subtle.ConstantTimeCompare([]byte(presentedSecret), []byte(expectedSecret)) == 1
}
