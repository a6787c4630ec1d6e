package service

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	cryptoDomain "github.com/allisson/passkeeper/internal/crypto/domain"
	apperrors "github.com/allisson/passkeeper/internal/errors"
)

// KeyDerivationService implements the KeyDeriver interface using HKDF-SHA256.
//
// Every record gets its own symmetric key derived from the master secret with
// the record identifier as salt and a fixed context string as info. Because
// derivation is deterministic, keys are recomputed on demand for every
// encrypt and decrypt and never persisted.
type KeyDerivationService struct{}

// NewKeyDerivation creates a new KeyDerivationService.
func NewKeyDerivation() *KeyDerivationService {
	return &KeyDerivationService{}
}

// DeriveKey computes the 32-byte key for (masterSecret, recordID).
//
// The record identifier doubles as the HKDF salt, which is why identifiers
// must never be reused across distinct records, even after deletion.
// Returns ErrKeyDerivationFailed on an empty master secret or identifier.
func (kd *KeyDerivationService) DeriveKey(masterSecret, recordID []byte) ([]byte, error) {
	if len(masterSecret) == 0 {
		return nil, apperrors.Wrap(cryptoDomain.ErrKeyDerivationFailed, "empty master secret")
	}
	if len(recordID) == 0 {
		return nil, apperrors.Wrap(cryptoDomain.ErrKeyDerivationFailed, "empty record id")
	}

	reader := hkdf.New(sha256.New, masterSecret, recordID, []byte(cryptoDomain.KeyDerivationInfo))

	key := make([]byte, cryptoDomain.KeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, apperrors.Wrap(cryptoDomain.ErrKeyDerivationFailed, err.Error())
	}

	return key, nil
}
