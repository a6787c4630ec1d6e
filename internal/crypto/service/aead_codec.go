package service

import (
	"crypto/rand"
	"encoding/base64"
	"io"

	"golang.org/x/crypto/chacha20poly1305"

	cryptoDomain "github.com/allisson/passkeeper/internal/crypto/domain"
	apperrors "github.com/allisson/passkeeper/internal/errors"
)

// AeadCodecService implements the Codec interface using ChaCha20-Poly1305.
//
// ChaCha20-Poly1305 combines the ChaCha20 stream cipher with the Poly1305 MAC
// for authentication, providing confidentiality and tamper detection jointly.
// Blobs are self-contained: nonce, ciphertext and tag concatenated and
// base64-encoded, so the persistence layer can treat them as opaque text.
type AeadCodecService struct {
	random io.Reader
}

// NewAeadCodec creates an AeadCodecService drawing nonces from source.
// Passing nil selects the operating system CSPRNG (crypto/rand.Reader).
func NewAeadCodec(source io.Reader) *AeadCodecService {
	if source == nil {
		source = rand.Reader
	}
	return &AeadCodecService{random: source}
}

// Seal encrypts plaintext under key and returns the encoded blob.
//
// A fresh random 12-byte nonce is drawn for every call. Nonce reuse under the
// same key breaks both confidentiality and authenticity, which is why the
// nonce is never derived from the plaintext or a counter.
func (c *AeadCodecService) Seal(key, plaintext []byte) (string, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return "", cryptoDomain.ErrInvalidKeySize
	}

	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := io.ReadFull(c.random, nonce); err != nil {
		return "", apperrors.Wrap(cryptoDomain.ErrEncryptionFailed, err.Error())
	}

	// Appending to the nonce slice yields nonce||ciphertext||tag in one buffer.
	sealed := aead.Seal(nonce, nonce, plaintext, nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decodes blob, splits it at fixed offsets and runs the authenticated
// open. Returns ErrDecryptionFailed on any tag mismatch, wrong key or
// structurally malformed input.
func (c *AeadCodecService) Open(key []byte, blob string) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	if len(raw) < cryptoDomain.NonceSize+cryptoDomain.TagSize {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	nonce, ciphertext := raw[:cryptoDomain.NonceSize], raw[cryptoDomain.NonceSize:]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	return plaintext, nil
}
