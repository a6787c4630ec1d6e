// Package service provides the cryptographic services of the application:
// password generation, per-record key derivation and the authenticated
// encryption codec used for storage at rest.
package service

// Generator defines the interface for secure password generation.
type Generator interface {
	// Generate produces a password of exactly length characters drawn from
	// the fixed generation universe. A zero length yields the empty string.
	Generate(length int) (string, error)
}

// KeyDeriver defines the interface for per-record key derivation.
type KeyDeriver interface {
	// DeriveKey computes the 32-byte symmetric key for a record from the
	// master secret and the record identifier. Deterministic: identical
	// inputs always reproduce the identical key.
	DeriveKey(masterSecret, recordID []byte) ([]byte, error)
}

// Codec defines the interface for sealing plaintext into self-contained
// storable blobs and opening them again.
type Codec interface {
	// Seal encrypts plaintext under key and returns a text-encoded blob
	// holding nonce, ciphertext and authentication tag.
	Seal(key, plaintext []byte) (string, error)

	// Open decodes and authenticates a blob produced by Seal. Any tag
	// mismatch, wrong key or structurally malformed blob fails the
	// operation; it never returns fabricated plaintext.
	Open(key []byte, blob string) ([]byte, error)
}
