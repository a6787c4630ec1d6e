package domain

// KeySize is the symmetric key size in bytes used by key derivation and the
// AEAD codec. Both HKDF-SHA256 output and ChaCha20-Poly1305 keys are 256 bits.
const KeySize = 32

// NonceSize is the ChaCha20-Poly1305 nonce size in bytes. One fresh random
// nonce is drawn per seal; it is stored as the blob prefix.
const NonceSize = 12

// TagSize is the Poly1305 authentication tag size in bytes, appended to the
// ciphertext by the AEAD seal.
const TagSize = 16

// KeyDerivationInfo is the fixed HKDF context string binding derived keys to
// their purpose. Changing it invalidates every stored blob.
const KeyDerivationInfo = "password-at-rest"

// Password character categories. The four sets are disjoint and together form
// the generation universe. The symbol set excludes whitespace, backslash and
// both quote characters so generated passwords stay safely embeddable in
// shells and CSV files.
const (
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Digits    = "0123456789"
	Symbols   = "!@#$%^&*()-_=+[]{};:,.?/"
)

// Categories lists the character categories in the fixed order used to
// guarantee coverage. When the requested length is smaller than the category
// count, categories fill in this order up to the requested length.
var Categories = []string{Uppercase, Lowercase, Digits, Symbols}

// Universe is the full generation alphabet, the concatenation of all
// categories.
const Universe = Uppercase + Lowercase + Digits + Symbols
