package service

import (
	"crypto/rand"
	"io"

	cryptoDomain "github.com/allisson/passkeeper/internal/crypto/domain"
	apperrors "github.com/allisson/passkeeper/internal/errors"
)

// GeneratorService implements the Generator interface.
//
// Passwords are assembled in three steps: one character from each category in
// fixed order (as far as the requested length allows), uniform draws from the
// full universe for the remaining positions, and a final Fisher-Yates shuffle
// so the guaranteed category characters are not predictably positioned.
//
// All random draws go through rejection sampling over raw bytes from the
// configured source, so no index is biased by a non-power-of-two range.
type GeneratorService struct {
	random io.Reader
}

// NewGenerator creates a GeneratorService reading randomness from source.
// Passing nil selects the operating system CSPRNG (crypto/rand.Reader),
// which is the only appropriate source outside of tests.
func NewGenerator(source io.Reader) *GeneratorService {
	if source == nil {
		source = rand.Reader
	}
	return &GeneratorService{random: source}
}

// Generate produces a password of exactly length characters.
//
// The output contains at least one character from each of the four categories
// whenever length allows it; below four characters the categories fill in
// their fixed order up to length. Generated passwords are never logged.
func (g *GeneratorService) Generate(length int) (string, error) {
	if length < 0 {
		return "", cryptoDomain.ErrInvalidLength
	}
	if length == 0 {
		return "", nil
	}

	password := make([]byte, 0, length)

	// One character per category, never exceeding the requested length.
	for _, category := range cryptoDomain.Categories {
		if len(password) >= length {
			break
		}
		idx, err := g.randomIndex(len(category))
		if err != nil {
			return "", err
		}
		password = append(password, category[idx])
	}

	// Remaining positions come uniformly from the full universe.
	for len(password) < length {
		idx, err := g.randomIndex(len(cryptoDomain.Universe))
		if err != nil {
			return "", err
		}
		password = append(password, cryptoDomain.Universe[idx])
	}

	if err := g.shuffle(password); err != nil {
		return "", err
	}

	return string(password), nil
}

// randomIndex returns a uniform index in [0, n) using rejection sampling:
// raw bytes whose value falls into the biased tail of the modulo range are
// discarded and redrawn.
func (g *GeneratorService) randomIndex(n int) (int, error) {
	if n <= 1 {
		return 0, nil
	}

	// Largest multiple of n representable in one byte; values at or above
	// it would skew the modulo result toward small indexes.
	zone := 256 - (256 % n)

	var buf [1]byte
	for {
		if _, err := io.ReadFull(g.random, buf[:]); err != nil {
			return 0, apperrors.Wrap(err, "failed to read random source")
		}
		if v := int(buf[0]); v < zone {
			return v % n, nil
		}
	}
}

// shuffle performs an unbiased Fisher-Yates shuffle driven by the same
// random source as the draws.
func (g *GeneratorService) shuffle(data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := g.randomIndex(i + 1)
		if err != nil {
			return err
		}
		data[i], data[j] = data[j], data[i]
	}
	return nil
}
