package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoService "github.com/allisson/passkeeper/internal/crypto/service"
	apperrors "github.com/allisson/passkeeper/internal/errors"
)

func TestRunGenerate(t *testing.T) {
	generator := cryptoService.NewGenerator(nil)

	t.Run("prints a password of the requested length", func(t *testing.T) {
		ioTuple, out := bufferIO("")

		require.NoError(t, RunGenerate(generator, 20, ioTuple))
		assert.Len(t, strings.TrimSpace(out.String()), 20)
	})

	t.Run("works without any session", func(t *testing.T) {
		ioTuple, _ := bufferIO("")
		assert.NoError(t, RunGenerate(generator, 8, ioTuple))
	})

	t.Run("negative length is rejected", func(t *testing.T) {
		ioTuple, _ := bufferIO("")
		err := RunGenerate(generator, -1, ioTuple)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}
