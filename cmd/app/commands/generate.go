package commands

import (
	"fmt"

	cryptoService "github.com/allisson/passkeeper/internal/crypto/service"
)

// RunGenerate prints a freshly generated password of the requested length.
// Generation is not gated on an active session.
func RunGenerate(generator cryptoService.Generator, length int, ioTuple IOTuple) error {
	password, err := generator.Generate(length)
	if err != nil {
		return err
	}

	fmt.Fprintln(ioTuple.Writer, password)
	return nil
}
