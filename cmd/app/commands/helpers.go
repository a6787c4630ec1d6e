// Package commands contains CLI command implementations for the application.
package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// promptSecret asks for the operator secret on the configured reader. Used
// when the secret was not passed as a flag.
func promptSecret(ioTuple IOTuple) (string, error) {
	fmt.Fprint(ioTuple.Writer, "Secret: ")

	scanner := bufio.NewScanner(ioTuple.Reader)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}

	return strings.TrimSpace(scanner.Text()), nil
}

// openInput resolves path to a reader. "-" selects the configured reader.
func openInput(path string, ioTuple IOTuple) (io.Reader, func() error, error) {
	if path == "-" {
		return ioTuple.Reader, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// openOutput resolves path to a writer. "-" selects the configured writer.
// Files are created with owner-only permissions since exports carry
// plaintext secrets.
func openOutput(path string, ioTuple IOTuple) (io.Writer, func() error, error) {
	if path == "-" {
		return ioTuple.Writer, func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
