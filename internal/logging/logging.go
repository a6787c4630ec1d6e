// Package logging provides logger construction for the application.
//
// Secret material (operator secrets, derived keys, nonces, generated
// passwords) must never reach a log entry at any level.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a logrus logger configured with the given level.
// Unknown levels fall back to warn so a misconfigured environment
// never silences errors nor floods stderr with debug output.
func New(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.WarnLevel
	}
	logger.SetLevel(parsed)

	return logger
}
