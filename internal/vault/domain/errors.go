package domain

import (
	"github.com/allisson/passkeeper/internal/errors"
)

// Vault-specific error definitions.
var (
	// ErrRecordNotFound indicates no record exists for the given identifier
	// or lookup criteria.
	ErrRecordNotFound = errors.Wrap(errors.ErrNotFound, "record not found")

	// ErrNoFieldsToUpdate indicates an update carried no fields at all.
	ErrNoFieldsToUpdate = errors.Wrap(errors.ErrInvalidInput, "no fields to update")
)
