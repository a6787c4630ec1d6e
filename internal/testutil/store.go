// Package testutil provides testing helpers for the record store.
//
// Store Setup:
//
//	store := testutil.SetupStore(t)
//
// The store lives in a per-test temporary directory and is closed
// automatically via t.Cleanup.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	badgerRepository "github.com/allisson/passkeeper/internal/vault/repository/badger"
)

// SetupStore opens a Badger store in a temporary directory and registers its
// cleanup with the test.
func SetupStore(t *testing.T) *badgerRepository.Store {
	t.Helper()

	store, err := badgerRepository.Open(filepath.Join(t.TempDir(), "store"))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}
