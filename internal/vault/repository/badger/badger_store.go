// Package badger provides the Badger-backed blob store used as the
// persistence collaborator. The store treats blobs as opaque byte strings
// keyed by record identifier; it applies no interpretation and no encryption
// of its own.
package badger

import (
	"context"
	"errors"

	badgerdb "github.com/dgraph-io/badger/v4"

	apperrors "github.com/allisson/passkeeper/internal/errors"
)

// Store is a Badger-backed opaque blob store. Namespaces partition one
// database between record kinds; the store itself attaches no meaning to
// them beyond key prefixing.
type Store struct {
	db *badgerdb.DB
}

// Open opens (or creates) the store at path. The caller owns the store and
// must Close it before process exit.
func Open(path string) (*Store, error) {
	opts := badgerdb.DefaultOptions(path)
	opts.Logger = nil

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open record store")
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores blob under (namespace, id), overwriting any previous value.
func (s *Store) Put(_ context.Context, namespace, id string, blob []byte) error {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		return txn.Set(storeKey(namespace, id), blob)
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to store record")
	}
	return nil
}

// Get returns the blob stored under (namespace, id).
// Returns ErrNotFound when no such record exists.
func (s *Store) Get(_ context.Context, namespace, id string) ([]byte, error) {
	var blob []byte
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(storeKey(namespace, id))
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to read record")
	}
	return blob, nil
}

// Delete removes the blob stored under (namespace, id).
// Returns ErrNotFound when no such record exists.
func (s *Store) Delete(_ context.Context, namespace, id string) error {
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		key := storeKey(namespace, id)
		if _, err := txn.Get(key); err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if err != nil {
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return apperrors.ErrNotFound
		}
		return apperrors.Wrap(err, "failed to delete record")
	}
	return nil
}

// ForEach calls fn for every blob stored in namespace. The blob passed to fn
// is a copy the callback may retain. Iteration stops at the first error fn
// returns.
func (s *Store) ForEach(
	_ context.Context,
	namespace string,
	fn func(id string, blob []byte) error,
) error {
	prefix := storeKey(namespace, "")

	err := s.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			id := string(item.Key()[len(prefix):])
			blob, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(id, blob); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.Wrap(err, "failed to scan records")
	}

	return nil
}

func storeKey(namespace, id string) []byte {
	return []byte(namespace + ":" + id)
}
