// Package repository provides the file-backed session store.
//
// The store holds a single value: the session expiry as unix-epoch seconds.
// Writes go through a temp file plus rename so a concurrent invocation never
// observes a half-written expiry; absence of the file means no session.
package repository

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/allisson/passkeeper/internal/errors"
	sessionDomain "github.com/allisson/passkeeper/internal/session/domain"
)

// FileSessionRepository persists the session at a fixed filesystem location.
type FileSessionRepository struct {
	path string
}

// NewFileSessionRepository creates a repository persisting at path.
func NewFileSessionRepository(path string) *FileSessionRepository {
	return &FileSessionRepository{path: path}
}

// Get reads the persisted session. Returns ErrNotFound when no session file
// exists and ErrInvalidInput when the file content is not an epoch value.
func (r *FileSessionRepository) Get(_ context.Context) (*sessionDomain.Session, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to read session file")
	}

	epoch, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "malformed session file")
	}

	return &sessionDomain.Session{ExpiresAt: time.Unix(epoch, 0)}, nil
}

// Save atomically replaces the persisted session. The content is written to
// a temp file in the same directory first and published with a rename.
func (r *FileSessionRepository) Save(_ context.Context, session *sessionDomain.Session) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return apperrors.Wrap(err, "failed to create session directory")
	}

	tmp, err := os.CreateTemp(dir, "session-*")
	if err != nil {
		return apperrors.Wrap(err, "failed to create session temp file")
	}
	tmpName := tmp.Name()

	content := strconv.FormatInt(session.ExpiresAt.Unix(), 10) + "\n"
	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return apperrors.Wrap(err, "failed to write session temp file")
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return apperrors.Wrap(err, "failed to restrict session file permissions")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return apperrors.Wrap(err, "failed to close session temp file")
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		_ = os.Remove(tmpName)
		return apperrors.Wrap(err, "failed to publish session file")
	}

	return nil
}

// Delete removes the persisted session. Deleting an absent session is not an
// error, which makes logout idempotent.
func (r *FileSessionRepository) Delete(_ context.Context) error {
	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return apperrors.Wrap(err, "failed to delete session file")
	}
	return nil
}
