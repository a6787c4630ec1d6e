package usecase

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/passkeeper/internal/crypto/domain"
	cryptoService "github.com/allisson/passkeeper/internal/crypto/service"
	apperrors "github.com/allisson/passkeeper/internal/errors"
	vaultDomain "github.com/allisson/passkeeper/internal/vault/domain"
)

// passwordCSVHeader is the column layout of password exports and imports.
var passwordCSVHeader = []string{"url", "username", "password", "title", "note"}

// passwordUseCase implements PasswordUseCase.
type passwordUseCase struct {
	store          BlobStore
	keyDeriver     cryptoService.KeyDeriver
	codec          cryptoService.Codec
	masterSecret   []byte
	legacyFallback bool
}

// NewPasswordUseCase creates a new PasswordUseCase. When legacyFallback is
// true, blobs that fail authenticated decryption are returned verbatim
// instead of failing the read; this supports stores written before
// encryption at rest existed.
func NewPasswordUseCase(
	store BlobStore,
	keyDeriver cryptoService.KeyDeriver,
	codec cryptoService.Codec,
	masterSecret []byte,
	legacyFallback bool,
) PasswordUseCase {
	return &passwordUseCase{
		store:          store,
		keyDeriver:     keyDeriver,
		codec:          codec,
		masterSecret:   masterSecret,
		legacyFallback: legacyFallback,
	}
}

// Add validates input, seals the password under a key derived from the new
// record identifier and persists the record. The returned record carries the
// sealed password, never the plaintext.
func (p *passwordUseCase) Add(ctx context.Context, input PasswordInput) (*vaultDomain.PasswordRecord, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	id := uuid.Must(uuid.NewV7()).String()
	sealed, err := p.seal(id, []byte(input.Password))
	if err != nil {
		return nil, err
	}

	record := &vaultDomain.PasswordRecord{
		ID:        id,
		URL:       input.URL,
		Username:  input.Username,
		Password:  sealed,
		Title:     input.Title,
		Note:      input.Note,
		CreatedAt: time.Now().UTC(),
	}

	if err := p.save(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// GetByURL returns all records stored for url, newest first, with passwords
// decrypted.
func (p *passwordUseCase) GetByURL(ctx context.Context, url string) ([]*vaultDomain.PasswordRecord, error) {
	if strings.TrimSpace(url) == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "url is required")
	}

	records, err := p.list(ctx, func(r *vaultDomain.PasswordRecord) bool {
		return r.URL == url
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, vaultDomain.ErrRecordNotFound
	}

	for _, record := range records {
		plaintext, err := p.open(record.ID, record.Password)
		if err != nil {
			return nil, err
		}
		record.Password = plaintext
	}

	return records, nil
}

// Search returns all records matching keyword over the non-secret fields,
// newest first. The password field is cleared on every result.
func (p *passwordUseCase) Search(ctx context.Context, keyword string) ([]*vaultDomain.PasswordRecord, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "search keyword is required")
	}

	records, err := p.list(ctx, func(r *vaultDomain.PasswordRecord) bool {
		return r.Matches(keyword)
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, vaultDomain.ErrRecordNotFound
	}

	for _, record := range records {
		record.Password = ""
	}

	return records, nil
}

// Update applies a partial update to the record identified by id. A new
// password is re-sealed under the record's existing identifier, so the
// derived key stays stable across updates.
func (p *passwordUseCase) Update(
	ctx context.Context,
	id string,
	update vaultDomain.PasswordUpdate,
) (*vaultDomain.PasswordRecord, error) {
	if update.IsEmpty() {
		return nil, vaultDomain.ErrNoFieldsToUpdate
	}

	blob, err := p.store.Get(ctx, NamespacePassword, id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, vaultDomain.ErrRecordNotFound
		}
		return nil, err
	}

	var record vaultDomain.PasswordRecord
	if err := json.Unmarshal(blob, &record); err != nil {
		return nil, apperrors.Wrapf(err, "failed to decode record %q", id)
	}

	if update.Password != nil {
		sealed, err := p.seal(record.ID, []byte(*update.Password))
		if err != nil {
			return nil, err
		}
		update.Password = &sealed
	}
	update.Apply(&record)

	if err := p.save(ctx, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

// Delete removes the record identified by id.
func (p *passwordUseCase) Delete(ctx context.Context, id string) error {
	if err := p.store.Delete(ctx, NamespacePassword, id); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return vaultDomain.ErrRecordNotFound
		}
		return err
	}
	return nil
}

// ExportCSV writes every password record to w as CSV with decrypted
// passwords and returns the number of exported records.
func (p *passwordUseCase) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	records, err := p.list(ctx, nil)
	if err != nil {
		return 0, err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(passwordCSVHeader); err != nil {
		return 0, apperrors.Wrap(err, "failed to write CSV")
	}

	for _, record := range records {
		plaintext, err := p.open(record.ID, record.Password)
		if err != nil {
			return 0, err
		}
		row := []string{record.URL, record.Username, plaintext, record.Title, record.Note}
		if err := writer.Write(row); err != nil {
			return 0, apperrors.Wrap(err, "failed to write CSV")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, apperrors.Wrap(err, "failed to write CSV")
	}

	return len(records), nil
}

// ImportCSV reads password records from r in the export format. Each row
// becomes a fresh record with a new identifier and a newly sealed password.
// Returns the number of imported records.
func (p *passwordUseCase) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(passwordCSVHeader)

	header, err := reader.Read()
	if err == io.EOF {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read CSV")
	}
	if !equalFields(header, passwordCSVHeader) {
		return 0, apperrors.Wrapf(apperrors.ErrInvalidInput, "unexpected CSV header %q", strings.Join(header, ","))
	}

	count := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, apperrors.Wrap(err, "failed to read CSV")
		}

		input := PasswordInput{
			URL:      row[0],
			Username: row[1],
			Password: row[2],
			Title:    row[3],
			Note:     row[4],
		}
		if _, err := p.Add(ctx, input); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

func (p *passwordUseCase) save(ctx context.Context, record *vaultDomain.PasswordRecord) error {
	blob, err := json.Marshal(record)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode record")
	}
	return p.store.Put(ctx, NamespacePassword, record.ID, blob)
}

func (p *passwordUseCase) list(
	ctx context.Context,
	keep func(*vaultDomain.PasswordRecord) bool,
) ([]*vaultDomain.PasswordRecord, error) {
	var records []*vaultDomain.PasswordRecord
	err := p.store.ForEach(ctx, NamespacePassword, func(id string, blob []byte) error {
		var record vaultDomain.PasswordRecord
		if err := json.Unmarshal(blob, &record); err != nil {
			return apperrors.Wrapf(err, "failed to decode record %q", id)
		}
		if keep == nil || keep(&record) {
			records = append(records, &record)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sortNewestFirst(records, func(r *vaultDomain.PasswordRecord) (time.Time, string) {
		return r.CreatedAt, r.ID
	})

	return records, nil
}

func (p *passwordUseCase) seal(recordID string, plaintext []byte) (string, error) {
	key, err := p.keyDeriver.DeriveKey(p.masterSecret, []byte(recordID))
	if err != nil {
		return "", err
	}
	defer cryptoDomain.Zero(key)

	return p.codec.Seal(key, plaintext)
}

func (p *passwordUseCase) open(recordID, blob string) (string, error) {
	key, err := p.keyDeriver.DeriveKey(p.masterSecret, []byte(recordID))
	if err != nil {
		return "", err
	}
	defer cryptoDomain.Zero(key)

	plaintext, err := p.codec.Open(key, blob)
	if err != nil {
		if p.legacyFallback && apperrors.Is(err, cryptoDomain.ErrDecryptionFailed) {
			return blob, nil
		}
		return "", err
	}

	return string(plaintext), nil
}

// sortNewestFirst orders records by creation time descending, breaking ties
// on the identifier so the order is stable across runs.
func sortNewestFirst[T any](records []T, key func(T) (time.Time, string)) {
	sort.Slice(records, func(i, j int) bool {
		ti, idi := key(records[i])
		tj, idj := key(records[j])
		if ti.Equal(tj) {
			return idi > idj
		}
		return ti.After(tj)
	})
}

func equalFields(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
