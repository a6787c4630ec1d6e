package usecase

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/passkeeper/internal/crypto/domain"
	cryptoService "github.com/allisson/passkeeper/internal/crypto/service"
	apperrors "github.com/allisson/passkeeper/internal/errors"
	vaultDomain "github.com/allisson/passkeeper/internal/vault/domain"
)

// passkeyCSVHeader is the column layout of passkey exports and imports.
// Transports are comma-joined inside the single transports column.
var passkeyCSVHeader = []string{"rp_id", "credential_id", "user_handle", "public_key", "sign_count", "transports"}

// passkeyUseCase implements PasskeyUseCase.
type passkeyUseCase struct {
	store          BlobStore
	keyDeriver     cryptoService.KeyDeriver
	codec          cryptoService.Codec
	masterSecret   []byte
	legacyFallback bool
}

// NewPasskeyUseCase creates a new PasskeyUseCase. legacyFallback behaves as
// documented on NewPasswordUseCase.
func NewPasskeyUseCase(
	store BlobStore,
	keyDeriver cryptoService.KeyDeriver,
	codec cryptoService.Codec,
	masterSecret []byte,
	legacyFallback bool,
) PasskeyUseCase {
	return &passkeyUseCase{
		store:          store,
		keyDeriver:     keyDeriver,
		codec:          codec,
		masterSecret:   masterSecret,
		legacyFallback: legacyFallback,
	}
}

// Add validates input, seals the public key under a key derived from the new
// record identifier and persists the record. The returned record carries the
// sealed public key.
func (p *passkeyUseCase) Add(ctx context.Context, input PasskeyInput) (*vaultDomain.PasskeyRecord, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	id := uuid.Must(uuid.NewV7()).String()
	sealed, err := p.seal(id, []byte(input.PublicKey))
	if err != nil {
		return nil, err
	}

	record := &vaultDomain.PasskeyRecord{
		ID:           id,
		RpID:         input.RpID,
		CredentialID: input.CredentialID,
		UserHandle:   input.UserHandle,
		PublicKey:    sealed,
		SignCount:    input.SignCount,
		Transports:   input.Transports,
		CreatedAt:    time.Now().UTC(),
	}

	if err := p.save(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// Get returns all records for rpID, newest first, with public keys
// decrypted. A non-empty userHandle narrows the result to that user.
func (p *passkeyUseCase) Get(ctx context.Context, rpID, userHandle string) ([]*vaultDomain.PasskeyRecord, error) {
	if strings.TrimSpace(rpID) == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "rp_id is required")
	}

	records, err := p.list(ctx, func(r *vaultDomain.PasskeyRecord) bool {
		if r.RpID != rpID {
			return false
		}
		return userHandle == "" || r.UserHandle == userHandle
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, vaultDomain.ErrRecordNotFound
	}

	for _, record := range records {
		plaintext, err := p.open(record.ID, record.PublicKey)
		if err != nil {
			return nil, err
		}
		record.PublicKey = plaintext
	}

	return records, nil
}

// Search returns all records matching keyword over the non-secret fields,
// newest first. The public key field is cleared on every result.
func (p *passkeyUseCase) Search(ctx context.Context, keyword string) ([]*vaultDomain.PasskeyRecord, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "search keyword is required")
	}

	records, err := p.list(ctx, func(r *vaultDomain.PasskeyRecord) bool {
		return r.Matches(keyword)
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, vaultDomain.ErrRecordNotFound
	}

	for _, record := range records {
		record.PublicKey = ""
	}

	return records, nil
}

// Update applies a partial update to the record identified by id. A new
// public key is re-sealed under the record's existing identifier.
func (p *passkeyUseCase) Update(
	ctx context.Context,
	id string,
	update vaultDomain.PasskeyUpdate,
) (*vaultDomain.PasskeyRecord, error) {
	if update.IsEmpty() {
		return nil, vaultDomain.ErrNoFieldsToUpdate
	}

	blob, err := p.store.Get(ctx, NamespacePasskey, id)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, vaultDomain.ErrRecordNotFound
		}
		return nil, err
	}

	var record vaultDomain.PasskeyRecord
	if err := json.Unmarshal(blob, &record); err != nil {
		return nil, apperrors.Wrapf(err, "failed to decode record %q", id)
	}

	if update.PublicKey != nil {
		sealed, err := p.seal(record.ID, []byte(*update.PublicKey))
		if err != nil {
			return nil, err
		}
		update.PublicKey = &sealed
	}
	update.Apply(&record)

	if err := p.save(ctx, &record); err != nil {
		return nil, err
	}

	return &record, nil
}

// Delete removes the record identified by id.
func (p *passkeyUseCase) Delete(ctx context.Context, id string) error {
	if err := p.store.Delete(ctx, NamespacePasskey, id); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return vaultDomain.ErrRecordNotFound
		}
		return err
	}
	return nil
}

// ExportCSV writes every passkey record to w as CSV with decrypted public
// keys and returns the number of exported records.
func (p *passkeyUseCase) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	records, err := p.list(ctx, nil)
	if err != nil {
		return 0, err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(passkeyCSVHeader); err != nil {
		return 0, apperrors.Wrap(err, "failed to write CSV")
	}

	for _, record := range records {
		plaintext, err := p.open(record.ID, record.PublicKey)
		if err != nil {
			return 0, err
		}
		row := []string{
			record.RpID,
			record.CredentialID,
			record.UserHandle,
			plaintext,
			strconv.FormatUint(uint64(record.SignCount), 10),
			strings.Join(record.Transports, ","),
		}
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

// ImportCSV reads passkey records from r in the export format. Each row
// becomes a fresh record with a new identifier and a newly sealed public
// key. Returns the number of imported records.
func (p *passkeyUseCase) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(passkeyCSVHeader)

	header, err := reader.Read()
	if err == io.EOF {
		return 0, nil
	}
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read CSV")
	}
	if !equalFields(header, passkeyCSVHeader) {
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

		signCount, err := strconv.ParseUint(row[4], 10, 32)
		if err != nil {
			return count, apperrors.Wrapf(apperrors.ErrInvalidInput, "invalid sign_count %q", row[4])
		}

		input := PasskeyInput{
			RpID:         row[0],
			CredentialID: row[1],
			UserHandle:   row[2],
			PublicKey:    row[3],
			SignCount:    uint32(signCount),
			Transports:   splitTransports(row[5]),
		}
		if _, err := p.Add(ctx, input); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

func (p *passkeyUseCase) save(ctx context.Context, record *vaultDomain.PasskeyRecord) error {
	blob, err := json.Marshal(record)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode record")
	}
	return p.store.Put(ctx, NamespacePasskey, record.ID, blob)
}

func (p *passkeyUseCase) list(
	ctx context.Context,
	keep func(*vaultDomain.PasskeyRecord) bool,
) ([]*vaultDomain.PasskeyRecord, error) {
	var records []*vaultDomain.PasskeyRecord
	err := p.store.ForEach(ctx, NamespacePasskey, func(id string, blob []byte) error {
		var record vaultDomain.PasskeyRecord
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

	sortNewestFirst(records, func(r *vaultDomain.PasskeyRecord) (time.Time, string) {
		return r.CreatedAt, r.ID
	})

	return records, nil
}

func (p *passkeyUseCase) seal(recordID string, plaintext []byte) (string, error) {
	key, err := p.keyDeriver.DeriveKey(p.masterSecret, []byte(recordID))
	if err != nil {
		return "", err
	}
	defer cryptoDomain.Zero(key)

	return p.codec.Seal(key, plaintext)
}

func (p *passkeyUseCase) open(recordID, blob string) (string, error) {
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

func splitTransports(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
