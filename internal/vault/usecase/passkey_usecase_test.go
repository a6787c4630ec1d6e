package usecase

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoService "github.com/allisson/passkeeper/internal/crypto/service"
	apperrors "github.com/allisson/passkeeper/internal/errors"
	"github.com/allisson/passkeeper/internal/testutil"
	vaultDomain "github.com/allisson/passkeeper/internal/vault/domain"
)

func newTestPasskeyUseCase(t *testing.T) (PasskeyUseCase, BlobStore) {
	t.Helper()
	store := testutil.SetupStore(t)
	uc := NewPasskeyUseCase(
		store,
		cryptoService.NewKeyDerivation(),
		cryptoService.NewAeadCodec(nil),
		testMasterSecret,
		false,
	)
	return uc, store
}

func uint32Ptr(v uint32) *uint32 {
	return &v
}

func TestPasskeyUseCase_Add(t *testing.T) {
	ctx := context.Background()
	uc, store := newTestPasskeyUseCase(t)

	t.Run("stores the record with a sealed public key", func(t *testing.T) {
		record, err := uc.Add(ctx, PasskeyInput{
			RpID:         "example.com",
			CredentialID: "cred-1",
			UserHandle:   "user-1",
			PublicKey:    "pk-material",
			SignCount:    7,
			Transports:   []string{"usb", "nfc"},
		})
		require.NoError(t, err)

		assert.NotEmpty(t, record.ID)
		assert.NotEqual(t, "pk-material", record.PublicKey)
		assert.Equal(t, uint32(7), record.SignCount)

		blob, err := store.Get(ctx, NamespacePasskey, record.ID)
		require.NoError(t, err)
		assert.NotContains(t, string(blob), "pk-material")
	})

	t.Run("rejects missing rp_id", func(t *testing.T) {
		_, err := uc.Add(ctx, PasskeyInput{CredentialID: "c", UserHandle: "u", PublicKey: "pk"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("rejects missing public key", func(t *testing.T) {
		_, err := uc.Add(ctx, PasskeyInput{RpID: "example.com", CredentialID: "c", UserHandle: "u"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestPasskeyUseCase_Get(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestPasskeyUseCase(t)

	_, err := uc.Add(ctx, PasskeyInput{
		RpID: "example.com", CredentialID: "cred-1", UserHandle: "user-1", PublicKey: "pk-1",
	})
	require.NoError(t, err)
	second, err := uc.Add(ctx, PasskeyInput{
		RpID: "example.com", CredentialID: "cred-2", UserHandle: "user-2", PublicKey: "pk-2",
	})
	require.NoError(t, err)
	_, err = uc.Add(ctx, PasskeyInput{
		RpID: "other.com", CredentialID: "cred-3", UserHandle: "user-1", PublicKey: "pk-3",
	})
	require.NoError(t, err)

	t.Run("returns all records for a relying party with decrypted keys", func(t *testing.T) {
		records, err := uc.Get(ctx, "example.com", "")
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, second.ID, records[0].ID)
		assert.Equal(t, "pk-2", records[0].PublicKey)
	})

	t.Run("user handle narrows the result", func(t *testing.T) {
		records, err := uc.Get(ctx, "example.com", "user-1")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "pk-1", records[0].PublicKey)
	})

	t.Run("unknown relying party reports not found", func(t *testing.T) {
		_, err := uc.Get(ctx, "nowhere.example", "")
		assert.ErrorIs(t, err, vaultDomain.ErrRecordNotFound)
	})

	t.Run("blank rp_id is rejected", func(t *testing.T) {
		_, err := uc.Get(ctx, " ", "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestPasskeyUseCase_Search(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestPasskeyUseCase(t)

	_, err := uc.Add(ctx, PasskeyInput{
		RpID: "example.com", CredentialID: "cred-1", UserHandle: "user-1",
		PublicKey: "pk-1", Transports: []string{"hybrid"},
	})
	require.NoError(t, err)

	t.Run("matches transports and clears public keys", func(t *testing.T) {
		records, err := uc.Search(ctx, "hybrid")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Empty(t, records[0].PublicKey)
	})

	t.Run("no match reports not found", func(t *testing.T) {
		_, err := uc.Search(ctx, "bluetooth")
		assert.ErrorIs(t, err, vaultDomain.ErrRecordNotFound)
	})
}

func TestPasskeyUseCase_Update(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestPasskeyUseCase(t)

	record, err := uc.Add(ctx, PasskeyInput{
		RpID: "example.com", CredentialID: "cred-1", UserHandle: "user-1", PublicKey: "pk-1", SignCount: 1,
	})
	require.NoError(t, err)

	t.Run("updates the signature counter", func(t *testing.T) {
		updated, err := uc.Update(ctx, record.ID, vaultDomain.PasskeyUpdate{SignCount: uint32Ptr(42)})
		require.NoError(t, err)
		assert.Equal(t, uint32(42), updated.SignCount)
	})

	t.Run("re-seals a new public key under the same identifier", func(t *testing.T) {
		_, err := uc.Update(ctx, record.ID, vaultDomain.PasskeyUpdate{PublicKey: strPtr("pk-rotated")})
		require.NoError(t, err)

		records, err := uc.Get(ctx, "example.com", "user-1")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "pk-rotated", records[0].PublicKey)
	})

	t.Run("empty update is rejected", func(t *testing.T) {
		_, err := uc.Update(ctx, record.ID, vaultDomain.PasskeyUpdate{})
		assert.ErrorIs(t, err, vaultDomain.ErrNoFieldsToUpdate)
	})

	t.Run("unknown identifier reports not found", func(t *testing.T) {
		_, err := uc.Update(ctx, "missing", vaultDomain.PasskeyUpdate{SignCount: uint32Ptr(1)})
		assert.ErrorIs(t, err, vaultDomain.ErrRecordNotFound)
	})
}

func TestPasskeyUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestPasskeyUseCase(t)

	record, err := uc.Add(ctx, PasskeyInput{
		RpID: "example.com", CredentialID: "cred-1", UserHandle: "user-1", PublicKey: "pk-1",
	})
	require.NoError(t, err)

	t.Run("removes the record", func(t *testing.T) {
		require.NoError(t, uc.Delete(ctx, record.ID))

		_, err := uc.Get(ctx, "example.com", "")
		assert.ErrorIs(t, err, vaultDomain.ErrRecordNotFound)
	})

	t.Run("unknown identifier reports not found", func(t *testing.T) {
		err := uc.Delete(ctx, record.ID)
		assert.ErrorIs(t, err, vaultDomain.ErrRecordNotFound)
	})
}

func TestPasskeyUseCase_CSV(t *testing.T) {
	ctx := context.Background()
	uc, _ := newTestPasskeyUseCase(t)

	_, err := uc.Add(ctx, PasskeyInput{
		RpID: "example.com", CredentialID: "cred-1", UserHandle: "user-1",
		PublicKey: "pk-1", SignCount: 9, Transports: []string{"usb", "nfc"},
	})
	require.NoError(t, err)

	t.Run("export writes decrypted rows with a header", func(t *testing.T) {
		var buf bytes.Buffer
		count, err := uc.ExportCSV(ctx, &buf)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, strings.Join(passkeyCSVHeader, ","), lines[0])
		assert.Contains(t, buf.String(), "pk-1")
		assert.Contains(t, buf.String(), `"usb,nfc"`)
	})

	t.Run("import round trips an export into a fresh store", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := uc.ExportCSV(ctx, &buf)
		require.NoError(t, err)

		target, _ := newTestPasskeyUseCase(t)
		count, err := target.ImportCSV(ctx, &buf)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		records, err := target.Get(ctx, "example.com", "")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "pk-1", records[0].PublicKey)
		assert.Equal(t, uint32(9), records[0].SignCount)
		assert.Equal(t, []string{"usb", "nfc"}, records[0].Transports)
	})

	t.Run("import rejects a malformed sign_count", func(t *testing.T) {
		target, _ := newTestPasskeyUseCase(t)
		csvData := strings.Join(passkeyCSVHeader, ",") + "\n" +
			"example.com,cred-1,user-1,pk-1,not-a-number,usb\n"
		_, err := target.ImportCSV(ctx, strings.NewReader(csvData))
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}
