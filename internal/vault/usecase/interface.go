// Package usecase implements the vault record operations: adding, looking
// up, searching, updating, deleting and bulk import/export of password and
// passkey records. Secret fields are sealed with a per-record key before
// they reach the store and opened again on read.
package usecase

import (
	"context"
	"io"

	validation "github.com/jellydator/validation"

	vaultDomain "github.com/allisson/passkeeper/internal/vault/domain"
	appvalidation "github.com/allisson/passkeeper/internal/validation"
)

// Store namespaces for the two record kinds.
const (
	NamespacePassword = "password"
	NamespacePasskey  = "passkey"
)

// BlobStore defines the interface for opaque record persistence.
type BlobStore interface {
	Put(ctx context.Context, namespace, id string, blob []byte) error
	Get(ctx context.Context, namespace, id string) ([]byte, error)
	Delete(ctx context.Context, namespace, id string) error
	ForEach(ctx context.Context, namespace string, fn func(id string, blob []byte) error) error
}

// PasswordInput carries the fields of a new password record.
type PasswordInput struct {
	URL      string
	Username string
	Password string
	Title    string
	Note     string
}

// Validate checks that the required fields are present.
func (i PasswordInput) Validate() error {
	return appvalidation.WrapValidationError(validation.ValidateStruct(&i,
		validation.Field(&i.URL, validation.Required, appvalidation.NotBlank),
		validation.Field(&i.Username, validation.Required, appvalidation.NotBlank),
		validation.Field(&i.Password, validation.Required),
	))
}

// PasskeyInput carries the fields of a new passkey record.
type PasskeyInput struct {
	RpID         string
	CredentialID string
	UserHandle   string
	PublicKey    string
	SignCount    uint32
	Transports   []string
}

// Validate checks that the required fields are present.
func (i PasskeyInput) Validate() error {
	return appvalidation.WrapValidationError(validation.ValidateStruct(&i,
		validation.Field(&i.RpID, validation.Required, appvalidation.NotBlank),
		validation.Field(&i.CredentialID, validation.Required, appvalidation.NotBlank),
		validation.Field(&i.UserHandle, validation.Required, appvalidation.NotBlank),
		validation.Field(&i.PublicKey, validation.Required),
	))
}

// PasswordUseCase defines the interface for password record operations.
//
// Security Note: records returned by GetByURL and Export carry plaintext
// passwords. Search deliberately returns records with the password field
// cleared so listings never expose secret material.
type PasswordUseCase interface {
	Add(ctx context.Context, input PasswordInput) (*vaultDomain.PasswordRecord, error)
	GetByURL(ctx context.Context, url string) ([]*vaultDomain.PasswordRecord, error)
	Search(ctx context.Context, keyword string) ([]*vaultDomain.PasswordRecord, error)
	Update(ctx context.Context, id string, update vaultDomain.PasswordUpdate) (*vaultDomain.PasswordRecord, error)
	Delete(ctx context.Context, id string) error
	ExportCSV(ctx context.Context, w io.Writer) (int, error)
	ImportCSV(ctx context.Context, r io.Reader) (int, error)
}

// PasskeyUseCase defines the interface for passkey record operations.
//
// Security Note: records returned by Get and Export carry plaintext public
// keys. Search clears the public key field.
type PasskeyUseCase interface {
	Add(ctx context.Context, input PasskeyInput) (*vaultDomain.PasskeyRecord, error)
	Get(ctx context.Context, rpID, userHandle string) ([]*vaultDomain.PasskeyRecord, error)
	Search(ctx context.Context, keyword string) ([]*vaultDomain.PasskeyRecord, error)
	Update(ctx context.Context, id string, update vaultDomain.PasskeyUpdate) (*vaultDomain.PasskeyRecord, error)
	Delete(ctx context.Context, id string) error
	ExportCSV(ctx context.Context, w io.Writer) (int, error)
	ImportCSV(ctx context.Context, r io.Reader) (int, error)
}
