package domain

import (
	"strings"
	"time"
)

// PasskeyRecord stores the metadata of a WebAuthn credential.
type PasskeyRecord struct {
	// ID is the opaque record identifier; same lifecycle rules as
	// PasswordRecord.ID.
	ID string `json:"id"`
	// RpID is the relying-party identifier (usually a domain).
	RpID string `json:"rp_id"`
	// CredentialID is the authenticator-assigned credential identifier.
	CredentialID string `json:"credential_id"`
	// UserHandle is the relying party's opaque user identifier.
	UserHandle string `json:"user_handle"`
	// PublicKey holds the sealed blob at rest, plaintext after decryption.
	PublicKey string `json:"public_key"`
	// SignCount is the authenticator signature counter at registration.
	SignCount uint32 `json:"sign_count"`
	// Transports lists the supported authenticator transports (usb, nfc, …).
	Transports []string `json:"transports,omitempty"`
	// CreatedAt is the UTC timestamp of record creation.
	CreatedAt time.Time `json:"created_at"`
}

// Matches reports whether the record matches a case-insensitive keyword
// search over its non-secret fields and identifier.
func (r *PasskeyRecord) Matches(keyword string) bool {
	kw := strings.ToLower(keyword)
	fields := []string{r.RpID, r.CredentialID, r.UserHandle, r.ID}
	fields = append(fields, r.Transports...)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), kw) {
			return true
		}
	}
	return false
}
