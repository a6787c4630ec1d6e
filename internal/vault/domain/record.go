// Package domain defines the stored record models for the vault.
//
// Records are serialized to JSON and handed to the persistence layer as
// opaque blobs. Secret fields (the credential password, the passkey public
// key) hold an AEAD blob at rest and plaintext only transiently in memory
// after decryption.
package domain

import (
	"strings"
	"time"
)

// PasswordRecord is a stored URL/credential pair.
type PasswordRecord struct {
	// ID is the opaque record identifier, assigned once at creation and
	// immutable afterwards. It doubles as the key-derivation salt, so it is
	// never reused across distinct records, even after deletion.
	ID string `json:"id"`
	// URL is the site or service the credential belongs to.
	URL string `json:"url"`
	// Username is the login name.
	Username string `json:"username"`
	// Password holds the sealed blob at rest, plaintext after decryption.
	Password string `json:"password"`
	// Title is an optional human-readable label.
	Title string `json:"title,omitempty"`
	// Note is an optional free-form remark.
	Note string `json:"note,omitempty"`
	// CreatedAt is the UTC timestamp of record creation.
	CreatedAt time.Time `json:"created_at"`
}

// Matches reports whether the record matches a case-insensitive keyword
// search over its non-secret fields and identifier.
func (r *PasswordRecord) Matches(keyword string) bool {
	kw := strings.ToLower(keyword)
	for _, field := range []string{r.URL, r.Username, r.Title, r.Note, r.ID} {
		if strings.Contains(strings.ToLower(field), kw) {
			return true
		}
	}
	return false
}
