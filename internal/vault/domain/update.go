package domain

// Partial updates are modeled as explicit optional-field structures applied
// field-by-field: a nil pointer leaves the field untouched, a non-nil pointer
// replaces it. This keeps update assembly free of ad hoc string building.

// PasswordUpdate describes a partial update of a PasswordRecord.
type PasswordUpdate struct {
	URL      *string
	Username *string
	Password *string
	Title    *string
	Note     *string
}

// IsEmpty reports whether no field is set.
func (u PasswordUpdate) IsEmpty() bool {
	return u.URL == nil && u.Username == nil && u.Password == nil && u.Title == nil && u.Note == nil
}

// Apply overwrites the set fields on record.
func (u PasswordUpdate) Apply(record *PasswordRecord) {
	if u.URL != nil {
		record.URL = *u.URL
	}
	if u.Username != nil {
		record.Username = *u.Username
	}
	if u.Password != nil {
		record.Password = *u.Password
	}
	if u.Title != nil {
		record.Title = *u.Title
	}
	if u.Note != nil {
		record.Note = *u.Note
	}
}

// PasskeyUpdate describes a partial update of a PasskeyRecord.
type PasskeyUpdate struct {
	RpID         *string
	CredentialID *string
	UserHandle   *string
	PublicKey    *string
	SignCount    *uint32
	Transports   *[]string
}

// IsEmpty reports whether no field is set.
func (u PasskeyUpdate) IsEmpty() bool {
	return u.RpID == nil && u.CredentialID == nil && u.UserHandle == nil &&
		u.PublicKey == nil && u.SignCount == nil && u.Transports == nil
}

// Apply overwrites the set fields on record.
func (u PasskeyUpdate) Apply(record *PasskeyRecord) {
	if u.RpID != nil {
		record.RpID = *u.RpID
	}
	if u.CredentialID != nil {
		record.CredentialID = *u.CredentialID
	}
	if u.UserHandle != nil {
		record.UserHandle = *u.UserHandle
	}
	if u.PublicKey != nil {
		record.PublicKey = *u.PublicKey
	}
	if u.SignCount != nil {
		record.SignCount = *u.SignCount
	}
	if u.Transports != nil {
		record.Transports = *u.Transports
	}
}
