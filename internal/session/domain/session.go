// Package domain defines the session model for authentication gating.
package domain

import (
	"time"
)

// State describes the observable session state.
type State string

const (
	// StateNoSession means no session record exists.
	StateNoSession State = "no_session"

	// StateActive means a session exists and its expiry lies in the future.
	StateActive State = "active"

	// StateExpired means a session exists but its expiry has passed. It only
	// transitions away via a successful auth or a logout.
	StateExpired State = "expired"
)

// Session holds the single persisted value of the authentication gate: the
// moment the operator's session stops being valid. Exactly one session exists
// per operator profile; re-authentication overwrites it.
type Session struct {
	ExpiresAt time.Time
}

// Status is the answer of a status query: the state plus, when active, the
// time remaining until expiry.
type Status struct {
	State     State
	Remaining time.Duration
}
