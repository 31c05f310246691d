// Package session holds the client's authentication state: the persistent
// key-value store surviving restarts, a manager that keeps the persisted
// session all-or-nothing, and the in-memory context screens read from.
package session

// Storage keys. The layout is shared with the mobile client, so the names
// are fixed.
const (
	KeyIsLogin      = "isLogin"
	KeyUserData     = "userData"
	KeySessionToken = "session_token"
)

// Session represents a logged-in user's credential state. A Session is
// either fully absent (logged out) or fully present: code must never hold
// or persist a token without the matching identity fields.
type Session struct {
	Token  string
	UserID string
	Email  string
}

// userData is the persisted JSON shape of the non-secret identity fields.
type userData struct {
	UserID string `json:"userid"`
	Email  string `json:"email"`
}

// PendingRegistration is the transient state between sign-up submission and
// finalize. It lives only in the in-memory Context; losing it on process
// restart is acceptable, the user just signs up again.
type PendingRegistration struct {
	UserID string
	Email  string
}
