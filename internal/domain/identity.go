package domain

import "fmt"

// Identity is the ownership key for a shopping cart: either an authenticated
// user ID or an anonymous session token, never both and never neither.
// The zero value is invalid; construct with ForUser or ForSession.
type Identity struct {
	userID    int64
	sessionID string
}

// ForUser returns an identity scoped to an authenticated user.
func ForUser(userID int64) Identity {
	return Identity{userID: userID}
}

// ForSession returns an identity scoped to an anonymous session token.
func ForSession(sessionID string) Identity {
	return Identity{sessionID: sessionID}
}

// IsUser reports whether the identity refers to an authenticated user.
func (id Identity) IsUser() bool {
	return id.userID != 0
}

// IsSession reports whether the identity refers to an anonymous session.
func (id Identity) IsSession() bool {
	return id.userID == 0 && id.sessionID != ""
}

// Valid reports whether the identity carries exactly one key.
func (id Identity) Valid() bool {
	return id.userID != 0 || id.sessionID != ""
}

// UserID returns the user ID, or 0 for an anonymous identity.
func (id Identity) UserID() int64 {
	return id.userID
}

// SessionID returns the session token, or "" for a user identity.
func (id Identity) SessionID() string {
	if id.userID != 0 {
		return ""
	}
	return id.sessionID
}

// String renders the identity for logging. Session tokens are not truncated
// because they are random and carry no personal data.
func (id Identity) String() string {
	if id.IsUser() {
		return fmt.Sprintf("user:%d", id.userID)
	}
	if id.IsSession() {
		return fmt.Sprintf("session:%s", id.sessionID)
	}
	return "identity:empty"
}
