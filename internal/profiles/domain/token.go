package domain

import "time"

// AuthToken is the stored binding between a user and their current token.
// Only the fingerprint is kept; the raw token is handed out once.
type AuthToken struct {
	UserID    string
	TokenHash string     // base64url SHA-256 of the raw token
	ExpiresAt *time.Time // nil when tokens don't expire
	CreatedAt time.Time
}

// Expired reports whether the token has passed its expiry at now.
func (t AuthToken) Expired(now time.Time) bool {
	return t.ExpiresAt != nil && !now.Before(*t.ExpiresAt)
}

// IssuedToken is what a successful login returns.
type IssuedToken struct {
	Token     string
	UserID    string
	ExpiresAt *time.Time
}
