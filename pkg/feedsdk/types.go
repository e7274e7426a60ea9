package feedsdk

import "time"

// ============================================================================
// Profile Types
// ============================================================================

// Profile is the public view of a user. Password material never leaves the
// server.
type Profile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// RegisterRequest creates a new profile.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// ProfileUpdate is the body of PUT and PATCH on a profile. Nil fields are
// left out of the request; PUT still requires email and name.
type ProfileUpdate struct {
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
}

// ============================================================================
// Login Types
// ============================================================================

// LoginRequest swaps credentials for a token. The server also accepts the
// same fields form-encoded.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries the opaque token from a successful login.
type TokenResponse struct {
	Token string `json:"token"`

	// ExpiresAt is set only when the server runs with a token TTL.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// ============================================================================
// Feed Types
// ============================================================================

// FeedItem is a status update. Owner is the profile ID that posted it.
type FeedItem struct {
	ID         string    `json:"id"`
	Owner      string    `json:"owner"`
	StatusText string    `json:"status_text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FeedItemRequest is the body of POST, PUT and PATCH on a feed item. Any
// owner sent alongside is ignored by the server.
type FeedItemRequest struct {
	StatusText *string `json:"status_text,omitempty"`
}

// ListOptions narrows list endpoints. Owner applies to the feed only.
type ListOptions struct {
	Search string
	Owner  string
	Limit  int
	Offset int
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each dependency checked by /readyz.
type HealthChecks struct {
	Database string `json:"database"`
}
