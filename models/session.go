package models

import "time"

type SessionState string

const (
	StateLoggingIn     SessionState = "logging_in"
	StateAnonymous     SessionState = "anonymous"
	StateAuthenticated SessionState = "authenticated"
)

// TokenPair is the persisted credential record. Only Access is ever decoded.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func (t TokenPair) Empty() bool { return t.Access == "" }

// Identity is what the access token's claims say about the signed-in user.
type Identity struct {
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	IsStaff   bool      `json:"is_staff"`
	IsAdmin   bool      `json:"is_admin"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the access token is past its expiry. Tokens
// without an exp claim never expire client-side.
func (i Identity) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

type Credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type Registration struct {
	Email                string `json:"email" binding:"required"`
	Username             string `json:"username" binding:"required"`
	Password             string `json:"password" binding:"required"`
	PasswordConfirmation string `json:"password2" binding:"required"`
}
