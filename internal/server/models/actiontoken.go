package models

import "time"

// ActionKind discriminates one-time token purposes.
type ActionKind string

const (
	ActionVerifyEmail   ActionKind = "verify-email"
	ActionResetPassword ActionKind = "reset-password"
)

// ActionToken is a one-time token mailed to the user for email verification
// or password reset.
type ActionToken struct {
	ID        string
	AccountID string
	Kind      ActionKind
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
