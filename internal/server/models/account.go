// Package models holds the row types shared by the server repositories.
package models

import "time"

// Account is one identity row. PasswordHash is a PHC-encoded argon2id hash.
type Account struct {
	ID            string
	Email         string
	DisplayName   string
	PasswordHash  string
	EmailVerified bool
	Disabled      bool
	CreatedAt     time.Time
}
