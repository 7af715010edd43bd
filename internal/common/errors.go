// Package common defines shared constants and sentinel errors used across
// client and server layers of Sawari. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Account lifecycle errors.
	ErrorEmailExists     = errors.New("email already registered")
	ErrorAccountDisabled = errors.New("account disabled")
	ErrorWeakPassword    = errors.New("password too weak")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Throttling.
	ErrorTooManyRequests = errors.New("too many requests")
)
