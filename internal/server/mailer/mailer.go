// Package mailer abstracts outbound mail. The reference backend ships a
// logging implementation that records each message instead of sending it.
package mailer

import (
	"context"

	"github.com/kampanlabs/sawari/internal/logging"
)

// Mailer delivers account mail (verification, password reset).
type Mailer interface {
	SendVerification(ctx context.Context, email, token string) error
	SendPasswordReset(ctx context.Context, email, token string) error
}

// LogMailer writes mail to the server log. Suitable for development and for
// tests; swap in a real mailer in production.
type LogMailer struct {
	logger logging.Logger
}

func NewLogMailer(logger logging.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendVerification(ctx context.Context, email, token string) error {
	m.logger.Info(ctx, "verification email", "to", email, "token", token)
	return nil
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, email, token string) error {
	m.logger.Info(ctx, "password reset email", "to", email, "token", token)
	return nil
}
