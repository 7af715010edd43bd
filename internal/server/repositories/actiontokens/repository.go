// Package actiontokens provides a PostgreSQL-backed repository for the
// one-time tokens mailed for email verification and password reset.
package actiontokens

import (
	"context"
	"time"

	"github.com/kampanlabs/sawari/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, accountID string, kind models.ActionKind, token string, validity time.Duration) error
	Find(ctx context.Context, kind models.ActionKind, token string) (*models.ActionToken, error)
	Delete(ctx context.Context, token string) error
}
