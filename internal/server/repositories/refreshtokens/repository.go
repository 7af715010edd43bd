// Package refreshtokens provides a PostgreSQL-backed repository for the
// opaque refresh tokens used in the server's session flow.
package refreshtokens

import (
	"context"
	"time"

	"github.com/kampanlabs/sawari/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, accountID string, token string, validity time.Duration) error
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	Delete(ctx context.Context, token string) error
	DeleteForAccount(ctx context.Context, accountID string) error
}
