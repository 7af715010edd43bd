// Package profiles provides a PostgreSQL-backed document store for profile
// records, one JSONB document per owning account.
package profiles

import (
	"context"
	"encoding/json"
)

type Repository interface {
	Get(ctx context.Context, accountID string) (json.RawMessage, error)
	Set(ctx context.Context, accountID string, doc json.RawMessage) error
	Delete(ctx context.Context, accountID string) error
}
