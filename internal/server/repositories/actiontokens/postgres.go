package actiontokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kampanlabs/sawari/internal/common"
	"github.com/kampanlabs/sawari/internal/dbx"
	"github.com/kampanlabs/sawari/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a one-time token of the given kind expiring at now+validity.
func (r *PostgresRepository) Create(ctx context.Context, accountID string, kind models.ActionKind, token string, validity time.Duration) error {
	query := `
		INSERT INTO action_tokens (account_id, kind, token, expires_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query, accountID, string(kind), token, time.Now().Add(validity)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Find returns the token row for the given kind and token string.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) Find(ctx context.Context, kind models.ActionKind, token string) (*models.ActionToken, error) {
	query := `
		SELECT account_id, expires_at
		FROM action_tokens
		WHERE kind = $1 AND token = $2
	`
	at := &models.ActionToken{Kind: kind, Token: token}
	if err := r.db.QueryRowContext(ctx, query, string(kind), token).Scan(&at.AccountID, &at.Expires); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return at, nil
}

// Delete removes a token by its token string.
func (r *PostgresRepository) Delete(ctx context.Context, token string) error {
	query := `
		DELETE FROM action_tokens
		WHERE token = $1
	`
	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
