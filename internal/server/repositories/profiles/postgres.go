package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kampanlabs/sawari/internal/common"
	"github.com/kampanlabs/sawari/internal/dbx"
)

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get returns the profile document for accountID.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, accountID string) (json.RawMessage, error) {
	query := `
		SELECT doc
		FROM profiles
		WHERE account_id = $1
	`
	var doc []byte
	if err := r.db.QueryRowContext(ctx, query, accountID).Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc, nil
}

// Set upserts the full profile document for accountID.
func (r *PostgresRepository) Set(ctx context.Context, accountID string, doc json.RawMessage) error {
	query := `
		INSERT INTO profiles (account_id, doc, updated_at)
		VALUES ($1, $2::jsonb, now())
		ON CONFLICT (account_id) DO UPDATE SET doc = excluded.doc, updated_at = now()
	`
	if _, err := r.db.ExecContext(ctx, query, accountID, []byte(doc)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete removes the profile document for accountID.
func (r *PostgresRepository) Delete(ctx context.Context, accountID string) error {
	query := `
		DELETE FROM profiles
		WHERE account_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, accountID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
