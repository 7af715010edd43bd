package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kampanlabs/sawari/internal/common"
	"github.com/kampanlabs/sawari/internal/dbx"
	"github.com/kampanlabs/sawari/internal/server/repositories/repomanager"
)

// ProfileService stores one JSON profile document per account and supports
// partial updates addressed by dot paths ("settings.notifications").
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager) *ProfileService {
	return &ProfileService{db: db, repomanager: m}
}

// Get returns the raw profile document for accountID.
func (s *ProfileService) Get(ctx context.Context, accountID string) (json.RawMessage, error) {
	return s.repomanager.Profiles(s.db).Get(ctx, accountID)
}

// Set replaces (or creates) the full profile document for accountID.
func (s *ProfileService) Set(ctx context.Context, accountID string, doc json.RawMessage) error {
	if !json.Valid(doc) {
		return fmt.Errorf("invalid profile document")
	}
	return s.repomanager.Profiles(s.db).Set(ctx, accountID, doc)
}

// Patch merges fields into an existing document inside a transaction. Keys
// may address nested objects with dots; intermediate objects are created.
// A missing document yields common.ErrorNotFound: Patch never creates.
func (s *ProfileService) Patch(ctx context.Context, accountID string, fields map[string]any) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Profiles(tx)

		raw, err := repo.Get(ctx, accountID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorNotFound
			}
			return err
		}

		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("decode profile document: %w", err)
		}

		for path, value := range fields {
			setPath(doc, path, value)
		}

		merged, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode profile document: %w", err)
		}
		return repo.Set(ctx, accountID, merged)
	})
}

// setPath writes value at the dot path, creating intermediate objects.
// A non-object on the path is replaced.
func setPath(doc map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	m := doc
	for _, part := range parts[:len(parts)-1] {
		next, ok := m[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[part] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = value
}
