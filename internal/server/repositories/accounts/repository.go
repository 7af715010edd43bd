// Package accounts provides a PostgreSQL-backed repository for identity rows.
package accounts

import (
	"context"

	"github.com/kampanlabs/sawari/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	UpdateDisplayName(ctx context.Context, id, displayName string) error
	SetEmailVerified(ctx context.Context, id string, verified bool) error
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
}
