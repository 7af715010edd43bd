package repomanager

import (
	"context"
	"database/sql"

	"github.com/kampanlabs/sawari/internal/dbx"
	"github.com/kampanlabs/sawari/internal/server/repositories/accounts"
	"github.com/kampanlabs/sawari/internal/server/repositories/actiontokens"
	"github.com/kampanlabs/sawari/internal/server/repositories/profiles"
	"github.com/kampanlabs/sawari/internal/server/repositories/refreshtokens"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	ActionTokens(db dbx.DBTX) actiontokens.Repository
	Profiles(db dbx.DBTX) profiles.Repository
}
