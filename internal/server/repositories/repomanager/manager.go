// Package repomanager provides a factory for repositories bound to a
// database handle, plus schema migration support.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/psidorov/interviewhub/internal/dbx"
	"github.com/psidorov/interviewhub/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to the given handle
// (plain connection or transaction) and applies schema migrations.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
