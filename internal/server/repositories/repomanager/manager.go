package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/libhub/internal/dbx"
	"github.com/dmitrijs2005/libhub/internal/server/repositories/libraries"
	"github.com/dmitrijs2005/libhub/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either the pool or a
// transaction, so services can run several repository calls atomically.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Libraries(db dbx.DBTX) libraries.Repository
}
