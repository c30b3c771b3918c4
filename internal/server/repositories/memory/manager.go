// Package memory provides map-backed repositories for development runs and
// tests. Transactions are not modelled: every call applies immediately, and
// the DBTX argument is ignored. Pair the manager with OpenDB so that
// dbx.WithTx callers still run one transaction at a time.
package memory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/libhub/internal/dbx"
	"github.com/dmitrijs2005/libhub/internal/server/repositories/libraries"
	"github.com/dmitrijs2005/libhub/internal/server/repositories/users"

	_ "modernc.org/sqlite"
)

// DSN selects the in-memory repositories instead of PostgreSQL.
const DSN = "memory://"

// OpenDB returns the *sql.DB handed to services in memory mode: an in-memory
// SQLite database limited to one connection. A transaction holds that
// connection until it commits or rolls back, so concurrent WithTx calls
// queue instead of interleaving their repository writes.
func OpenDB() (*sql.DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open in-memory database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

type InMemoryRepositoryManager struct {
	users     *UsersRepository
	libraries *LibrariesRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:     NewUsersRepository(),
		libraries: NewLibrariesRepository(),
	}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *InMemoryRepositoryManager) Libraries(dbx.DBTX) libraries.Repository { return m.libraries }

// UserStore exposes the concrete users repository for seeding.
func (m *InMemoryRepositoryManager) UserStore() *UsersRepository { return m.users }

func (m *InMemoryRepositoryManager) LibraryStore() *LibrariesRepository { return m.libraries }
