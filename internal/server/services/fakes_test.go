package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/libhub/internal/dbx"
	"github.com/dmitrijs2005/libhub/internal/server/models"
	"github.com/dmitrijs2005/libhub/internal/server/repositories/libraries"
	"github.com/dmitrijs2005/libhub/internal/server/repositories/memory"
	"github.com/dmitrijs2005/libhub/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// fakeUsersRepo is the in-memory repository with injectable failures.
type fakeUsersRepo struct {
	*memory.UsersRepository
	createErr error
	getErr    error
}

func (f *fakeUsersRepo) add(u models.User) *models.User { return f.Add(u) }

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.UsersRepository.Create(ctx, u)
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.UsersRepository.GetByEmail(ctx, email)
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.UsersRepository.GetByID(ctx, id)
}

type fakeLibrariesRepo struct {
	*memory.LibrariesRepository
	countErr error
}

func (f *fakeLibrariesRepo) Count(ctx context.Context, userID string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.LibrariesRepository.Count(ctx, userID)
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	l *fakeLibrariesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u: &fakeUsersRepo{UsersRepository: memory.NewUsersRepository()},
		l: &fakeLibrariesRepo{LibrariesRepository: memory.NewLibrariesRepository()},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository           { return m.u }
func (m *fakeRepoManager) Libraries(db dbx.DBTX) libraries.Repository   { return m.l }
