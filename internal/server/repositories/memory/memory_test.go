package memory

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/libhub/internal/common"
	"github.com/dmitrijs2005/libhub/internal/server/models"
	"github.com/dmitrijs2005/libhub/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ repomanager.RepositoryManager = (*InMemoryRepositoryManager)(nil)

func TestUsersRepository(t *testing.T) {
	ctx := context.Background()
	r := NewUsersRepository()

	u, err := r.Create(ctx, &models.User{Email: "ada@example.com", Status: models.StatusActive})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.CreatedAt.IsZero())

	_, err = r.Create(ctx, &models.User{Email: "ada@example.com"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	got, err := r.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = r.GetByEmail(ctx, "Ada@example.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	last := "King"
	got, err = r.UpdateNames(ctx, u.ID, nil, &last)
	require.NoError(t, err)
	assert.Equal(t, "King", got.LastName)

	got, err = r.UpdateStatus(ctx, u.ID, models.StatusSuspended)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuspended, got.Status)

	require.NoError(t, r.LockForUpdate(ctx, u.ID))
	assert.ErrorIs(t, r.LockForUpdate(ctx, "nope"), common.ErrorNotFound)
	assert.Equal(t, []string{u.ID}, r.Locked())
}

func TestLibrariesRepository_OneActivePerUser(t *testing.T) {
	ctx := context.Background()
	r := NewLibrariesRepository()

	a, err := r.Insert(ctx, &models.Library{UserID: "u-1", Name: "A", IsActive: true})
	require.NoError(t, err)

	_, err = r.Insert(ctx, &models.Library{UserID: "u-1", Name: "B", IsActive: true})
	assert.ErrorIs(t, err, common.ErrorConflict)

	b, err := r.Insert(ctx, &models.Library{UserID: "u-1", Name: "B"})
	require.NoError(t, err)

	_, err = r.Activate(ctx, b.ID, "u-1")
	assert.ErrorIs(t, err, common.ErrorConflict)

	// other users are independent
	_, err = r.Insert(ctx, &models.Library{UserID: "u-2", Name: "C", IsActive: true})
	require.NoError(t, err)

	require.NoError(t, r.DeactivateAll(ctx, "u-1"))
	_, err = r.Activate(ctx, b.ID, "u-1")
	require.NoError(t, err)

	list, err := r.List(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)

	sib, err := r.PickSibling(ctx, "u-1", b.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, sib)

	_, err = r.GetOwned(ctx, a.ID, "u-2")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, r.Delete(ctx, a.ID, "u-2"), common.ErrorNotFound)
	require.NoError(t, r.Delete(ctx, a.ID, "u-1"))

	n, err := r.Count(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLibrariesRepository_UpdateClearsImage(t *testing.T) {
	ctx := context.Background()
	r := NewLibrariesRepository()

	img := "/uploads/a.png"
	l, err := r.Insert(ctx, &models.Library{UserID: "u-1", Name: "A", ImageURL: &img})
	require.NoError(t, err)

	empty := ""
	got, err := r.Update(ctx, l.ID, "u-1", models.LibraryPatch{ImageURL: &empty})
	require.NoError(t, err)
	assert.Nil(t, got.ImageURL)
}

func TestManager_VendsStores(t *testing.T) {
	m := NewInMemoryRepositoryManager()
	assert.Same(t, m.UserStore(), m.Users(nil))
	assert.Same(t, m.LibraryStore(), m.Libraries(nil))
	assert.NoError(t, m.RunMigrations(context.Background(), nil))
}

func TestOpenDB_SingleConnection(t *testing.T) {
	db, err := OpenDB()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.PingContext(context.Background()))
	assert.Equal(t, 1, db.Stats().MaxOpenConnections)
}
