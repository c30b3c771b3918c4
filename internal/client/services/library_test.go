package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/libhub/internal/client/client"
	"github.com/dmitrijs2005/libhub/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loggedIn(t *testing.T, fc *fakeClient) LibraryService {
	t.Helper()
	s := newSession(t)
	require.NoError(t, s.Start(context.Background(), "tok", ada))
	return NewLibraryService(fc, s)
}

func TestLibraryService_PassesTokenAndIDs(t *testing.T) {
	lib := &models.Library{ID: "l1", Name: "Main", IsActive: true}
	fc := &fakeClient{LibRet: lib, LibsRet: []*models.Library{lib}}
	svc := loggedIn(t, fc)
	ctx := context.Background()

	libs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, libs, 1)
	assert.Equal(t, "tok", fc.LastToken)

	_, err = svc.Switch(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "l1", fc.LastID)

	_, err = svc.Rename(ctx, "l2", "Renamed")
	require.NoError(t, err)
	assert.Equal(t, "l2", fc.LastID)
	assert.Equal(t, "Renamed", *fc.LastUpdate.Name)
	assert.Nil(t, fc.LastUpdate.ImageURL)

	require.NoError(t, svc.Delete(ctx, "l3"))
	assert.Equal(t, "l3", fc.LastID)
}

func TestLibraryService_SetImageUploadsThenUpdates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.png")
	require.NoError(t, os.WriteFile(path, []byte("PNG"), 0o600))

	fc := &fakeClient{URLRet: "/uploads/libraries/cover.png", LibRet: &models.Library{ID: "l1"}}
	svc := loggedIn(t, fc)

	_, err := svc.SetImage(context.Background(), "l1", path)
	require.NoError(t, err)

	assert.Equal(t, path, fc.LastFilename)
	assert.Equal(t, []byte("PNG"), fc.LastUpload)
	require.NotNil(t, fc.LastUpdate.ImageURL)
	assert.Equal(t, "/uploads/libraries/cover.png", *fc.LastUpdate.ImageURL)
}

func TestLibraryService_SetImageEmptyPathClears(t *testing.T) {
	fc := &fakeClient{LibRet: &models.Library{ID: "l1"}}
	svc := loggedIn(t, fc)

	_, err := svc.SetImage(context.Background(), "l1", "")
	require.NoError(t, err)

	assert.Empty(t, fc.LastFilename)
	require.NotNil(t, fc.LastUpdate.ImageURL)
	assert.Equal(t, "", *fc.LastUpdate.ImageURL)
}

func TestLibraryService_UploadMissingFile(t *testing.T) {
	svc := loggedIn(t, &fakeClient{})

	_, err := svc.UploadImage(context.Background(), filepath.Join(t.TempDir(), "absent.png"))
	assert.ErrorContains(t, err, "open image")
}

func TestLibraryService_UnauthorizedInvalidatesSession(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Start(context.Background(), "tok", ada))
	svc := NewLibraryService(&fakeClient{Err: &client.APIError{StatusCode: 401}}, s)

	err := svc.Delete(context.Background(), "l1")
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, s.Active())

	_, err = svc.List(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}
