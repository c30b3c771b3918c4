package services

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/libhub/internal/client/client"
	"github.com/dmitrijs2005/libhub/internal/client/models"
	"github.com/dmitrijs2005/libhub/internal/client/session"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func newSession(t *testing.T) *session.Session {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return session.New(db)
}

// fakeClient implements client.Client. Err, when set, is returned by every
// call that takes a token.
type fakeClient struct {
	Err error

	AuthRet *client.AuthResponse
	AuthErr error
	PingErr error

	UserRet  *models.User
	UsersRet []*models.User
	LibRet   *models.Library
	LibsRet  []*models.Library
	URLRet   string

	LastToken    string
	LastRegister client.RegisterRequest
	LastPassword string
	LastProfile  client.ProfileUpdate
	LastUpdate   client.LibraryUpdate
	LastID       string
	LastFilename string
	LastUpload   []byte
}

func (f *fakeClient) Ping(context.Context) error { return f.PingErr }

func (f *fakeClient) Register(_ context.Context, r client.RegisterRequest) (*client.AuthResponse, error) {
	f.LastRegister = r
	return f.AuthRet, f.AuthErr
}

func (f *fakeClient) Login(_ context.Context, _, password string) (*client.AuthResponse, error) {
	f.LastPassword = password
	return f.AuthRet, f.AuthErr
}

func (f *fakeClient) Profile(_ context.Context, token string) (*models.User, error) {
	f.LastToken = token
	return f.UserRet, f.Err
}

func (f *fakeClient) UpdateProfile(_ context.Context, token string, upd client.ProfileUpdate) (*models.User, error) {
	f.LastToken, f.LastProfile = token, upd
	return f.UserRet, f.Err
}

func (f *fakeClient) Users(_ context.Context, token string) ([]*models.User, error) {
	f.LastToken = token
	return f.UsersRet, f.Err
}

func (f *fakeClient) SetUserStatus(_ context.Context, token, userID, _ string) (*models.User, error) {
	f.LastToken, f.LastID = token, userID
	return f.UserRet, f.Err
}

func (f *fakeClient) Libraries(_ context.Context, token string) ([]*models.Library, error) {
	f.LastToken = token
	return f.LibsRet, f.Err
}

func (f *fakeClient) ActiveLibrary(_ context.Context, token string) (*models.Library, error) {
	f.LastToken = token
	return f.LibRet, f.Err
}

func (f *fakeClient) CreateLibrary(_ context.Context, token, name string, _ *string) (*models.Library, error) {
	f.LastToken = token
	f.LastUpdate = client.LibraryUpdate{Name: &name}
	return f.LibRet, f.Err
}

func (f *fakeClient) SwitchLibrary(_ context.Context, token, id string) (*models.Library, error) {
	f.LastToken, f.LastID = token, id
	return f.LibRet, f.Err
}

func (f *fakeClient) UpdateLibrary(_ context.Context, token, id string, upd client.LibraryUpdate) (*models.Library, error) {
	f.LastToken, f.LastID, f.LastUpdate = token, id, upd
	return f.LibRet, f.Err
}

func (f *fakeClient) DeleteLibrary(_ context.Context, token, id string) error {
	f.LastToken, f.LastID = token, id
	return f.Err
}

func (f *fakeClient) UploadImage(_ context.Context, token, filename string, r io.Reader) (string, error) {
	f.LastToken, f.LastFilename = token, filename
	f.LastUpload, _ = io.ReadAll(r)
	return f.URLRet, f.Err
}
