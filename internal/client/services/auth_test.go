package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/libhub/internal/client/client"
	"github.com/dmitrijs2005/libhub/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ada = &models.User{ID: "u1", FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Role: "admin"}

func TestAuthService_LoginStartsSession(t *testing.T) {
	s := newSession(t)
	fc := &fakeClient{AuthRet: &client.AuthResponse{User: ada, Token: "tok"}}
	svc := NewAuthService(fc, s)

	u, err := svc.Login(context.Background(), "ada@example.com", []byte("password123"))
	require.NoError(t, err)

	assert.Equal(t, ada.ID, u.ID)
	assert.Equal(t, "password123", fc.LastPassword)
	assert.True(t, s.Active())
	assert.Equal(t, "tok", s.Token())
}

func TestAuthService_LoginFailureKeepsNoSession(t *testing.T) {
	s := newSession(t)
	fc := &fakeClient{AuthErr: &client.APIError{StatusCode: 401, Message: "Invalid credentials"}}
	svc := NewAuthService(fc, s)

	_, err := svc.Login(context.Background(), "ada@example.com", []byte("nope"))
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, s.Active())
}

func TestAuthService_Register(t *testing.T) {
	s := newSession(t)
	fc := &fakeClient{AuthRet: &client.AuthResponse{User: ada, Token: "tok"}}
	svc := NewAuthService(fc, s)

	req := client.RegisterRequest{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "password123"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, req, fc.LastRegister)
	assert.Equal(t, "tok", s.Token())
}

func TestAuthService_RequiresSession(t *testing.T) {
	svc := NewAuthService(&fakeClient{}, newSession(t))
	ctx := context.Background()

	_, err := svc.Profile(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	_, err = svc.UpdateProfile(ctx, "A", "")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	_, err = svc.Users(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	_, err = svc.SetUserStatus(ctx, "u2", "active")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestAuthService_UnauthorizedInvalidatesSession(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Start(context.Background(), "stale", ada))

	fc := &fakeClient{Err: &client.APIError{StatusCode: 401, Message: "Invalid or expired token"}}
	svc := NewAuthService(fc, s)

	_, err := svc.Profile(context.Background())
	assert.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Equal(t, "stale", fc.LastToken)
	assert.False(t, s.Active())
}

func TestAuthService_ForbiddenKeepsSession(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Start(context.Background(), "tok", ada))

	fc := &fakeClient{Err: &client.APIError{StatusCode: 403, Message: "You do not have permission to access this resource"}}
	svc := NewAuthService(fc, s)

	_, err := svc.Users(context.Background())
	assert.ErrorIs(t, err, client.ErrForbidden)
	assert.True(t, s.Active())
}

func TestAuthService_UpdateProfileSendsOnlyGivenNames(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Start(context.Background(), "tok", ada))

	renamed := *ada
	renamed.FirstName = "Augusta"
	fc := &fakeClient{UserRet: &renamed}
	svc := NewAuthService(fc, s)

	_, err := svc.UpdateProfile(context.Background(), "Augusta", "")
	require.NoError(t, err)

	require.NotNil(t, fc.LastProfile.FirstName)
	assert.Equal(t, "Augusta", *fc.LastProfile.FirstName)
	assert.Nil(t, fc.LastProfile.LastName)
	assert.Equal(t, "Augusta", s.User().FirstName)
}

func TestAuthService_Logout(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.Start(context.Background(), "tok", ada))

	require.NoError(t, NewAuthService(&fakeClient{}, s).Logout(context.Background()))
	assert.False(t, s.Active())
}
