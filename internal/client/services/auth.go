// Package services implements the CLI's use cases on top of the API client
// and the session context.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/libhub/internal/client/client"
	"github.com/dmitrijs2005/libhub/internal/client/models"
	"github.com/dmitrijs2005/libhub/internal/client/session"
)

// ErrNotLoggedIn is returned by calls that need a session when there is none.
var ErrNotLoggedIn = errors.New("not logged in")

// AuthService covers account and profile operations.
type AuthService interface {
	Register(ctx context.Context, req client.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, firstName, lastName string) (*models.User, error)
	Users(ctx context.Context) ([]*models.User, error)
	SetUserStatus(ctx context.Context, userID, status string) (*models.User, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session *session.Session
}

func NewAuthService(c client.Client, s *session.Session) AuthService {
	return &authService{client: c, session: s}
}

// guard returns the session token, or ErrNotLoggedIn.
func guard(s *session.Session) (string, error) {
	token := s.Token()
	if token == "" {
		return "", ErrNotLoggedIn
	}
	return token, nil
}

// checkAuth drops the session when the server no longer accepts its token.
func checkAuth(ctx context.Context, s *session.Session, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, client.ErrUnauthorized) {
		if ierr := s.Invalidate(ctx); ierr != nil {
			return errors.Join(err, ierr)
		}
	}
	return err
}

// Register creates the account and starts a session with the returned token.
func (a *authService) Register(ctx context.Context, req client.RegisterRequest) (*models.User, error) {
	res, err := a.client.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := a.session.Start(ctx, res.Token, res.User); err != nil {
		return nil, err
	}
	return res.User, nil
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	res, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return nil, err
	}
	if err := a.session.Start(ctx, res.Token, res.User); err != nil {
		return nil, err
	}
	return res.User, nil
}

// Logout is local only: tokens are not revoked server-side.
func (a *authService) Logout(ctx context.Context) error {
	return a.session.Invalidate(ctx)
}

func (a *authService) Profile(ctx context.Context) (*models.User, error) {
	token, err := guard(a.session)
	if err != nil {
		return nil, err
	}
	u, err := a.client.Profile(ctx, token)
	if err := checkAuth(ctx, a.session, err); err != nil {
		return nil, err
	}
	if err := a.session.UpdateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("cache profile: %w", err)
	}
	return u, nil
}

// UpdateProfile changes the names; empty arguments are left unchanged.
func (a *authService) UpdateProfile(ctx context.Context, firstName, lastName string) (*models.User, error) {
	token, err := guard(a.session)
	if err != nil {
		return nil, err
	}

	var upd client.ProfileUpdate
	if firstName != "" {
		upd.FirstName = &firstName
	}
	if lastName != "" {
		upd.LastName = &lastName
	}

	u, err := a.client.UpdateProfile(ctx, token, upd)
	if err := checkAuth(ctx, a.session, err); err != nil {
		return nil, err
	}
	if err := a.session.UpdateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("cache profile: %w", err)
	}
	return u, nil
}

func (a *authService) Users(ctx context.Context) ([]*models.User, error) {
	token, err := guard(a.session)
	if err != nil {
		return nil, err
	}
	users, err := a.client.Users(ctx, token)
	if err := checkAuth(ctx, a.session, err); err != nil {
		return nil, err
	}
	return users, nil
}

func (a *authService) SetUserStatus(ctx context.Context, userID, status string) (*models.User, error) {
	token, err := guard(a.session)
	if err != nil {
		return nil, err
	}
	u, err := a.client.SetUserStatus(ctx, token, userID, status)
	if err := checkAuth(ctx, a.session, err); err != nil {
		return nil, err
	}
	return u, nil
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
