package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/libhub/internal/client/client"
	"github.com/dmitrijs2005/libhub/internal/client/models"
	"github.com/dmitrijs2005/libhub/internal/client/services"
)

// getSimpleText and getPassword are swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

var errUsage = errors.New("usage")

// describe turns an error into a line for the user.
func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, services.ErrNotLoggedIn):
		return "please log in first"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	case errors.As(err, &apiErr):
		return apiErr.Message
	}
	return err.Error()
}

func (a *App) Register(ctx context.Context) error {
	first, err := getSimpleText(a.reader, "First name", a.out)
	if err != nil {
		return err
	}
	last, err := getSimpleText(a.reader, "Last name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	u, err := a.authService.Register(ctx, client.RegisterRequest{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Password:  string(password),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s! You are logged in.\n", u.DisplayName())
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	u, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", u.DisplayName(), u.Role)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// WhoAmI prints the cached session user without calling the server.
func (a *App) WhoAmI(ctx context.Context) error {
	printUser(a, a.session.User())
	return nil
}

// Profile fetches the profile, or renames the user when names are given.
func (a *App) Profile(ctx context.Context, args []string) error {
	var (
		u   *models.User
		err error
	)
	switch len(args) {
	case 0:
		u, err = a.authService.Profile(ctx)
	case 1:
		u, err = a.authService.UpdateProfile(ctx, args[0], "")
	default:
		u, err = a.authService.UpdateProfile(ctx, args[0], strings.Join(args[1:], " "))
	}
	if err != nil {
		return err
	}
	printUser(a, u)
	return nil
}

func printUser(a *App, u *models.User) {
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}
	fmt.Fprintf(a.out, "%s <%s>\n  id: %s\n  role: %s\n  status: %s\n", u.DisplayName(), u.Email, u.ID, u.Role, u.Status)
}
