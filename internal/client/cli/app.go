package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/libhub/internal/client/client"
	"github.com/dmitrijs2005/libhub/internal/client/config"
	"github.com/dmitrijs2005/libhub/internal/client/services"
	"github.com/dmitrijs2005/libhub/internal/client/session"

	_ "modernc.org/sqlite"
)

type App struct {
	config      *config.Config
	db          *sql.DB
	session     *session.Session
	authService services.AuthService
	libService  services.LibraryService
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	db, err := client.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing session database: %w", err)
	}

	s := session.New(db)
	if err := s.Restore(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error restoring session: %w", err)
	}

	api := client.NewAPIClient(c.ServerBaseURL, c.RequestTimeout)

	return &App{
		config:      c,
		db:          db,
		session:     s,
		authService: services.NewAuthService(api, s),
		libService:  services.NewLibraryService(api, s),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	if err := a.authService.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Warning: %s is not reachable (%v)\n", a.config.ServerBaseURL, err)
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session.Active()
}

// status is shown in the prompt.
func (a *App) status() string {
	if u := a.session.User(); u != nil && a.session.Active() {
		return u.Email
	}
	return "guest"
}
