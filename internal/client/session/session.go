// Package session holds the CLI's explicit session context: the bearer
// token and the user it was issued to. It is persisted in the metadata
// store so a login survives restarts.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/libhub/internal/client/models"
	"github.com/dmitrijs2005/libhub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/libhub/internal/dbx"
)

const (
	keyToken = "session.token"
	keyUser  = "session.user"
)

type Session struct {
	mu    sync.RWMutex
	db    *sql.DB
	token string
	user  *models.User
}

func New(db *sql.DB) *Session {
	return &Session{db: db}
}

// Restore loads a previously saved session. A missing or unreadable user
// record leaves the session empty.
func (s *Session) Restore(ctx context.Context) error {
	repo := metadata.NewSQLiteRepository(s.db)

	token, err := repo.Get(ctx, keyToken)
	if err != nil {
		return err
	}
	rawUser, err := repo.Get(ctx, keyUser)
	if err != nil {
		return err
	}
	if len(token) == 0 || len(rawUser) == 0 {
		return nil
	}

	var u models.User
	if err := json.Unmarshal(rawUser, &u); err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = string(token)
	s.user = &u
	return nil
}

// Start replaces the session with a fresh token and user and persists both.
func (s *Session) Start(ctx context.Context, token string, u *models.User) error {
	rawUser, err := json.Marshal(u)
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, keyToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, keyUser, rawUser)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = u
	return nil
}

// UpdateUser refreshes the cached user, e.g. after a profile change.
func (s *Session) UpdateUser(ctx context.Context, u *models.User) error {
	if !s.Active() {
		return nil
	}
	rawUser, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := metadata.NewSQLiteRepository(s.db).Set(ctx, keyUser, rawUser); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	return nil
}

// Invalidate forgets the session in memory and in the store.
func (s *Session) Invalidate(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Delete(ctx, keyToken); err != nil {
			return err
		}
		return repo.Delete(ctx, keyUser)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the session user, or nil.
func (s *Session) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}
