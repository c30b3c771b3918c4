package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/libhub/internal/common"
	"github.com/dmitrijs2005/libhub/internal/server/models"
)

type UsersRepository struct {
	mu     sync.Mutex
	byID   map[string]*models.User
	seq    int
	locked []string
}

func NewUsersRepository() *UsersRepository {
	return &UsersRepository{byID: map[string]*models.User{}}
}

// Add stores u as is, assigning an id and creation time when missing.
func (r *UsersRepository) Add(u models.User) *models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.add(u)
}

func (r *UsersRepository) add(u models.User) *models.User {
	r.seq++
	if u.ID == "" {
		u.ID = "u-" + strconv.Itoa(r.seq)
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	}
	r.byID[u.ID] = &u
	cp := u
	return &cp
}

// Locked lists the user ids LockForUpdate was called with, in order.
func (r *UsersRepository) Locked() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.locked...)
}

func (r *UsersRepository) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, common.ErrorAlreadyExists
		}
	}
	u.ID = ""
	u.CreatedAt = time.Time{}
	stored := r.add(*u)
	*u = *stored
	return stored, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *UsersRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *UsersRepository) List(ctx context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.User, 0, len(r.byID))
	for _, u := range r.byID {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *UsersRepository) UpdateNames(ctx context.Context, id string, first, last *string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if first != nil {
		u.FirstName = *first
	}
	if last != nil {
		u.LastName = *last
	}
	cp := *u
	return &cp, nil
}

func (r *UsersRepository) UpdateStatus(ctx context.Context, id string, status models.Status) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.Status = status
	cp := *u
	return &cp, nil
}

func (r *UsersRepository) LockForUpdate(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return common.ErrorNotFound
	}
	r.locked = append(r.locked, id)
	return nil
}
