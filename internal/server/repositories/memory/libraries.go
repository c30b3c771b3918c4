package memory

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/libhub/internal/common"
	"github.com/dmitrijs2005/libhub/internal/server/models"
)

// LibrariesRepository mirrors the PostgreSQL schema, including the rule
// that a user has at most one active library.
type LibrariesRepository struct {
	mu    sync.Mutex
	rows  []*models.Library
	seq   int
	clock time.Time
}

func NewLibrariesRepository() *LibrariesRepository {
	return &LibrariesRepository{clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (r *LibrariesRepository) activeCount(userID string) int {
	n := 0
	for _, l := range r.rows {
		if l.UserID == userID && l.IsActive {
			n++
		}
	}
	return n
}

func (r *LibrariesRepository) find(id, userID string) *models.Library {
	for _, l := range r.rows {
		if l.ID == id && l.UserID == userID {
			return l
		}
	}
	return nil
}

// tick hands out strictly increasing timestamps so ordering by creation
// time is deterministic.
func (r *LibrariesRepository) tick() time.Time {
	r.clock = r.clock.Add(time.Minute)
	return r.clock
}

func (r *LibrariesRepository) List(ctx context.Context, userID string) ([]*models.Library, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Library, 0)
	for _, l := range r.rows {
		if l.UserID == userID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsActive != out[j].IsActive {
			return out[i].IsActive
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *LibrariesRepository) GetActive(ctx context.Context, userID string) (*models.Library, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.rows {
		if l.UserID == userID && l.IsActive {
			cp := *l
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *LibrariesRepository) GetOwned(ctx context.Context, id, userID string) (*models.Library, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l := r.find(id, userID)
	if l == nil {
		return nil, common.ErrorNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *LibrariesRepository) Count(ctx context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, l := range r.rows {
		if l.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *LibrariesRepository) DeactivateAll(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.rows {
		if l.UserID == userID && l.IsActive {
			l.IsActive = false
			l.UpdatedAt = r.tick()
		}
	}
	return nil
}

func (r *LibrariesRepository) Insert(ctx context.Context, lib *models.Library) (*models.Library, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if lib.IsActive && r.activeCount(lib.UserID) > 0 {
		return nil, fmt.Errorf("second active library: %w", common.ErrorConflict)
	}
	r.seq++
	cp := *lib
	cp.ID = "l-" + strconv.Itoa(r.seq)
	cp.CreatedAt = r.tick()
	cp.UpdatedAt = cp.CreatedAt
	r.rows = append(r.rows, &cp)
	out := cp
	return &out, nil
}

func (r *LibrariesRepository) Activate(ctx context.Context, id, userID string) (*models.Library, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l := r.find(id, userID)
	if l == nil {
		return nil, common.ErrorNotFound
	}
	if !l.IsActive && r.activeCount(userID) > 0 {
		return nil, fmt.Errorf("second active library: %w", common.ErrorConflict)
	}
	l.IsActive = true
	l.UpdatedAt = r.tick()
	cp := *l
	return &cp, nil
}

func (r *LibrariesRepository) Update(ctx context.Context, id, userID string, p models.LibraryPatch) (*models.Library, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l := r.find(id, userID)
	if l == nil {
		return nil, common.ErrorNotFound
	}
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.ImageURL != nil {
		if *p.ImageURL == "" {
			l.ImageURL = nil
		} else {
			v := *p.ImageURL
			l.ImageURL = &v
		}
	}
	l.UpdatedAt = r.tick()
	cp := *l
	return &cp, nil
}

func (r *LibrariesRepository) Delete(ctx context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.rows {
		if l.ID == id && l.UserID == userID {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

func (r *LibrariesRepository) PickSibling(ctx context.Context, userID, excludeID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var best *models.Library
	for _, l := range r.rows {
		if l.UserID == userID && l.ID != excludeID && (best == nil || l.CreatedAt.After(best.CreatedAt)) {
			best = l
		}
	}
	if best == nil {
		return "", common.ErrorNotFound
	}
	return best.ID, nil
}
