package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
	"github.com/amberbeaumont/IThelpdesklite/internal/repository"
)

type userRow struct {
	models.User
	hash string
}

type UserRepo struct {
	mu    sync.RWMutex
	items []userRow
}

func NewUserRepo(seed ...models.User) *UserRepo {
	r := &UserRepo{}
	for _, u := range seed {
		r.items = append(r.items, userRow{User: u})
	}
	return r
}

func (r *UserRepo) Create(_ context.Context, u *models.User, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.items {
		if strings.EqualFold(x.Email, u.Email) {
			return repository.ErrConflict
		}
	}
	now := time.Now()
	u.ID = uuid.NewString()
	u.CreatedAt, u.UpdatedAt = now, now
	r.items = append(r.items, userRow{User: *u, hash: passwordHash})
	return nil
}

// SetPassword stores a hash for a seeded user.
func (r *UserRepo) SetPassword(id, passwordHash string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items[i].hash = passwordHash
		}
	}
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*models.User, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, x := range r.items {
		if strings.EqualFold(x.Email, strings.TrimSpace(email)) {
			u := x.User
			return &u, x.hash, nil
		}
	}
	return nil, "", nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, x := range r.items {
		if x.ID == id {
			u := x.User
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context, q, role string, limit, offset int) ([]models.User, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset = max(offset, 0)
	q = strings.ToLower(strings.TrimSpace(q))

	r.mu.RLock()
	var out []models.User
	for _, x := range r.items {
		if q != "" && !strings.Contains(strings.ToLower(x.Email), q) && !strings.Contains(strings.ToLower(x.Name), q) {
			continue
		}
		if role != "" && string(x.Role) != role {
			continue
		}
		out = append(out, x.User)
	}
	r.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b models.User) int { return strings.Compare(a.Name, b.Name) })
	total := len(out)
	if offset >= total {
		return []models.User{}, total, nil
	}
	return out[offset:min(offset+limit, total)], total, nil
}

func (r *UserRepo) All(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.User, len(r.items))
	for i, x := range r.items {
		out[i] = x.User
	}
	return out, nil
}

func (r *UserRepo) UpdateRole(_ context.Context, id string, role models.Role) (*models.User, error) {
	return r.update(id, func(u *models.User) { u.Role = role })
}

func (r *UserRepo) UpdateBasic(_ context.Context, id, name, businessUnit string) (*models.User, error) {
	return r.update(id, func(u *models.User) { u.Name, u.BusinessUnit = name, businessUnit })
}

func (r *UserRepo) update(id string, fn func(*models.User)) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			fn(&r.items[i].User)
			r.items[i].UpdatedAt = time.Now()
			u := r.items[i].User
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepo) FirstSupportID(_ context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, x := range r.items {
		if x.Role == models.RoleITSupport || x.Role == models.RoleAdmin {
			return x.ID, nil
		}
	}
	return "", repository.ErrNotFound
}
