package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
	"github.com/amberbeaumont/IThelpdesklite/internal/repository"
)

type EquipmentRepo struct {
	mu     sync.RWMutex
	items  []models.Equipment
	nextID int64
}

func NewEquipmentRepo(seed ...models.Equipment) *EquipmentRepo {
	r := &EquipmentRepo{nextID: 1}
	for _, e := range seed {
		r.items = append(r.items, e)
		r.nextID = max(r.nextID, e.ID+1)
	}
	return r
}

func (r *EquipmentRepo) All(_ context.Context) ([]models.Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.items), nil
}

func (r *EquipmentRepo) Get(_ context.Context, id int64) (*models.Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.items {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, nil
}

func (r *EquipmentRepo) Create(_ context.Context, e *models.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	e.ID = r.nextID
	r.nextID++
	e.CreatedAt, e.UpdatedAt = now, now
	r.items = append(r.items, *e)
	return nil
}

func (r *EquipmentRepo) Update(_ context.Context, e *models.Equipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == e.ID {
			e.CreatedAt = r.items[i].CreatedAt
			e.UpdatedAt = time.Now()
			r.items[i] = *e
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *EquipmentRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = slices.Delete(r.items, i, i+1)
			return nil
		}
	}
	return repository.ErrNotFound
}
