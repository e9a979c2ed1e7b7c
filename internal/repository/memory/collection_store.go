package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
)

// CollectionStore is an in-memory repository.CollectionStore.
type CollectionStore[T models.Item] struct {
	mu    sync.RWMutex
	items []T
}

func NewCollectionStore[T models.Item](seed ...T) *CollectionStore[T] {
	return &CollectionStore[T]{items: slices.Clone(seed)}
}

func (s *CollectionStore[T]) List(_ context.Context) ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items), nil
}

func (s *CollectionStore[T]) ReplaceAll(_ context.Context, items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = slices.Clone(items)
	return nil
}
