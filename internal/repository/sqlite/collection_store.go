package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
)

// CollectionStore persists one named workspace collection as a JSON document.
type CollectionStore[T models.Item] struct {
	db   *DB
	name string
}

func NewCollectionStore[T models.Item](db *DB, name string) *CollectionStore[T] {
	return &CollectionStore[T]{db: db, name: name}
}

func (s *CollectionStore[T]) List(ctx context.Context) ([]T, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM collections WHERE name = ?`, s.name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.name, err)
	}
	var items []T
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.name, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *CollectionStore[T]) ReplaceAll(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	body, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.name, err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO collections (name, body, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		s.name, string(body))
	if err != nil {
		return fmt.Errorf("store %s: %w", s.name, err)
	}
	return nil
}
