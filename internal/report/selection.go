package report

import (
	"errors"
	"fmt"
	"slices"
)

var ErrFieldNotSelected = errors.New("report: field is not selected")

type State uint8

const (
	Empty State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "empty"
}

// Sort is the single active sort key. A zero Sort means unsorted.
type Sort struct {
	Key  string `json:"key,omitempty"`
	Desc bool   `json:"desc,omitempty"`
}

// Selection is the caller's ordered field choice plus sort and date range.
// The primary collection is always the owner of the first selected field and
// is recomputed on every toggle; fields of other collections stay selected.
// A Selection is not safe for concurrent use.
type Selection struct {
	catalog *Catalog
	keys    []string
	sort    Sort
	rng     DateRange
}

func NewSelection(c *Catalog) *Selection {
	if c == nil {
		c = Default
	}
	return &Selection{catalog: c}
}

// Toggle appends key if absent or removes it if present; survivors keep their
// relative order. Removing the sorted column clears the sort.
func (s *Selection) Toggle(key string) error {
	if _, ok := s.catalog.Lookup(key); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	if i := slices.Index(s.keys, key); i >= 0 {
		s.keys = slices.Delete(s.keys, i, i+1)
		if s.sort.Key == key || len(s.keys) == 0 {
			s.sort = Sort{}
		}
		return nil
	}
	s.keys = append(s.keys, key)
	return nil
}

// ToggleSort sorts by key ascending, or flips the direction when key is
// already the sort key.
func (s *Selection) ToggleSort(key string) error {
	if !slices.Contains(s.keys, key) {
		return fmt.Errorf("%w: %s", ErrFieldNotSelected, key)
	}
	if s.sort.Key == key {
		s.sort.Desc = !s.sort.Desc
		return nil
	}
	s.sort = Sort{Key: key}
	return nil
}

func (s *Selection) SetRange(r DateRange) { s.rng = r }

func (s *Selection) Reset() {
	s.keys = nil
	s.sort = Sort{}
	s.rng = DateRange{}
}

func (s *Selection) State() State {
	if len(s.keys) == 0 {
		return Empty
	}
	return Active
}

func (s *Selection) Keys() []string { return slices.Clone(s.keys) }

func (s *Selection) Sort() Sort { return s.sort }

func (s *Selection) Range() DateRange { return s.rng }

// Primary returns the row-defining collection; false when nothing is selected.
func (s *Selection) Primary() (Collection, bool) {
	if len(s.keys) == 0 {
		return "", false
	}
	f, _ := s.catalog.Lookup(s.keys[0])
	return f.Owner, true
}

func (s *Selection) Query() Query {
	return Query{Fields: s.Keys(), Sort: s.sort, Range: s.rng}
}
