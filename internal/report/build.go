package report

import (
	"fmt"

	"golang.org/x/text/language"
)

// Query is everything a build needs besides the snapshot.
type Query struct {
	Fields []string
	Sort   Sort
	Range  DateRange
	Locale language.Tag // string ordering; zero value is the root collation
}

type Column struct {
	Key        string     `json:"key"`
	Label      string     `json:"label"`
	Collection Collection `json:"collection"`
}

// Row maps selected field keys to resolved values.
type Row map[string]Value

type Table struct {
	Primary Collection `json:"primary,omitempty"`
	Columns []Column   `json:"columns"`
	Rows    []Row      `json:"rows"`
}

// Cells returns row i in column order.
func (t *Table) Cells(i int) []Value {
	out := make([]Value, len(t.Columns))
	for j, c := range t.Columns {
		out[j] = t.Rows[i][c.Key]
	}
	return out
}

// Exportable reports whether there is anything to export. Callers check it
// before serializing.
func (t *Table) Exportable() bool { return len(t.Columns) > 0 && len(t.Rows) > 0 }

// Build produces one row per record of the primary collection (the owner of
// the first field), filtered by q.Range and sorted by q.Sort. No fields is an
// empty table, not an error.
func (c *Catalog) Build(s *Snapshot, q Query) (Table, error) {
	t := Table{Columns: []Column{}, Rows: []Row{}}
	if len(q.Fields) == 0 {
		return t, nil
	}

	fields := make([]Field, 0, len(q.Fields))
	seen := make(map[string]struct{}, len(q.Fields))
	for _, k := range q.Fields {
		f, ok := c.Lookup(k)
		if !ok {
			return Table{}, fmt.Errorf("%w: %s", ErrUnknownField, k)
		}
		if _, dup := seen[k]; dup {
			return Table{}, fmt.Errorf("%w: %s", ErrDuplicateField, k)
		}
		seen[k] = struct{}{}
		fields = append(fields, f)
		t.Columns = append(t.Columns, Column{Key: f.Key, Label: f.Label, Collection: f.Owner})
	}
	if q.Sort.Key != "" {
		if _, ok := seen[q.Sort.Key]; !ok {
			return Table{}, fmt.Errorf("%w: %s", ErrFieldNotSelected, q.Sort.Key)
		}
	}

	t.Primary = fields[0].Owner
	n := s.Len(t.Primary)
	for i := 0; i < n; i++ {
		if !q.Range.IsZero() {
			if d, ok := dateOf(s, t.Primary, i); ok && !q.Range.Contains(d) {
				continue
			}
		}
		row := make(Row, len(fields))
		for _, f := range fields {
			row[f.Key] = resolveOn(f, t.Primary, s, i)
		}
		t.Rows = append(t.Rows, row)
	}

	SortRows(t.Rows, q.Sort, q.Locale)
	return t, nil
}

// Build runs q against the default catalog.
func Build(s *Snapshot, q Query) (Table, error) { return Default.Build(s, q) }
