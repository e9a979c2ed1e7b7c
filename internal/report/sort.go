package report

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortRows orders rows in place by s.Key. Nulls compare lowest before the
// direction is applied, so they lead ascending and trail descending. Ties
// keep their input order.
func SortRows(rows []Row, s Sort, locale language.Tag) {
	if s.Key == "" || len(rows) < 2 {
		return
	}
	col := collate.New(locale)
	slices.SortStableFunc(rows, func(a, b Row) int {
		r := compareValues(col, a[s.Key], b[s.Key])
		if s.Desc {
			return -r
		}
		return r
	})
}

func compareValues(col *collate.Collator, a, b Value) int {
	switch {
	case a.IsNull() && b.IsNull():
		return 0
	case a.IsNull():
		return -1
	case b.IsNull():
		return 1
	case a.Kind == KindNumber && b.Kind == KindNumber:
		return cmp.Compare(a.Num, b.Num)
	case a.Kind == KindTime && b.Kind == KindTime:
		return a.At.Compare(b.At)
	case a.Kind == KindText && b.Kind == KindText:
		return col.CompareString(a.String(), b.String())
	}
	return strings.Compare(strings.ToLower(a.String()), strings.ToLower(b.String()))
}
