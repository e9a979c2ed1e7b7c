package report

import (
	"io"
	"strings"
	"time"
)

// EscapeCell doubles embedded quotes and wraps the cell in quotes only when it
// contains a comma. Newlines and lone quotes are not otherwise protected.
func EscapeCell(s string) string {
	s = strings.ReplaceAll(s, `"`, `""`)
	if strings.Contains(s, ",") {
		return `"` + s + `"`
	}
	return s
}

// CSV renders the header line and one line per row, joined by "\n" with no
// trailing newline.
func (t *Table) CSV() string {
	var b strings.Builder
	_ = t.WriteCSV(&b)
	return b.String()
}

func (t *Table) WriteCSV(w io.Writer) error {
	line := make([]string, len(t.Columns))
	for j, c := range t.Columns {
		line[j] = EscapeCell(c.Label)
	}
	if _, err := io.WriteString(w, strings.Join(line, ",")); err != nil {
		return err
	}
	for i := range t.Rows {
		for j, v := range t.Cells(i) {
			line[j] = EscapeCell(v.String())
		}
		if _, err := io.WriteString(w, "\n"+strings.Join(line, ",")); err != nil {
			return err
		}
	}
	return nil
}

// Filename is report-<collection>-<YYYY-MM-DD>.csv, with "custom" standing in
// for a table that has no primary collection.
func Filename(primary Collection, now time.Time) string {
	name := string(primary)
	if name == "" {
		name = "custom"
	}
	return "report-" + name + "-" + now.Format(DayLayout) + ".csv"
}
