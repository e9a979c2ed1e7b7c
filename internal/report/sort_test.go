package report

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func rowsOf(key string, vals ...Value) []Row {
	out := make([]Row, len(vals))
	for i, v := range vals {
		out[i] = Row{key: v, "pos": Number(float64(i))}
	}
	return out
}

func positions(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r["pos"].String()
	}
	return out
}

func TestSortRows_NullsFirstAscendingLastDescending(t *testing.T) {
	rows := rowsOf("k", Text("b"), Null(), Text("a"))
	SortRows(rows, Sort{Key: "k"}, language.English)
	require.Equal(t, []string{"1", "2", "0"}, positions(rows))

	SortRows(rows, Sort{Key: "k", Desc: true}, language.English)
	require.Equal(t, []string{"0", "2", "1"}, positions(rows))
}

func TestSortRows_Numeric(t *testing.T) {
	rows := rowsOf("k", Number(10), Number(9), Number(100))
	SortRows(rows, Sort{Key: "k"}, language.English)
	require.Equal(t, []string{"1", "0", "2"}, positions(rows))
}

func TestSortRows_LocaleAware(t *testing.T) {
	rows := rowsOf("k", Text("b"), Text("B"), Text("a"), Text("é"))
	SortRows(rows, Sort{Key: "k"}, language.English)
	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r["k"].String()
	}
	require.Equal(t, []string{"a", "b", "B", "é"}, got)
}

func TestSortRows_MixedKindsCompareLowercased(t *testing.T) {
	rows := rowsOf("k", Text(NoTickets), Number(2), Number(10))
	SortRows(rows, Sort{Key: "k"}, language.English)
	// numbers still compare numerically with each other; text against a
	// number is compared as lower-cased strings.
	require.Equal(t, "2", rows[0]["k"].String())
	require.Equal(t, "10", rows[1]["k"].String())
	require.Equal(t, NoTickets, rows[2]["k"].String())
}

func TestSortRows_StableTwiceReverses(t *testing.T) {
	rows := rowsOf("k", Text("x"), Text("a"), Text("x"), Text("m"), Text("a"))
	SortRows(rows, Sort{Key: "k"}, language.English)
	require.Equal(t, []string{"1", "4", "3", "0", "2"}, positions(rows))

	SortRows(rows, Sort{Key: "k", Desc: true}, language.English)
	// groups reversed, ties keep their relative order.
	require.Equal(t, []string{"0", "2", "3", "1", "4"}, positions(rows))
}

func TestSortRows_Timestamps(t *testing.T) {
	tbl, err := Build(fixture(), Query{
		Fields: []string{"ticket.id", "ticket.createdAt"},
		Sort:   Sort{Key: "ticket.createdAt", Desc: true},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"3", "2", "1"}, column(tbl, "ticket.id"))
}

func TestSortRows_NoKeyIsNoop(t *testing.T) {
	rows := rowsOf("k", Text("b"), Text("a"))
	SortRows(rows, Sort{}, language.English)
	require.Equal(t, []string{"0", "1"}, positions(rows))
}
