package report

import (
	"strings"
	"testing"
	"time"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
	"github.com/stretchr/testify/require"
)

func TestEscapeCell(t *testing.T) {
	require.Equal(t, "plain", EscapeCell("plain"))
	require.Equal(t, `"a,b"`, EscapeCell("a,b"))
	require.Equal(t, `say ""hi""`, EscapeCell(`say "hi"`))
	require.Equal(t, `"say ""hi"", then"`, EscapeCell(`say "hi", then`))
	require.Equal(t, "two\nlines", EscapeCell("two\nlines"))
}

// splitLine splits on commas outside quoted segments and undoes the quote
// doubling.
func splitLine(line string) []string {
	var out []string
	var cur strings.Builder
	quoted := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"' && quoted && i+1 < len(line) && line[i+1] == '"':
			cur.WriteByte('"')
			i++
		case c == '"' && cur.Len() == 0 && !quoted:
			quoted = true
		case c == '"' && quoted:
			quoted = false
		case c == ',' && !quoted:
			out = append(out, cur.String())
			cur.Reset()
		case c == '"':
			// doubled quote in an unquoted cell
			cur.WriteByte('"')
			i++
		default:
			cur.WriteByte(c)
		}
	}
	return append(out, cur.String())
}

func TestTableCSV_RoundTrip(t *testing.T) {
	s := fixture()
	s.Tickets[0].Subject = `Crash, "again"`
	tbl, err := Build(s, Query{Fields: []string{"ticket.id", "ticket.subject", "ticket.assignedTo", "equipment.name"}})
	require.NoError(t, err)

	out := tbl.CSV()
	require.False(t, strings.HasSuffix(out, "\n"))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, len(tbl.Rows)+1)
	require.Equal(t, []string{"Ticket ID", "Subject", "Assigned To", "Name"}, splitLine(lines[0]))

	for i, line := range lines[1:] {
		cells := tbl.Cells(i)
		want := make([]string, len(cells))
		for j, v := range cells {
			want[j] = v.String()
		}
		require.Equal(t, want, splitLine(line))
	}
	require.Equal(t, `1,"Crash, ""again""",Charlie Root,"Dell XPS 15, ThinkPad"`, lines[1])
}

func TestTableCSV_HeadersOnly(t *testing.T) {
	tbl, err := Build(&Snapshot{}, Query{Fields: []string{"user.name", "user.email"}})
	require.NoError(t, err)
	require.False(t, tbl.Exportable())
	require.Equal(t, "Name,Email", tbl.CSV())
}

func TestTableCSV_BadgeWithoutTextExportsPlaceholder(t *testing.T) {
	tbl := Table{
		Columns: []Column{{Key: "x", Label: "Icon"}},
		Rows:    []Row{{"x": Badge("", "laptop")}, {"x": Badge("Open", "default")}},
	}
	require.Equal(t, "Icon\n[laptop]\nOpen", tbl.CSV())
}

func TestTableCSV_StatusBadgesExportText(t *testing.T) {
	s := &Snapshot{Tickets: []models.Ticket{{ID: 1, Status: models.StatusWaitingUser}}}
	tbl, err := Build(s, Query{Fields: []string{"ticket.status"}})
	require.NoError(t, err)
	require.Equal(t, "Status\nWaiting on User", tbl.CSV())
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 3, 5, 17, 0, 0, 0, time.UTC)
	require.Equal(t, "report-tickets-2024-03-05.csv", Filename(Tickets, now))
	require.Equal(t, "report-custom-2024-03-05.csv", Filename("", now))
}
