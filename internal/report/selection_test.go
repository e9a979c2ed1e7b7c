package report

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelection_EmptyToActive(t *testing.T) {
	s := NewSelection(nil)
	require.Equal(t, Empty, s.State())
	_, ok := s.Primary()
	require.False(t, ok)

	require.NoError(t, s.Toggle("equipment.name"))
	require.Equal(t, Active, s.State())
	p, ok := s.Primary()
	require.True(t, ok)
	require.Equal(t, Equipment, p)
}

func TestSelection_ToggleKeepsSurvivorOrder(t *testing.T) {
	s := NewSelection(nil)
	for _, k := range []string{"ticket.id", "ticket.subject", "ticket.status", "ticket.urgency"} {
		require.NoError(t, s.Toggle(k))
	}
	require.NoError(t, s.Toggle("ticket.subject"))
	require.Equal(t, []string{"ticket.id", "ticket.status", "ticket.urgency"}, s.Keys())

	require.NoError(t, s.Toggle("ticket.subject"))
	require.Equal(t, []string{"ticket.id", "ticket.status", "ticket.urgency", "ticket.subject"}, s.Keys())
}

func TestSelection_SecondCollectionDoesNotChangePrimary(t *testing.T) {
	s := NewSelection(nil)
	require.NoError(t, s.Toggle("user.name"))
	require.NoError(t, s.Toggle("ticket.subject"))
	p, _ := s.Primary()
	require.Equal(t, Users, p)
	require.Equal(t, []string{"user.name", "ticket.subject"}, s.Keys())
}

func TestSelection_DeselectPrimaryRecomputes(t *testing.T) {
	s := NewSelection(nil)
	require.NoError(t, s.Toggle("ticket.subject"))
	require.NoError(t, s.Toggle("equipment.name"))
	require.NoError(t, s.ToggleSort("ticket.subject"))

	require.NoError(t, s.Toggle("ticket.subject"))
	p, ok := s.Primary()
	require.True(t, ok)
	require.Equal(t, Equipment, p)
	require.Equal(t, Sort{}, s.Sort(), "sort on a withdrawn column must be cleared")
	require.Equal(t, []string{"equipment.name"}, s.Keys())
}

func TestSelection_SortSurvivesUnrelatedDeselect(t *testing.T) {
	s := NewSelection(nil)
	require.NoError(t, s.Toggle("ticket.subject"))
	require.NoError(t, s.Toggle("ticket.status"))
	require.NoError(t, s.ToggleSort("ticket.status"))
	require.NoError(t, s.Toggle("ticket.subject"))
	require.Equal(t, Sort{Key: "ticket.status"}, s.Sort())
}

func TestSelection_EmptyClearsSort(t *testing.T) {
	s := NewSelection(nil)
	require.NoError(t, s.Toggle("user.name"))
	require.NoError(t, s.ToggleSort("user.name"))
	require.NoError(t, s.Toggle("user.name"))
	require.Equal(t, Empty, s.State())
	require.Equal(t, Sort{}, s.Sort())
}

func TestSelection_ToggleSort(t *testing.T) {
	s := NewSelection(nil)
	require.NoError(t, s.Toggle("ticket.id"))
	require.NoError(t, s.Toggle("ticket.subject"))

	require.ErrorIs(t, s.ToggleSort("ticket.status"), ErrFieldNotSelected)

	require.NoError(t, s.ToggleSort("ticket.id"))
	require.Equal(t, Sort{Key: "ticket.id"}, s.Sort())
	require.NoError(t, s.ToggleSort("ticket.id"))
	require.Equal(t, Sort{Key: "ticket.id", Desc: true}, s.Sort())
	require.NoError(t, s.ToggleSort("ticket.subject"))
	require.Equal(t, Sort{Key: "ticket.subject"}, s.Sort())
}

func TestSelection_UnknownField(t *testing.T) {
	s := NewSelection(nil)
	require.ErrorIs(t, s.Toggle("ticket.bogus"), ErrUnknownField)
	require.Equal(t, Empty, s.State())
}

func TestSelection_QueryAndReset(t *testing.T) {
	s := NewSelection(Default)
	require.NoError(t, s.Toggle("ticket.id"))
	require.NoError(t, s.ToggleSort("ticket.id"))
	rng, err := NewDateRange(day(2024, 1, 1, 0, 0), day(2024, 1, 2, 0, 0))
	require.NoError(t, err)
	s.SetRange(rng)

	q := s.Query()
	require.Equal(t, []string{"ticket.id"}, q.Fields)
	require.Equal(t, Sort{Key: "ticket.id"}, q.Sort)
	require.Equal(t, rng, q.Range)

	q.Fields[0] = "mutated"
	require.Equal(t, []string{"ticket.id"}, s.Keys())

	s.Reset()
	require.Equal(t, Empty, s.State())
	require.True(t, s.Range().IsZero())
}
