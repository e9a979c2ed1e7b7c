package report

import (
	"strings"
	"testing"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_KeysNamespacedByOwner(t *testing.T) {
	for _, f := range Default.Fields() {
		require.True(t, strings.HasPrefix(f.Key, f.Owner.prefix()+"."), f.Key)
		got, ok := Default.Lookup(f.Key)
		require.True(t, ok)
		require.Equal(t, f.Label, got.Label)
	}
	require.NotEmpty(t, Default.ByCollection(Tickets))
	require.NotEmpty(t, Default.ByCollection(Equipment))
	require.NotEmpty(t, Default.ByCollection(Users))
}

func TestNewCatalog_RejectsDuplicates(t *testing.T) {
	f := UserField("name", "Name", func(u *models.User, _ *Snapshot) Value { return Text(u.Name) })
	_, err := NewCatalog(f, f)
	require.ErrorIs(t, err, ErrDuplicateField)

	_, err = NewCatalog(Field{Key: "user.broken"})
	require.Error(t, err)
}

func TestCatalog_FieldsIsACopy(t *testing.T) {
	fs := Default.Fields()
	fs[0].Label = "changed"
	f, _ := Default.Lookup(fs[0].Key)
	require.NotEqual(t, "changed", f.Label)
}

func resolve(t *testing.T, s *Snapshot, key string, i int) string {
	t.Helper()
	f, ok := Default.Lookup(key)
	require.True(t, ok, key)
	return f.Resolve(s, i).String()
}

func TestAssigneeSentinels_AreDistinct(t *testing.T) {
	s := fixture()
	require.Equal(t, "Charlie Root", resolve(t, s, "ticket.assignedTo", 0))
	require.Equal(t, Unassigned, resolve(t, s, "ticket.assignedTo", 1))
	require.Equal(t, UnknownUser, resolve(t, s, "ticket.assignedTo", 2))
	require.NotEqual(t, Unassigned, UnknownUser)

	require.Equal(t, "Alice Wonderland", resolve(t, s, "equipment.assignedTo", 0))
	require.Equal(t, Unassigned, resolve(t, s, "equipment.assignedTo", 1))
	require.Equal(t, UnknownUser, resolve(t, s, "equipment.assignedTo", 2))
	require.Equal(t, UnknownUser, resolve(t, s, "equipment.assigneeEmail", 2))
}

func TestUserAggregates_UseExplicitSentinels(t *testing.T) {
	s := fixture()
	// alice: tickets 1 (Open) and 3 (In Progress); bob: ticket 2 (Closed).
	require.Equal(t, "2", resolve(t, s, "user.openTickets", 0))
	require.Equal(t, NoTickets, resolve(t, s, "user.openTickets", 1))
	require.Equal(t, "1", resolve(t, s, "user.assignedOpenTickets", 2))
	require.Equal(t, NoTickets, resolve(t, s, "user.assignedOpenTickets", 0))

	require.Equal(t, "Dell XPS 15, ThinkPad", resolve(t, s, "user.equipment", 0))
	require.Equal(t, None, resolve(t, s, "user.equipment", 1))
}

func TestOptionalFields_ResolveToNull(t *testing.T) {
	s := fixture()
	f, _ := Default.Lookup("ticket.problemType")
	require.True(t, f.Resolve(s, 0).IsNull())

	f, _ = Default.Lookup("equipment.acquiredAt")
	require.True(t, f.Resolve(s, 3).IsNull())
	require.Equal(t, "Jan 15, 2023", f.Resolve(s, 0).String())
}

func TestResolvers_DoNotMutateSnapshot(t *testing.T) {
	s := fixture()
	before := *fixture()
	for _, f := range Default.Fields() {
		for i := 0; i < s.Len(f.Owner); i++ {
			_ = f.Resolve(s, i)
		}
	}
	require.Equal(t, before, *s)
}
