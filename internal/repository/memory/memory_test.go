package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
	"github.com/amberbeaumont/IThelpdesklite/internal/repository"
)

func seededTickets(t *testing.T) *TicketRepo {
	t.Helper()
	return NewTicketRepo(DemoSeed(time.Now()).Tickets...)
}

func TestTicketRepo_CreateAssignsNextID(t *testing.T) {
	r := seededTickets(t)
	tk := &models.Ticket{Subject: "VPN down", RequesterEmail: "alice@example.com", Urgency: models.UrgencyLow}
	require.NoError(t, r.Create(context.Background(), tk))
	require.Equal(t, int64(3), tk.ID)
	require.Equal(t, models.StatusOpen, tk.Status)

	got, err := r.Get(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, "VPN down", got.Subject)
}

func TestTicketRepo_GetMissingReturnsNil(t *testing.T) {
	got, err := seededTickets(t).Get(context.Background(), 99)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestTicketRepo_ListFilters(t *testing.T) {
	r := seededTickets(t)
	ctx := context.Background()

	items, total, err := r.List(ctx, repository.TicketFilter{Q: "printer"})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, int64(2), items[0].ID)

	_, total, err = r.List(ctx, repository.TicketFilter{Requester: "ALICE@example.com"})
	require.NoError(t, err)
	require.Equal(t, 1, total)

	items, _, err = r.List(ctx, repository.TicketFilter{Sort: "urgency", Order: "desc"})
	require.NoError(t, err)
	require.Equal(t, models.UrgencyHigh, items[0].Urgency)

	items, total, err = r.List(ctx, repository.TicketFilter{Limit: 1, Offset: 5})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Empty(t, items)
}

func TestTicketRepo_UpdateAndComment(t *testing.T) {
	r := seededTickets(t)
	ctx := context.Background()

	tk, err := r.Get(ctx, 1)
	require.NoError(t, err)
	tk.Status = models.StatusClosed
	require.NoError(t, r.Update(ctx, tk))

	c := &models.Comment{TicketID: 1, UserName: "Charlie Root", Text: "fixed"}
	require.NoError(t, r.AddComment(ctx, c))
	require.NotEmpty(t, c.ID)

	got, err := r.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, models.StatusClosed, got.Status)
	require.Len(t, got.Comments, 1)

	require.ErrorIs(t, r.Update(ctx, &models.Ticket{ID: 42}), repository.ErrNotFound)
	require.ErrorIs(t, r.AddComment(ctx, &models.Comment{TicketID: 42}), repository.ErrNotFound)
}

func TestTicketRepo_AllReturnsCopies(t *testing.T) {
	r := seededTickets(t)
	all, err := r.All(context.Background())
	require.NoError(t, err)
	all[0].Subject = "mutated"

	got, _ := r.Get(context.Background(), all[0].ID)
	require.NotEqual(t, "mutated", got.Subject)
}

func TestUserRepo(t *testing.T) {
	r := NewUserRepo(DemoSeed(time.Now()).Users...)
	ctx := context.Background()

	u := &models.User{Email: "eve@example.com", Name: "Eve", Role: models.RoleUser}
	require.NoError(t, r.Create(ctx, u, "hash"))
	require.NotEmpty(t, u.ID)
	require.ErrorIs(t, r.Create(ctx, &models.User{Email: "EVE@example.com"}, "x"), repository.ErrConflict)

	got, hash, err := r.GetByEmail(ctx, "Eve@Example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "hash", hash)

	list, total, err := r.List(ctx, "", string(models.RoleUser), 0, 0)
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Equal(t, "Alice Wonderland", list[0].Name)

	up, err := r.UpdateRole(ctx, u.ID, models.RoleManager)
	require.NoError(t, err)
	require.Equal(t, models.RoleManager, up.Role)

	_, err = r.UpdateBasic(ctx, "nobody", "x", "")
	require.ErrorIs(t, err, repository.ErrNotFound)

	id, err := r.FirstSupportID(ctx)
	require.NoError(t, err)
	require.Equal(t, "it-charlie", id)
}

func TestEquipmentRepo(t *testing.T) {
	r := NewEquipmentRepo(DemoSeed(time.Now()).Equipment...)
	ctx := context.Background()

	e := &models.Equipment{Name: "ThinkPad", Status: "Operational"}
	require.NoError(t, r.Create(ctx, e))
	require.Equal(t, int64(4), e.ID)

	e.Status = "In Repair"
	require.NoError(t, r.Update(ctx, e))
	got, err := r.Get(ctx, 4)
	require.NoError(t, err)
	require.Equal(t, models.EquipmentStatus("In Repair"), got.Status)

	require.NoError(t, r.Delete(ctx, 4))
	got, err = r.Get(ctx, 4)
	require.NoError(t, err)
	require.Nil(t, got)
	require.ErrorIs(t, r.Delete(ctx, 4), repository.ErrNotFound)
}

func TestCollectionStore(t *testing.T) {
	s := NewCollectionStore(models.Bookmark{ID: "b1", Name: "Wiki"})
	ctx := context.Background()

	items, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, s.ReplaceAll(ctx, nil))
	items, err = s.List(ctx)
	require.NoError(t, err)
	require.Empty(t, items)
}
