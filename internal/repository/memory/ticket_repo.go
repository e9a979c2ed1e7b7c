package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
	"github.com/amberbeaumont/IThelpdesklite/internal/repository"
)

// TicketRepo is a process-local TicketRepository.
type TicketRepo struct {
	mu     sync.RWMutex
	items  []models.Ticket
	nextID int64
	now    func() time.Time
}

func NewTicketRepo(seed ...models.Ticket) *TicketRepo {
	r := &TicketRepo{now: time.Now, nextID: 1}
	for _, t := range seed {
		r.items = append(r.items, t)
		r.nextID = max(r.nextID, t.ID+1)
	}
	return r
}

func (r *TicketRepo) List(_ context.Context, f repository.TicketFilter) ([]models.Ticket, int, error) {
	limit, offset := f.Limit, f.Offset
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset = max(offset, 0)

	r.mu.RLock()
	var out []models.Ticket
	for _, t := range r.items {
		if matchTicket(t, f) {
			out = append(out, cloneTicket(t))
		}
	}
	r.mu.RUnlock()

	desc := !strings.EqualFold(f.Order, "asc")
	slices.SortStableFunc(out, func(a, b models.Ticket) int {
		var c int
		switch strings.ToLower(f.Sort) {
		case "created_at":
			c = a.CreatedAt.Compare(b.CreatedAt)
		case "urgency":
			c = cmp.Compare(slices.Index(models.Urgencies, a.Urgency), slices.Index(models.Urgencies, b.Urgency))
		default:
			c = a.UpdatedAt.Compare(b.UpdatedAt)
		}
		if desc {
			c = -c
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		return c
	})

	total := len(out)
	if offset >= total {
		return []models.Ticket{}, total, nil
	}
	return out[offset:min(offset+limit, total)], total, nil
}

func matchTicket(t models.Ticket, f repository.TicketFilter) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Q)); q != "" &&
		!strings.Contains(strings.ToLower(t.Subject), q) && !strings.Contains(strings.ToLower(t.Message), q) {
		return false
	}
	if f.Status != "" && string(t.Status) != f.Status {
		return false
	}
	if f.Urgency != "" && string(t.Urgency) != f.Urgency {
		return false
	}
	if f.ProblemType != "" && string(t.ProblemType) != f.ProblemType {
		return false
	}
	if f.Assignee != "" && t.AssignedTo != f.Assignee {
		return false
	}
	if f.Requester != "" && !strings.EqualFold(t.RequesterEmail, f.Requester) {
		return false
	}
	return true
}

func (r *TicketRepo) All(_ context.Context) ([]models.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Ticket, len(r.items))
	for i, t := range r.items {
		out[i] = cloneTicket(t)
	}
	return out, nil
}

func (r *TicketRepo) Get(_ context.Context, id int64) (*models.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.items {
		if t.ID == id {
			c := cloneTicket(t)
			return &c, nil
		}
	}
	return nil, nil
}

func (r *TicketRepo) Create(_ context.Context, t *models.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	t.ID = r.nextID
	r.nextID++
	t.Status = models.StatusOpen
	t.CreatedAt, t.UpdatedAt = now, now
	r.items = append(r.items, cloneTicket(*t))
	return nil
}

func (r *TicketRepo) Update(_ context.Context, t *models.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == t.ID {
			t.CreatedAt = r.items[i].CreatedAt
			t.UpdatedAt = later(r.now(), t.CreatedAt)
			t.Comments = r.items[i].Comments
			r.items[i] = cloneTicket(*t)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *TicketRepo) AddComment(_ context.Context, c *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == c.TicketID {
			c.ID = uuid.NewString()
			c.CreatedAt = r.now()
			r.items[i].Comments = append(r.items[i].Comments, *c)
			r.items[i].UpdatedAt = later(c.CreatedAt, r.items[i].UpdatedAt)
			return nil
		}
	}
	return repository.ErrNotFound
}

func cloneTicket(t models.Ticket) models.Ticket {
	t.Comments = slices.Clone(t.Comments)
	return t
}

func later(a, b time.Time) time.Time {
	if a.Before(b) {
		return b
	}
	return a
}
