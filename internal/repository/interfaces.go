package repository

import (
	"context"
	"errors"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("already exists")
)

type TicketFilter struct {
	Q           string
	Status      string
	Urgency     string
	ProblemType string
	Assignee    string
	Requester   string // requester email, used to scope requester-only actors
	Limit       int
	Offset      int
	Sort        string // created_at, updated_at, urgency
	Order       string // asc|desc
}

type TicketRepository interface {
	List(ctx context.Context, f TicketFilter) ([]models.Ticket, int, error)
	All(ctx context.Context) ([]models.Ticket, error)
	Get(ctx context.Context, id int64) (*models.Ticket, error)
	Create(ctx context.Context, t *models.Ticket) error
	Update(ctx context.Context, t *models.Ticket) error
	AddComment(ctx context.Context, c *models.Comment) error
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User, passwordHash string) error
	GetByEmail(ctx context.Context, email string) (*models.User, string /*passwordHash*/, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, q, role string, limit, offset int) ([]models.User, int, error)
	All(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, id string, role models.Role) (*models.User, error)
	UpdateBasic(ctx context.Context, id, name, businessUnit string) (*models.User, error)
}

type EquipmentRepository interface {
	All(ctx context.Context) ([]models.Equipment, error)
	Get(ctx context.Context, id int64) (*models.Equipment, error)
	Create(ctx context.Context, e *models.Equipment) error
	Update(ctx context.Context, e *models.Equipment) error
	Delete(ctx context.Context, id int64) error
}

// CollectionStore keeps one named list of workspace items.
type CollectionStore[T models.Item] interface {
	List(ctx context.Context) ([]T, error)
	ReplaceAll(ctx context.Context, items []T) error
}
