package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
	"github.com/amberbeaumont/IThelpdesklite/internal/repository"
)

// TicketRepository is a mock for repository.TicketRepository.
type TicketRepository struct {
	mock.Mock
}

func (m *TicketRepository) List(ctx context.Context, f repository.TicketFilter) ([]models.Ticket, int, error) {
	args := m.Called(ctx, f)
	if list, ok := args.Get(0).([]models.Ticket); ok {
		return list, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *TicketRepository) All(ctx context.Context) ([]models.Ticket, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]models.Ticket); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TicketRepository) Get(ctx context.Context, id int64) (*models.Ticket, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*models.Ticket); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TicketRepository) Create(ctx context.Context, t *models.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *TicketRepository) Update(ctx context.Context, t *models.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *TicketRepository) AddComment(ctx context.Context, c *models.Comment) error {
	return m.Called(ctx, c).Error(0)
}

// CountingTicketRepository adds the summary counters the postgres repo offers.
type CountingTicketRepository struct {
	TicketRepository
}

func (m *CountingTicketRepository) CountByStatus(ctx context.Context) (map[models.TicketStatus]int, error) {
	args := m.Called(ctx)
	if by, ok := args.Get(0).(map[models.TicketStatus]int); ok {
		return by, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CountingTicketRepository) CountClosedSince(ctx context.Context, since time.Time) (int, error) {
	args := m.Called(ctx, since)
	return args.Int(0), args.Error(1)
}

func (m *CountingTicketRepository) CountActiveByUrgency(ctx context.Context, urgencies []models.Urgency) (int, error) {
	args := m.Called(ctx, urgencies)
	return args.Int(0), args.Error(1)
}

// UserRepository is a mock for repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *models.User, passwordHash string) error {
	return m.Called(ctx, u, passwordHash).Error(0)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, string, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) List(ctx context.Context, q, role string, limit, offset int) ([]models.User, int, error) {
	args := m.Called(ctx, q, role, limit, offset)
	if list, ok := args.Get(0).([]models.User); ok {
		return list, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *UserRepository) All(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]models.User); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) UpdateRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	args := m.Called(ctx, id, role)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) UpdateBasic(ctx context.Context, id, name, businessUnit string) (*models.User, error) {
	args := m.Called(ctx, id, name, businessUnit)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// EquipmentRepository is a mock for repository.EquipmentRepository.
type EquipmentRepository struct {
	mock.Mock
}

func (m *EquipmentRepository) All(ctx context.Context) ([]models.Equipment, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]models.Equipment); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EquipmentRepository) Get(ctx context.Context, id int64) (*models.Equipment, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*models.Equipment); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EquipmentRepository) Create(ctx context.Context, e *models.Equipment) error {
	return m.Called(ctx, e).Error(0)
}

func (m *EquipmentRepository) Update(ctx context.Context, e *models.Equipment) error {
	return m.Called(ctx, e).Error(0)
}

func (m *EquipmentRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
