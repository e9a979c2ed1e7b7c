package report

import (
	"fmt"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
)

type Collection string

const (
	Tickets   Collection = "tickets"
	Equipment Collection = "equipment"
	Users     Collection = "users"
)

var Collections = []Collection{Tickets, Equipment, Users}

func (c Collection) prefix() string {
	switch c {
	case Tickets:
		return "ticket"
	case Equipment:
		return "equipment"
	case Users:
		return "user"
	}
	panic(fmt.Sprintf("report: unknown collection %q", string(c)))
}

// Snapshot is a read-only view of the three source collections taken at the
// start of a build. Nothing in this package writes to it.
type Snapshot struct {
	Tickets   []models.Ticket
	Equipment []models.Equipment
	Users     []models.User
}

func (s *Snapshot) Len(c Collection) int {
	switch c {
	case Tickets:
		return len(s.Tickets)
	case Equipment:
		return len(s.Equipment)
	case Users:
		return len(s.Users)
	}
	return 0
}

func (s *Snapshot) userByID(id string) (int, bool) {
	for i := range s.Users {
		if s.Users[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s *Snapshot) userByEmail(email string) (int, bool) {
	for i := range s.Users {
		if equalFold(s.Users[i].Email, email) {
			return i, true
		}
	}
	return -1, false
}
