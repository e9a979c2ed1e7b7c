package report

import (
	"strings"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
)

// Sentinels stand in for values a join could not produce. "No key set" and
// "key set but nothing matches" are always distinct.
const (
	Unassigned   = "Unassigned"
	UnknownUser  = "Unknown User"
	NotAvailable = "N/A"
	NoTickets    = "No tickets"
	None         = "None"
)

// ListDelimiter separates the values of a one-to-many join.
const ListDelimiter = ", "

func userAttr(s *Snapshot, id string, attr func(*models.User) string) Value {
	if strings.TrimSpace(id) == "" {
		return Text(Unassigned)
	}
	i, ok := s.userByID(id)
	if !ok {
		return Text(UnknownUser)
	}
	return Text(attr(&s.Users[i]))
}

func assignedEquipment(s *Snapshot, userID string) []int {
	var out []int
	for i := range s.Equipment {
		if s.Equipment[i].AssignedTo == userID {
			out = append(out, i)
		}
	}
	return out
}

func ticketsRequestedBy(s *Snapshot, email string) []int {
	var out []int
	for i := range s.Tickets {
		if equalFold(s.Tickets[i].RequesterEmail, email) {
			out = append(out, i)
		}
	}
	return out
}

type related struct {
	idx      []int
	sentinel string
}

// relate finds the records of collection to that belong to record i of
// collection from. Links:
//
//	ticket    -> user      assignee
//	equipment -> user      assignee
//	user      -> ticket    tickets requested with the user's email
//	user      -> equipment equipment assigned to the user
//	ticket    -> equipment equipment assigned to the requester
//	equipment -> ticket    tickets requested by the assignee
func relate(s *Snapshot, from, to Collection, i int) related {
	switch from {
	case Tickets:
		t := &s.Tickets[i]
		switch to {
		case Users:
			return userLink(s, t.AssignedTo)
		case Equipment:
			if strings.TrimSpace(t.RequesterEmail) == "" {
				return related{sentinel: NotAvailable}
			}
			u, ok := s.userByEmail(t.RequesterEmail)
			if !ok {
				return related{sentinel: UnknownUser}
			}
			return related{idx: assignedEquipment(s, s.Users[u].ID)}
		}
	case Equipment:
		e := &s.Equipment[i]
		switch to {
		case Users:
			return userLink(s, e.AssignedTo)
		case Tickets:
			r := userLink(s, e.AssignedTo)
			if r.sentinel != "" {
				return r
			}
			return related{idx: ticketsRequestedBy(s, s.Users[r.idx[0]].Email)}
		}
	case Users:
		u := &s.Users[i]
		switch to {
		case Tickets:
			return related{idx: ticketsRequestedBy(s, u.Email)}
		case Equipment:
			return related{idx: assignedEquipment(s, u.ID)}
		}
	}
	return related{sentinel: NotAvailable}
}

func userLink(s *Snapshot, id string) related {
	if strings.TrimSpace(id) == "" {
		return related{sentinel: Unassigned}
	}
	u, ok := s.userByID(id)
	if !ok {
		return related{sentinel: UnknownUser}
	}
	return related{idx: []int{u}}
}

func emptySentinel(c Collection) string {
	if c == Tickets {
		return NoTickets
	}
	return None
}

// resolveOn resolves f for record i of the primary collection. Fields of
// another collection are resolved through relate: a single match yields its
// value, several are joined with ListDelimiter.
func resolveOn(f Field, primary Collection, s *Snapshot, i int) Value {
	if f.Owner == primary {
		return f.Resolve(s, i)
	}
	r := relate(s, primary, f.Owner, i)
	if r.sentinel != "" {
		return Text(r.sentinel)
	}
	switch len(r.idx) {
	case 0:
		return Text(emptySentinel(f.Owner))
	case 1:
		return f.Resolve(s, r.idx[0])
	}
	parts := make([]string, 0, len(r.idx))
	for _, j := range r.idx {
		if v := f.Resolve(s, j); !v.IsNull() {
			parts = append(parts, v.String())
		}
	}
	if len(parts) == 0 {
		return Text(emptySentinel(f.Owner))
	}
	return Text(strings.Join(parts, ListDelimiter))
}

func equalFold(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}
