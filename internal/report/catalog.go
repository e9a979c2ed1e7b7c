package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
)

var (
	ErrUnknownField   = errors.New("report: unknown field")
	ErrDuplicateField = errors.New("report: duplicate field key")
)

const (
	dateTimeLayout = "Jan 2, 2006 3:04 PM"
	dateLayout     = "Jan 2, 2006"
)

// Field describes one selectable report column. Resolvers are pure functions
// of the snapshot and the index of a record in the owning collection.
type Field struct {
	Key     string     `json:"key"`
	Label   string     `json:"label"`
	Owner   Collection `json:"collection"`
	resolve func(s *Snapshot, i int) Value
}

func (f Field) Resolve(s *Snapshot, i int) Value { return f.resolve(s, i) }

func TicketField(name, label string, fn func(t *models.Ticket, s *Snapshot) Value) Field {
	return Field{Key: Tickets.prefix() + "." + name, Label: label, Owner: Tickets,
		resolve: func(s *Snapshot, i int) Value { return fn(&s.Tickets[i], s) }}
}

func EquipmentField(name, label string, fn func(e *models.Equipment, s *Snapshot) Value) Field {
	return Field{Key: Equipment.prefix() + "." + name, Label: label, Owner: Equipment,
		resolve: func(s *Snapshot, i int) Value { return fn(&s.Equipment[i], s) }}
}

func UserField(name, label string, fn func(u *models.User, s *Snapshot) Value) Field {
	return Field{Key: Users.prefix() + "." + name, Label: label, Owner: Users,
		resolve: func(s *Snapshot, i int) Value { return fn(&s.Users[i], s) }}
}

// Catalog is an immutable, ordered field registry.
type Catalog struct {
	fields []Field
	byKey  map[string]int
}

func NewCatalog(fields ...Field) (*Catalog, error) {
	c := &Catalog{fields: make([]Field, 0, len(fields)), byKey: make(map[string]int, len(fields))}
	for _, f := range fields {
		if f.resolve == nil {
			return nil, fmt.Errorf("report: field %q has no resolver", f.Key)
		}
		if _, dup := c.byKey[f.Key]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, f.Key)
		}
		c.byKey[f.Key] = len(c.fields)
		c.fields = append(c.fields, f)
	}
	return c, nil
}

func (c *Catalog) Lookup(key string) (Field, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return Field{}, false
	}
	return c.fields[i], true
}

func (c *Catalog) Fields() []Field {
	out := make([]Field, len(c.fields))
	copy(out, c.fields)
	return out
}

func (c *Catalog) ByCollection(col Collection) []Field {
	var out []Field
	for _, f := range c.fields {
		if f.Owner == col {
			out = append(out, f)
		}
	}
	return out
}

// Default is the help-desk catalog.
var Default = mustCatalog(defaultFields()...)

func mustCatalog(fields ...Field) *Catalog {
	c, err := NewCatalog(fields...)
	if err != nil {
		panic(err)
	}
	return c
}

func defaultFields() []Field {
	return []Field{
		TicketField("id", "Ticket ID", func(t *models.Ticket, _ *Snapshot) Value { return Number(float64(t.ID)) }),
		TicketField("subject", "Subject", func(t *models.Ticket, _ *Snapshot) Value { return Text(t.Subject) }),
		TicketField("requesterName", "Requester Name", func(t *models.Ticket, _ *Snapshot) Value { return optional(t.RequesterName) }),
		TicketField("requesterEmail", "Requester Email", func(t *models.Ticket, _ *Snapshot) Value { return optional(t.RequesterEmail) }),
		TicketField("problemType", "Problem Type", func(t *models.Ticket, _ *Snapshot) Value { return optional(string(t.ProblemType)) }),
		TicketField("urgency", "Urgency", func(t *models.Ticket, _ *Snapshot) Value {
			return Badge(string(t.Urgency), urgencyVariant(t.Urgency))
		}),
		TicketField("status", "Status", func(t *models.Ticket, _ *Snapshot) Value {
			return Badge(string(t.Status), ticketStatusVariant(t.Status))
		}),
		TicketField("assignedTo", "Assigned To", func(t *models.Ticket, s *Snapshot) Value {
			return userAttr(s, t.AssignedTo, func(u *models.User) string { return u.Name })
		}),
		TicketField("assigneeEmail", "Assignee Email", func(t *models.Ticket, s *Snapshot) Value {
			return userAttr(s, t.AssignedTo, func(u *models.User) string { return u.Email })
		}),
		TicketField("businessUnit", "Business Unit", func(t *models.Ticket, _ *Snapshot) Value { return optional(t.BusinessUnit) }),
		TicketField("createdAt", "Created At", func(t *models.Ticket, _ *Snapshot) Value { return Timestamp(t.CreatedAt, dateTimeLayout) }),
		TicketField("updatedAt", "Last Updated", func(t *models.Ticket, _ *Snapshot) Value { return Timestamp(t.UpdatedAt, dateTimeLayout) }),

		EquipmentField("id", "Equipment ID", func(e *models.Equipment, _ *Snapshot) Value { return Number(float64(e.ID)) }),
		EquipmentField("name", "Name", func(e *models.Equipment, _ *Snapshot) Value { return Text(e.Name) }),
		EquipmentField("type", "Type", func(e *models.Equipment, _ *Snapshot) Value { return optional(e.Type) }),
		EquipmentField("serialNumber", "Serial Number", func(e *models.Equipment, _ *Snapshot) Value { return Text(e.SerialNumber) }),
		EquipmentField("assignedTo", "Assigned User Name", func(e *models.Equipment, s *Snapshot) Value {
			return userAttr(s, e.AssignedTo, func(u *models.User) string { return u.Name })
		}),
		EquipmentField("assigneeEmail", "Assigned User Email", func(e *models.Equipment, s *Snapshot) Value {
			return userAttr(s, e.AssignedTo, func(u *models.User) string { return u.Email })
		}),
		EquipmentField("acquiredAt", "Purchase Date", func(e *models.Equipment, _ *Snapshot) Value { return Timestamp(e.AcquiredAt, dateLayout) }),
		EquipmentField("status", "Status", func(e *models.Equipment, _ *Snapshot) Value {
			return Badge(string(e.Status), equipmentStatusVariant(e.Status))
		}),
		EquipmentField("businessUnit", "Business Unit", func(e *models.Equipment, _ *Snapshot) Value { return optional(e.BusinessUnit) }),

		UserField("id", "User ID", func(u *models.User, _ *Snapshot) Value { return Text(u.ID) }),
		UserField("name", "Name", func(u *models.User, _ *Snapshot) Value { return Text(u.Name) }),
		UserField("email", "Email", func(u *models.User, _ *Snapshot) Value { return Text(u.Email) }),
		UserField("role", "Role", func(u *models.User, _ *Snapshot) Value { return Text(string(u.Role)) }),
		UserField("businessUnit", "Business Unit", func(u *models.User, _ *Snapshot) Value { return optional(u.BusinessUnit) }),
		UserField("openTickets", "Open Tickets", func(u *models.User, s *Snapshot) Value {
			n := 0
			for _, i := range ticketsRequestedBy(s, u.Email) {
				if s.Tickets[i].Status.Active() {
					n++
				}
			}
			return countOrSentinel(n, NoTickets)
		}),
		UserField("assignedOpenTickets", "Assigned Open Tickets", func(u *models.User, s *Snapshot) Value {
			n := 0
			for i := range s.Tickets {
				if s.Tickets[i].AssignedTo == u.ID && s.Tickets[i].Status.Active() {
					n++
				}
			}
			return countOrSentinel(n, NoTickets)
		}),
		UserField("equipment", "Assigned Equipment", func(u *models.User, s *Snapshot) Value {
			var names []string
			for _, i := range assignedEquipment(s, u.ID) {
				names = append(names, s.Equipment[i].Name)
			}
			if len(names) == 0 {
				return Text(None)
			}
			return Text(strings.Join(names, ListDelimiter))
		}),
	}
}

func optional(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Null()
	}
	return Text(s)
}

func countOrSentinel(n int, sentinel string) Value {
	if n == 0 {
		return Text(sentinel)
	}
	return Number(float64(n))
}

func ticketStatusVariant(s models.TicketStatus) string {
	switch s {
	case models.StatusOpen:
		return "default"
	case models.StatusInProgress:
		return "secondary"
	case models.StatusDeleted:
		return "destructive"
	default:
		return "outline"
	}
}

func equipmentStatusVariant(s models.EquipmentStatus) string {
	switch s {
	case "Operational":
		return "default"
	case "Maintenance", "In Repair":
		return "secondary"
	case "Missing":
		return "destructive"
	default:
		return "outline"
	}
}

func urgencyVariant(u models.Urgency) string {
	switch u {
	case models.UrgencyHigh, models.UrgencyCritical:
		return "destructive"
	case models.UrgencyMedium:
		return "secondary"
	default:
		return "outline"
	}
}
