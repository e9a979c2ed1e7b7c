package models

import "time"

type TicketStatus string

const (
	StatusOpen        TicketStatus = "Open"
	StatusInProgress  TicketStatus = "In Progress"
	StatusWaitingUser TicketStatus = "Waiting on User"
	StatusClosed      TicketStatus = "Closed"
	StatusDeleted     TicketStatus = "Deleted"
)

var TicketStatuses = []TicketStatus{StatusOpen, StatusInProgress, StatusWaitingUser, StatusClosed, StatusDeleted}

func (s TicketStatus) Valid() bool {
	for _, v := range TicketStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Active reports whether the ticket still needs attention.
func (s TicketStatus) Active() bool { return s != StatusClosed && s != StatusDeleted }

type Urgency string

const (
	UrgencyLow      Urgency = "Low"
	UrgencyMedium   Urgency = "Medium"
	UrgencyHigh     Urgency = "High"
	UrgencyCritical Urgency = "Critical"
)

var Urgencies = []Urgency{UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical}

func (u Urgency) Valid() bool {
	for _, v := range Urgencies {
		if v == u {
			return true
		}
	}
	return false
}

type ProblemType string

var ProblemTypes = []ProblemType{"Hardware", "Software", "Network", "Account", "Other"}

func (p ProblemType) Valid() bool {
	for _, v := range ProblemTypes {
		if v == p {
			return true
		}
	}
	return false
}

type Ticket struct {
	ID             int64        `json:"id"`
	Subject        string       `json:"subject"`
	Message        string       `json:"message"`
	RequesterName  string       `json:"requesterName"`
	RequesterEmail string       `json:"requesterEmail"`
	ProblemType    ProblemType  `json:"problemType,omitempty"`
	Urgency        Urgency      `json:"urgency"`
	Status         TicketStatus `json:"status"`
	AssignedTo     string       `json:"assignedTo,omitempty"` // user id
	BusinessUnit   string       `json:"businessUnit,omitempty"`
	CreatedBy      string       `json:"createdBy,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
	Comments       []Comment    `json:"comments,omitempty"`
}

type Comment struct {
	ID         string    `json:"id"`
	TicketID   int64     `json:"ticketId"`
	UserID     string    `json:"userId,omitempty"`
	UserName   string    `json:"userName"`
	Text       string    `json:"text"`
	IsInternal bool      `json:"isInternal"`
	CreatedAt  time.Time `json:"createdAt"`
}
