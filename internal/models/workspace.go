package models

import (
	"strings"
	"time"
)

// Item is implemented by everything kept in a named workspace collection.
type Item interface {
	ItemID() string
	Matches(q string) bool
}

type Note struct {
	ID            string    `json:"id"`
	TicketID      int64     `json:"ticketId,omitempty"`
	Name          string    `json:"name"`
	Details       string    `json:"details"`
	AttachmentURL string    `json:"attachmentUrl,omitempty"`
	CreatedBy     string    `json:"createdBy,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (n Note) ItemID() string { return n.ID }

// Stamp returns n with a fresh id and creation time.
func (n Note) Stamp(id string, at time.Time) Note {
	n.ID, n.CreatedAt, n.UpdatedAt = id, at, at
	return n
}
func (n Note) Matches(q string) bool {
	return contains(n.Name, q) || contains(n.Details, q)
}

type Bookmark struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	CreatedBy string    `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b Bookmark) ItemID() string { return b.ID }

func (b Bookmark) Stamp(id string, at time.Time) Bookmark {
	b.ID, b.CreatedAt, b.UpdatedAt = id, at, at
	return b
}
func (b Bookmark) Matches(q string) bool {
	return contains(b.Name, q) || contains(b.Link, q)
}

type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func (d Document) ItemID() string        { return d.ID }
func (d Document) Matches(q string) bool { return contains(d.Name, q) || contains(d.Type, q) }

func (d Document) Stamp(id string, at time.Time) Document {
	d.ID, d.UploadedAt = id, at
	return d
}

type Snippet struct {
	ID        string    `json:"id"`
	TicketID  int64     `json:"ticketId,omitempty"`
	Name      string    `json:"name"`
	Text      string    `json:"text"`
	CreatedBy string    `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s Snippet) ItemID() string { return s.ID }

func (s Snippet) Stamp(id string, at time.Time) Snippet {
	s.ID, s.CreatedAt, s.UpdatedAt = id, at, at
	return s
}
func (s Snippet) Matches(q string) bool {
	return contains(s.Name, q) || contains(s.Text, q)
}

func contains(s, q string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(q)))
}
