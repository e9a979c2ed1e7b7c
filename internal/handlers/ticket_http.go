package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/amberbeaumont/IThelpdesklite/internal/middleware"
	"github.com/amberbeaumont/IThelpdesklite/internal/models"
	"github.com/amberbeaumont/IThelpdesklite/internal/repository"
	"github.com/amberbeaumont/IThelpdesklite/internal/utils"
)

// TicketHTTP wires HTTP endpoints to repositories.
type TicketHTTP struct {
	tickets repository.TicketRepository
	users   repository.UserRepository
}

func NewTicketHTTP(tickets repository.TicketRepository, users repository.UserRepository) *TicketHTTP {
	return &TicketHTTP{tickets: tickets, users: users}
}

// -----------------------------------------------------------------------------
// Optional repo capability for picking an assignee for requester tickets.
// -----------------------------------------------------------------------------
type supportFinder interface {
	FirstSupportID(ctx context.Context) (string, error)
}

func (h *TicketHTTP) defaultAssignee(ctx context.Context) string {
	if sf, ok := h.users.(supportFinder); ok {
		if id, err := sf.FirstSupportID(ctx); err == nil {
			return strings.TrimSpace(id)
		}
	}
	return ""
}

// actor loads the caller's profile; requester-only callers are scoped to
// tickets raised with their email.
func (h *TicketHTTP) actor(r *http.Request) (*models.User, error) {
	uid, _ := middleware.Actor(r.Context())
	u, err := h.users.GetByID(r.Context(), uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func ownTicket(u *models.User, t *models.Ticket) bool {
	return u.Role.Support() || strings.EqualFold(u.Email, t.RequesterEmail)
}

func (h *TicketHTTP) load(w http.ResponseWriter, r *http.Request) (*models.User, *models.Ticket, bool) {
	id, ok := utils.PathInt64(chi.URLParam(r, "id"))
	if !ok {
		utils.Error(w, http.StatusBadRequest, "invalid id")
		return nil, nil, false
	}
	u, err := h.actor(r)
	if err != nil {
		writeError(w, err)
		return nil, nil, false
	}
	t, err := h.tickets.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return nil, nil, false
	}
	if t == nil {
		utils.Error(w, http.StatusNotFound, "not found")
		return nil, nil, false
	}
	if !ownTicket(u, t) {
		utils.Error(w, http.StatusForbidden, "forbidden")
		return nil, nil, false
	}
	return u, t, true
}

// -----------------------------------------------------------------------------
// GET /api/tickets?q=&status=&urgency=&problemType=&assignee=&sort=&order=&limit=&offset=
// -----------------------------------------------------------------------------
func (h *TicketHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		f := repository.TicketFilter{
			Q:           strings.TrimSpace(qv.Get("q")),
			Status:      strings.TrimSpace(qv.Get("status")),
			Urgency:     strings.TrimSpace(qv.Get("urgency")),
			ProblemType: strings.TrimSpace(qv.Get("problemType")),
			Assignee:    strings.TrimSpace(qv.Get("assignee")),
			Limit:       utils.QueryInt(qv, "limit", 10),
			Offset:      utils.QueryInt(qv, "offset", 0),
			Sort:        qv.Get("sort"),
			Order:       qv.Get("order"),
		}

		u, err := h.actor(r)
		if err != nil {
			writeError(w, err)
			return
		}
		if !u.Role.Support() {
			f.Requester = u.Email
		}

		items, total, err := h.tickets.List(r.Context(), f)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("X-Total-Count", strconv.Itoa(total))
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
	}
}

// -----------------------------------------------------------------------------
// GET /api/tickets/{id}
// -----------------------------------------------------------------------------
func (h *TicketHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, t, ok := h.load(w, r)
		if !ok {
			return
		}
		if !u.Role.Support() {
			t.Comments = publicComments(t.Comments)
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

func publicComments(cs []models.Comment) []models.Comment {
	out := make([]models.Comment, 0, len(cs))
	for _, c := range cs {
		if !c.IsInternal {
			out = append(out, c)
		}
	}
	return out
}

// -----------------------------------------------------------------------------
// POST /api/tickets
// Requester tickets are always assigned to the first support user.
// -----------------------------------------------------------------------------
func (h *TicketHTTP) Create() http.HandlerFunc {
	type inDTO struct {
		Subject        string `json:"subject"`
		Message        string `json:"message"`
		RequesterName  string `json:"requesterName"`
		RequesterEmail string `json:"requesterEmail"`
		ProblemType    string `json:"problemType"`
		Urgency        string `json:"urgency"`
		AssignedTo     string `json:"assignedTo"`
		BusinessUnit   string `json:"businessUnit"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.Subject = strings.TrimSpace(in.Subject)
		if in.Subject == "" {
			utils.Error(w, http.StatusBadRequest, "subject is required")
			return
		}
		urgency := models.Urgency(strings.TrimSpace(in.Urgency))
		if urgency == "" {
			urgency = models.UrgencyMedium
		}
		if !urgency.Valid() {
			utils.Error(w, http.StatusBadRequest, "invalid urgency")
			return
		}
		problem := models.ProblemType(strings.TrimSpace(in.ProblemType))
		if problem != "" && !problem.Valid() {
			utils.Error(w, http.StatusBadRequest, "invalid problemType")
			return
		}

		u, err := h.actor(r)
		if err != nil {
			writeError(w, err)
			return
		}

		t := &models.Ticket{
			Subject:        in.Subject,
			Message:        strings.TrimSpace(in.Message),
			RequesterName:  strings.TrimSpace(in.RequesterName),
			RequesterEmail: strings.TrimSpace(in.RequesterEmail),
			ProblemType:    problem,
			Urgency:        urgency,
			AssignedTo:     strings.TrimSpace(in.AssignedTo),
			BusinessUnit:   strings.TrimSpace(in.BusinessUnit),
			CreatedBy:      u.ID,
		}
		if !u.Role.Support() || t.RequesterEmail == "" {
			t.RequesterName, t.RequesterEmail = u.Name, u.Email
		}
		if t.BusinessUnit == "" {
			t.BusinessUnit = u.BusinessUnit
		}
		if !u.Role.Support() {
			t.AssignedTo = h.defaultAssignee(r.Context())
		}

		if err := h.tickets.Create(r.Context(), t); err != nil {
			writeError(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, t)
	}
}

// -----------------------------------------------------------------------------
// PATCH /api/tickets/{id} (support roles)
// -----------------------------------------------------------------------------
func (h *TicketHTTP) Update() http.HandlerFunc {
	type inDTO struct {
		Subject      *string `json:"subject"`
		Message      *string `json:"message"`
		ProblemType  *string `json:"problemType"`
		Urgency      *string `json:"urgency"`
		Status       *string `json:"status"`
		AssignedTo   *string `json:"assignedTo"`
		BusinessUnit *string `json:"businessUnit"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		_, t, ok := h.load(w, r)
		if !ok {
			return
		}

		if in.Subject != nil {
			t.Subject = strings.TrimSpace(*in.Subject)
		}
		if in.Message != nil {
			t.Message = strings.TrimSpace(*in.Message)
		}
		if in.ProblemType != nil {
			t.ProblemType = models.ProblemType(strings.TrimSpace(*in.ProblemType))
		}
		if in.Urgency != nil {
			t.Urgency = models.Urgency(strings.TrimSpace(*in.Urgency))
		}
		if in.Status != nil {
			t.Status = models.TicketStatus(strings.TrimSpace(*in.Status))
		}
		if in.AssignedTo != nil {
			t.AssignedTo = strings.TrimSpace(*in.AssignedTo)
		}
		if in.BusinessUnit != nil {
			t.BusinessUnit = strings.TrimSpace(*in.BusinessUnit)
		}
		switch {
		case t.Subject == "":
			utils.Error(w, http.StatusBadRequest, "subject is required")
			return
		case !t.Urgency.Valid():
			utils.Error(w, http.StatusBadRequest, "invalid urgency")
			return
		case !t.Status.Valid():
			utils.Error(w, http.StatusBadRequest, "invalid status")
			return
		case t.ProblemType != "" && !t.ProblemType.Valid():
			utils.Error(w, http.StatusBadRequest, "invalid problemType")
			return
		}

		if err := h.tickets.Update(r.Context(), t); err != nil {
			writeError(w, err)
			return
		}
		updated, err := h.tickets.Get(r.Context(), t.ID)
		if err != nil {
			writeError(w, err)
			return
		}
		if updated == nil {
			utils.Error(w, http.StatusInternalServerError, "ticket not found after update")
			return
		}
		utils.JSON(w, http.StatusOK, updated)
	}
}

// -----------------------------------------------------------------------------
// DELETE /api/tickets/{id} moves the ticket to Deleted; nothing is purged.
// -----------------------------------------------------------------------------
func (h *TicketHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, t, ok := h.load(w, r)
		if !ok {
			return
		}
		t.Status = models.StatusDeleted
		if err := h.tickets.Update(r.Context(), t); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// -----------------------------------------------------------------------------
// POST /api/tickets/{id}/comments
// -----------------------------------------------------------------------------
func (h *TicketHTTP) AddComment() http.HandlerFunc {
	type inDTO struct {
		Text       string `json:"text"`
		IsInternal bool   `json:"isInternal"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		in.Text = strings.TrimSpace(in.Text)
		if in.Text == "" {
			utils.Error(w, http.StatusBadRequest, "text is required")
			return
		}
		u, t, ok := h.load(w, r)
		if !ok {
			return
		}

		c := &models.Comment{
			TicketID:   t.ID,
			UserID:     u.ID,
			UserName:   u.Name,
			Text:       in.Text,
			IsInternal: in.IsInternal && u.Role.Support(),
		}
		if err := h.tickets.AddComment(r.Context(), c); err != nil {
			writeError(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, c)
	}
}
