package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
	"github.com/amberbeaumont/IThelpdesklite/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepo struct{ db *pgxpool.Pool }

func NewTicketRepo(db *pgxpool.Pool) *TicketRepo { return &TicketRepo{db: db} }

const ticketCols = `
	t.id, t.subject, t.message, t.requester_name, t.requester_email,
	COALESCE(t.issue_type, ''), t.urgency, t.status, COALESCE(t.assigned_to, ''),
	t.business_unit, t.created_by, t.created_at, t.updated_at`

func scanTicket(row pgx.Row, t *models.Ticket) error {
	return row.Scan(
		&t.ID, &t.Subject, &t.Message, &t.RequesterName, &t.RequesterEmail,
		&t.ProblemType, &t.Urgency, &t.Status, &t.AssignedTo,
		&t.BusinessUnit, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
}

// -----------------------------------------------------------------------------
// Listing with filters + pagination + sort
// -----------------------------------------------------------------------------

// List returns a page of tickets and the total for the same filter set.
// - Q:        free-text search (subject/message, ILIKE)
// - Status, Urgency, ProblemType, Assignee, Requester: exact
// - Sort:     created_at|updated_at|urgency (default updated_at)
// - Order:    asc|desc (default desc)
func (r *TicketRepo) List(ctx context.Context, f repository.TicketFilter) ([]models.Ticket, int, error) {
	limit, offset := f.Limit, f.Offset
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	whereSQL, args := buildTicketWhere(f)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tickets t `+whereSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sql := fmt.Sprintf(`
		SELECT %s
		FROM tickets t
		%s
		ORDER BY %s %s, t.id
		LIMIT $%d OFFSET $%d
	`, ticketCols, whereSQL, sanitizeSort(f.Sort, "updated_at"), sanitizeOrder(f.Order, "desc"), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []models.Ticket
	for rows.Next() {
		var t models.Ticket
		if err := scanTicket(rows, &t); err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

// All returns every ticket in creation order. Used for report snapshots.
func (r *TicketRepo) All(ctx context.Context) ([]models.Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT `+ticketCols+` FROM tickets t ORDER BY t.created_at, t.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Ticket
	for rows.Next() {
		var t models.Ticket
		if err := scanTicket(rows, &t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------
// Single ticket + create/update + comments
// -----------------------------------------------------------------------------
func (r *TicketRepo) Get(ctx context.Context, id int64) (*models.Ticket, error) {
	var t models.Ticket
	err := scanTicket(r.db.QueryRow(ctx, `SELECT `+ticketCols+` FROM tickets t WHERE t.id = $1`, id), &t)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	// load comments
	rows, err := r.db.Query(ctx, `
		SELECT id, ticket_id, COALESCE(user_id, ''), user_name, comment, is_internal_note, created_at
		FROM ticket_comments
		WHERE ticket_id = $1
		ORDER BY created_at ASC
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.TicketID, &c.UserID, &c.UserName, &c.Text, &c.IsInternal, &c.CreatedAt); err != nil {
			return nil, err
		}
		t.Comments = append(t.Comments, c)
	}
	return &t, rows.Err()
}

func (r *TicketRepo) Create(ctx context.Context, t *models.Ticket) error {
	now := time.Now()
	return r.db.QueryRow(ctx, `
		INSERT INTO tickets (subject, message, requester_name, requester_email, issue_type, urgency, status,
			assigned_to, business_unit, created_by, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$11)
		RETURNING id, created_at, updated_at
	`,
		t.Subject, t.Message, t.RequesterName, t.RequesterEmail, nullIfEmpty(string(t.ProblemType)), t.Urgency,
		models.StatusOpen, nullIfEmpty(t.AssignedTo), t.BusinessUnit, t.CreatedBy, now,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TicketRepo) Update(ctx context.Context, t *models.Ticket) error {
	t.UpdatedAt = time.Now()
	ct, err := r.db.Exec(ctx, `
		UPDATE tickets SET
			subject=$1, message=$2, issue_type=$3, urgency=$4, status=$5, assigned_to=$6, business_unit=$7, updated_at=$8
		WHERE id=$9
	`,
		t.Subject, t.Message, nullIfEmpty(string(t.ProblemType)), t.Urgency, t.Status, nullIfEmpty(t.AssignedTo),
		t.BusinessUnit, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TicketRepo) AddComment(ctx context.Context, c *models.Comment) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO ticket_comments (ticket_id, user_id, user_name, comment, is_internal_note)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, created_at
	`, c.TicketID, nullIfEmpty(c.UserID), c.UserName, c.Text, c.IsInternal).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `UPDATE tickets SET updated_at = GREATEST(updated_at, $1) WHERE id = $2`, c.CreatedAt, c.TicketID)
	return err
}

// -----------------------------------------------------------------------------
// Reporting helpers (optional, used by /api/reports/summary)
// -----------------------------------------------------------------------------

// CountByStatus returns ticket counts keyed by status.
func (r *TicketRepo) CountByStatus(ctx context.Context) (map[models.TicketStatus]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM tickets GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[models.TicketStatus]int{}
	for rows.Next() {
		var s models.TicketStatus
		var n int
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		out[s] = n
	}
	return out, rows.Err()
}

// CountClosedSince counts tickets closed since the provided time.
func (r *TicketRepo) CountClosedSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tickets WHERE status = $1 AND updated_at >= $2`,
		models.StatusClosed, since).Scan(&n)
	return n, err
}

// CountActiveByUrgency counts tickets not Closed/Deleted with the given urgencies.
func (r *TicketRepo) CountActiveByUrgency(ctx context.Context, urgencies []models.Urgency) (int, error) {
	us := make([]string, len(urgencies))
	for i, u := range urgencies {
		us[i] = string(u)
	}
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tickets WHERE status NOT IN ($1, $2) AND urgency = ANY($3)`,
		models.StatusClosed, models.StatusDeleted, us).Scan(&n)
	return n, err
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// buildTicketWhere composes WHERE clause and args for the filters (with aliases).
func buildTicketWhere(f repository.TicketFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	// free-text search (ILIKE)
	if s := strings.TrimSpace(f.Q); s != "" {
		p := "%" + s + "%"
		args = append(args, p, p)
		clauses = append(clauses, "(t.subject ILIKE $"+itoa(len(args)-1)+" OR t.message ILIKE $"+itoa(len(args))+")")
	}

	exact := []struct{ col, val string }{
		{"t.status", f.Status},
		{"t.urgency", f.Urgency},
		{"t.issue_type", f.ProblemType},
		{"t.assigned_to", f.Assignee},
	}
	for _, e := range exact {
		if v := strings.TrimSpace(e.val); v != "" {
			args = append(args, v)
			clauses = append(clauses, e.col+" = $"+itoa(len(args)))
		}
	}
	if v := strings.TrimSpace(f.Requester); v != "" {
		args = append(args, v)
		clauses = append(clauses, "lower(t.requester_email) = lower($"+itoa(len(args))+")")
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

func sanitizeSort(s, def string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "created_at":
		return "t.created_at"
	case "updated_at":
		return "t.updated_at"
	case "urgency":
		return "array_position(ARRAY['Low','Medium','High','Critical']::text[], t.urgency)"
	default:
		return "t." + def
	}
}

func sanitizeOrder(o, def string) string {
	switch strings.ToLower(strings.TrimSpace(o)) {
	case "asc":
		return "ASC"
	case "desc":
		return "DESC"
	default:
		return strings.ToUpper(def)
	}
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func itoa(i int) string { return strconv.Itoa(i) }
