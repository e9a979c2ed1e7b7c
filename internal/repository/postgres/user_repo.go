package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
	"github.com/amberbeaumont/IThelpdesklite/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepo struct{ db *pgxpool.Pool }

func NewUserRepo(db *pgxpool.Pool) *UserRepo { return &UserRepo{db: db} }

// SQLSTATE unique_violation
const uniqueViolation = "23505"

const userCols = `id, email, name, role, business_unit, created_at, updated_at`

func scanUser(row pgx.Row, u *models.User, extra ...any) error {
	dest := append([]any{&u.ID, &u.Email, &u.Name, &u.Role, &u.BusinessUnit, &u.CreatedAt, &u.UpdatedAt}, extra...)
	return row.Scan(dest...)
}

// Create user (stores bcrypt hash in password_h)
func (r *UserRepo) Create(ctx context.Context, u *models.User, passwordHash string) error {
	err := scanUser(r.db.QueryRow(ctx, `
		INSERT INTO users (email, name, role, business_unit, password_h)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING `+userCols,
		u.Email, u.Name, u.Role, u.BusinessUnit, passwordHash), u)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", repository.ErrConflict, pgErr.ConstraintName)
	}
	return err
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, string, error) {
	var u models.User
	var ph string
	err := scanUser(r.db.QueryRow(ctx, `SELECT `+userCols+`, password_h FROM users WHERE lower(email)=lower($1)`, email), &u, &ph)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", nil
		}
		return nil, "", err
	}
	return &u, ph, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := scanUser(r.db.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id::text=$1`, id), &u)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// -----------------------------------------------------------------------------
// Admin/list/update operations
// -----------------------------------------------------------------------------

// List returns a filtered, paginated list of users and total count.
// Filters: q (matches email or name, ILIKE), role (exact).
func (r *UserRepo) List(ctx context.Context, q, role string, limit, offset int) ([]models.User, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	clauses := []string{"1=1"}
	args := []any{}

	if s := strings.TrimSpace(q); s != "" {
		p := "%" + s + "%"
		args = append(args, p, p)
		clauses = append(clauses, "(email ILIKE $"+itoa(len(args)-1)+" OR name ILIKE $"+itoa(len(args))+")")
	}
	if s := strings.TrimSpace(role); s != "" {
		args = append(args, s)
		clauses = append(clauses, "role = $"+itoa(len(args)))
	}

	// Count
	countSQL := `SELECT COUNT(*) FROM users WHERE ` + strings.Join(clauses, " AND ")
	var total int
	if err := r.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// Page
	args = append(args, limit, offset)
	listSQL := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s
		ORDER BY name ASC, id
		LIMIT $%d OFFSET $%d
	`, userCols, strings.Join(clauses, " AND "), len(args)-1, len(args))
	out, err := r.query(ctx, listSQL, args...)
	return out, total, err
}

// All returns every user ordered by name. Used for report snapshots.
func (r *UserRepo) All(ctx context.Context) ([]models.User, error) {
	return r.query(ctx, `SELECT `+userCols+` FROM users ORDER BY name ASC, id`)
}

func (r *UserRepo) query(ctx context.Context, sql string, args ...any) ([]models.User, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepo) UpdateRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	return r.updateReturning(ctx, `UPDATE users SET role=$1, updated_at=now() WHERE id::text=$2 RETURNING `+userCols, role, id)
}

func (r *UserRepo) UpdateBasic(ctx context.Context, id, name, businessUnit string) (*models.User, error) {
	return r.updateReturning(ctx, `UPDATE users SET name=$1, business_unit=$2, updated_at=now() WHERE id::text=$3 RETURNING `+userCols,
		name, businessUnit, id)
}

func (r *UserRepo) updateReturning(ctx context.Context, sql string, args ...any) (*models.User, error) {
	var u models.User
	if err := scanUser(r.db.QueryRow(ctx, sql, args...), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FirstSupportID returns the id of the earliest support-capable user, used to
// route new tickets when the requester did not pick an assignee.
func (r *UserRepo) FirstSupportID(ctx context.Context) (string, error) {
	var id string
	err := r.db.QueryRow(ctx, `
		SELECT id FROM users WHERE role IN ($1,$2) ORDER BY created_at ASC LIMIT 1
	`, models.RoleITSupport, models.RoleAdmin).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	return id, err
}
