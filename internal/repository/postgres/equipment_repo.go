package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/amberbeaumont/IThelpdesklite/internal/models"
	"github.com/amberbeaumont/IThelpdesklite/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EquipmentRepo struct{ db *pgxpool.Pool }

func NewEquipmentRepo(db *pgxpool.Pool) *EquipmentRepo { return &EquipmentRepo{db: db} }

const equipmentCols = `
	id, item_name, type, serial_number, COALESCE(assigned_to, ''),
	acquired_at, status, details, business_unit, created_at, updated_at`

func scanEquipment(row pgx.Row, e *models.Equipment) error {
	var acquired *time.Time
	if err := row.Scan(&e.ID, &e.Name, &e.Type, &e.SerialNumber, &e.AssignedTo,
		&acquired, &e.Status, &e.Details, &e.BusinessUnit, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return err
	}
	if acquired != nil {
		e.AcquiredAt = *acquired
	}
	return nil
}

func (r *EquipmentRepo) All(ctx context.Context) ([]models.Equipment, error) {
	rows, err := r.db.Query(ctx, `SELECT `+equipmentCols+` FROM equipment ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Equipment
	for rows.Next() {
		var e models.Equipment
		if err := scanEquipment(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EquipmentRepo) Get(ctx context.Context, id int64) (*models.Equipment, error) {
	var e models.Equipment
	if err := scanEquipment(r.db.QueryRow(ctx, `SELECT `+equipmentCols+` FROM equipment WHERE id=$1`, id), &e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepo) Create(ctx context.Context, e *models.Equipment) error {
	now := time.Now()
	return r.db.QueryRow(ctx, `
		INSERT INTO equipment (item_name, type, serial_number, assigned_to, acquired_at, status, details, business_unit, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$9)
		RETURNING id, created_at, updated_at
	`, e.Name, e.Type, e.SerialNumber, nullIfEmpty(e.AssignedTo), nullTime(e.AcquiredAt), e.Status, e.Details, e.BusinessUnit, now,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EquipmentRepo) Update(ctx context.Context, e *models.Equipment) error {
	e.UpdatedAt = time.Now()
	ct, err := r.db.Exec(ctx, `
		UPDATE equipment SET
			item_name=$1, type=$2, serial_number=$3, assigned_to=$4, acquired_at=$5, status=$6, details=$7, business_unit=$8, updated_at=$9
		WHERE id=$10
	`, e.Name, e.Type, e.SerialNumber, nullIfEmpty(e.AssignedTo), nullTime(e.AcquiredAt), e.Status, e.Details, e.BusinessUnit, e.UpdatedAt, e.ID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepo) Delete(ctx context.Context, id int64) error {
	ct, err := r.db.Exec(ctx, `DELETE FROM equipment WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
