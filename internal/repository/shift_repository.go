package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helpme/helpdesk/internal/domain"
)

// ShiftRepository persists technician working-hours windows.
type ShiftRepository interface {
	Upsert(ctx context.Context, shift *domain.Shift) error
	GetByTechnician(ctx context.Context, technicianID string) (*domain.Shift, error)
	Delete(ctx context.Context, technicianID string) error
}

type shiftRepository struct {
	pool *pgxpool.Pool
}

// NewShiftRepository builds repository.
func NewShiftRepository(pool *pgxpool.Pool) ShiftRepository {
	return &shiftRepository{pool: pool}
}

func (r *shiftRepository) Upsert(ctx context.Context, shift *domain.Shift) error {
	const query = `
        INSERT INTO shifts (technician_id, starts_at, ends_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (technician_id)
        DO UPDATE SET starts_at=EXCLUDED.starts_at, ends_at=EXCLUDED.ends_at, updated_at=NOW()
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		shift.TechnicianID,
		shift.StartsAt,
		shift.EndsAt,
	).Scan(&shift.ID, &shift.CreatedAt, &shift.UpdatedAt)
}

func (r *shiftRepository) GetByTechnician(ctx context.Context, technicianID string) (*domain.Shift, error) {
	const query = `
        SELECT id, technician_id, starts_at, ends_at, created_at, updated_at
        FROM shifts WHERE technician_id=$1`
	var shift domain.Shift
	if err := r.pool.QueryRow(ctx, query, technicianID).Scan(
		&shift.ID,
		&shift.TechnicianID,
		&shift.StartsAt,
		&shift.EndsAt,
		&shift.CreatedAt,
		&shift.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) Delete(ctx context.Context, technicianID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM shifts WHERE technician_id=$1`, technicianID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
