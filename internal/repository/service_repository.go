package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helpme/helpdesk/internal/domain"
)

// ServiceRepository persists catalog services.
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) error
	Update(ctx context.Context, service *domain.Service) error
	GetByID(ctx context.Context, id string) (*domain.Service, error)
	GetByName(ctx context.Context, name string) (*domain.Service, error)
	List(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.Service, error)
	Delete(ctx context.Context, id string) error
}

type serviceRepository struct {
	pool *pgxpool.Pool
}

// NewServiceRepository builds repository.
func NewServiceRepository(pool *pgxpool.Pool) ServiceRepository {
	return &serviceRepository{pool: pool}
}

const serviceColumns = `id, name, description, active, created_at, updated_at`

func (r *serviceRepository) Create(ctx context.Context, service *domain.Service) error {
	const query = `
        INSERT INTO services (name, description, active)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		service.Name,
		service.Description,
		service.Active,
	).Scan(&service.ID, &service.CreatedAt, &service.UpdatedAt)
}

func (r *serviceRepository) Update(ctx context.Context, service *domain.Service) error {
	const query = `
        UPDATE services SET name=$1, description=$2, active=$3, updated_at=NOW()
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		service.Name,
		service.Description,
		service.Active,
		service.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceRepository) GetByID(ctx context.Context, id string) (*domain.Service, error) {
	return r.fetchSingle(ctx, `SELECT `+serviceColumns+` FROM services WHERE id=$1`, id)
}

func (r *serviceRepository) GetByName(ctx context.Context, name string) (*domain.Service, error) {
	return r.fetchSingle(ctx, `SELECT `+serviceColumns+` FROM services WHERE name=$1`, name)
}

func (r *serviceRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Service, error) {
	var service domain.Service
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&service.ID,
		&service.Name,
		&service.Description,
		&service.Active,
		&service.CreatedAt,
		&service.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *serviceRepository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE 1=1`
	if activeOnly {
		query += ` AND active=TRUE`
	}
	query += orderLimitOffset("name ASC", limit, offset)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Service
	for rows.Next() {
		var service domain.Service
		if err := rows.Scan(
			&service.ID,
			&service.Name,
			&service.Description,
			&service.Active,
			&service.CreatedAt,
			&service.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, service)
	}
	return result, rows.Err()
}

func (r *serviceRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
