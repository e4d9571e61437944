package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helpme/helpdesk/internal/domain"
)

// ServiceOrderRepository persists ticket/service linkage rows.
type ServiceOrderRepository interface {
	Create(ctx context.Context, order *domain.ServiceOrder) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.ServiceOrder, error)
	CountByService(ctx context.Context, serviceID string) (int64, error)
}

type serviceOrderRepository struct {
	pool *pgxpool.Pool
}

// NewServiceOrderRepository builds repository.
func NewServiceOrderRepository(pool *pgxpool.Pool) ServiceOrderRepository {
	return &serviceOrderRepository{pool: pool}
}

func (r *serviceOrderRepository) Create(ctx context.Context, order *domain.ServiceOrder) error {
	const query = `
        INSERT INTO service_orders (ticket_id, service_id)
        VALUES ($1, $2)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		order.TicketID,
		order.ServiceID,
	).Scan(&order.ID, &order.CreatedAt)
}

func (r *serviceOrderRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.ServiceOrder, error) {
	const query = `
        SELECT id, ticket_id, service_id, created_at
        FROM service_orders WHERE ticket_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ServiceOrder
	for rows.Next() {
		var order domain.ServiceOrder
		if err := rows.Scan(&order.ID, &order.TicketID, &order.ServiceID, &order.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	return result, rows.Err()
}

func (r *serviceOrderRepository) CountByService(ctx context.Context, serviceID string) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM service_orders WHERE service_id=$1`, serviceID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
