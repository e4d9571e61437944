package service

import (
	"context"

	"github.com/helpme/helpdesk/internal/domain"
	"github.com/helpme/helpdesk/internal/repository"
	apperrors "github.com/helpme/helpdesk/pkg/util"
)

// QueueService returns the correct subset of tickets for each caller
// role. It is state-free per request; role gating happens at the routes.
type QueueService struct {
	tickets repository.TicketRepository
}

// NewQueueService constructs the service.
func NewQueueService(tickets repository.TicketRepository) *QueueService {
	return &QueueService{tickets: tickets}
}

// Page bounds a queue listing.
type Page struct {
	Limit  int
	Offset int
}

// MyTickets lists tickets requested by the caller.
func (s *QueueService) MyTickets(ctx context.Context, requesterID string, page Page) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		RequesterID: &requesterID,
		Limit:       page.Limit,
		Offset:      page.Offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// AssignedTickets lists tickets assigned to the calling technician.
func (s *QueueService) AssignedTickets(ctx context.Context, technicianID string, page Page) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		TechnicianID: &technicianID,
		Limit:        page.Limit,
		Offset:       page.Offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// AllByStatus lists every ticket in the given status. The status query
// parameter is required and must be a known enum value.
func (s *QueueService) AllByStatus(ctx context.Context, statusParam string, page Page) ([]domain.Ticket, error) {
	if statusParam == "" {
		return nil, apperrors.NewValidationError("parâmetro status é obrigatório")
	}
	status, err := domain.ParseTicketStatus(statusParam)
	if err != nil {
		return nil, apperrors.NewValidationError("status inválido")
	}
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Statuses: []domain.TicketStatus{status},
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// OpenQueue lists tickets waiting for a technician (OPEN or REOPENED).
func (s *QueueService) OpenQueue(ctx context.Context, page Page) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Statuses: []domain.TicketStatus{domain.TicketStatusOpen, domain.TicketStatusReopened},
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}
