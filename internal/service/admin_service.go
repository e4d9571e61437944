package service

import (
	"context"

	"github.com/helpme/helpdesk/internal/domain"
	"github.com/helpme/helpdesk/internal/repository"
	apperrors "github.com/helpme/helpdesk/pkg/util"
)

// AdminService aggregates operational dashboard figures.
type AdminService struct {
	tickets repository.TicketRepository
	users   repository.UserRepository
}

// NewAdminService constructs the service.
func NewAdminService(tickets repository.TicketRepository, users repository.UserRepository) *AdminService {
	return &AdminService{tickets: tickets, users: users}
}

// DashboardSummary is the admin operational snapshot.
type DashboardSummary struct {
	TicketsByStatus   map[domain.TicketStatus]int64
	OpenQueueDepth    int64
	ActiveTechnicians int64
}

// Dashboard returns ticket counts per status plus queue/staffing depth.
func (s *AdminService) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	counts, err := s.tickets.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	for _, status := range []domain.TicketStatus{
		domain.TicketStatusOpen,
		domain.TicketStatusReopened,
		domain.TicketStatusInProgress,
		domain.TicketStatusClosed,
	} {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}

	technicians, err := s.users.CountByRole(ctx, domain.RoleTechnician, true)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	return &DashboardSummary{
		TicketsByStatus:   counts,
		OpenQueueDepth:    counts[domain.TicketStatusOpen] + counts[domain.TicketStatusReopened],
		ActiveTechnicians: technicians,
	}, nil
}
