package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/helpme/helpdesk/internal/domain"
	"github.com/helpme/helpdesk/internal/events"
	"github.com/helpme/helpdesk/internal/repository"
	apperrors "github.com/helpme/helpdesk/pkg/util"
)

// TicketService coordinates the ticket lifecycle. Every transition writes
// exactly one history entry to the document store.
type TicketService struct {
	tickets  repository.TicketRepository
	orders   repository.ServiceOrderRepository
	services repository.ServiceRepository
	users    repository.UserRepository
	history  repository.TicketHistoryRepository
	dispatch events.Dispatcher
}

// TicketDependencies bundles repositories for the ticket service.
type TicketDependencies struct {
	TicketRepo       repository.TicketRepository
	ServiceOrderRepo repository.ServiceOrderRepository
	ServiceRepo      repository.ServiceRepository
	UserRepo         repository.UserRepository
	HistoryRepo      repository.TicketHistoryRepository
	Dispatcher       events.Dispatcher
}

// OpenTicketInput describes ticket creation payload.
type OpenTicketInput struct {
	Description string
	ServiceIDs  []string
}

// TicketDetail bundles a ticket with its linkage and audit trail.
type TicketDetail struct {
	Ticket        *domain.Ticket
	ServiceOrders []domain.ServiceOrder
	History       []domain.TicketHistoryEntry
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:  deps.TicketRepo,
		orders:   deps.ServiceOrderRepo,
		services: deps.ServiceRepo,
		users:    deps.UserRepo,
		history:  deps.HistoryRepo,
		dispatch: deps.Dispatcher,
	}
}

// Open creates a ticket in OPEN status owned by the requester and
// allocates one service order per selected service.
func (s *TicketService) Open(ctx context.Context, requester *domain.User, input OpenTicketInput) (*domain.Ticket, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, apperrors.NewValidationError("descrição é obrigatória")
	}
	if len(input.ServiceIDs) == 0 {
		return nil, apperrors.NewValidationError("selecione ao menos um serviço")
	}
	for _, serviceID := range input.ServiceIDs {
		svc, err := s.services.GetByID(ctx, serviceID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("serviço")
			}
			return nil, apperrors.MapError(err)
		}
		if !svc.Active {
			return nil, apperrors.NewConflict("serviço inativo")
		}
	}

	ticket := &domain.Ticket{
		OrderNumber: generateOrderNumber(),
		Description: description,
		Status:      domain.TicketStatusOpen,
		RequesterID: requester.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	for _, serviceID := range input.ServiceIDs {
		order := &domain.ServiceOrder{TicketID: ticket.ID, ServiceID: serviceID}
		if err := s.orders.Create(ctx, order); err != nil {
			return nil, apperrors.MapError(err)
		}
	}

	if err := s.appendHistory(ctx, requester, ticket.ID, "", domain.TicketStatusOpen, "chamado aberto"); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    events.Actor{ID: requester.ID, Role: requester.Role},
		Payload: events.TicketCreatedPayload{
			OrderNumber: ticket.OrderNumber,
			ServiceIDs:  input.ServiceIDs,
		},
	})
	return ticket, nil
}

// Assign transitions OPEN/REOPENED → IN_PROGRESS and sets the technician.
// Admins assign anyone; technicians assign themselves.
func (s *TicketService) Assign(ctx context.Context, actor *domain.User, ticketID, technicianID string) (*domain.Ticket, error) {
	switch actor.Role {
	case domain.RoleAdmin:
		if technicianID == "" {
			return nil, apperrors.NewValidationError("técnico é obrigatório")
		}
	case domain.RoleTechnician:
		if technicianID == "" {
			technicianID = actor.ID
		}
		if technicianID != actor.ID {
			return nil, apperrors.NewForbidden("acesso negado")
		}
	default:
		return nil, apperrors.NewForbidden("acesso negado")
	}

	technician, err := s.users.GetByID(ctx, technicianID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("técnico")
		}
		return nil, apperrors.MapError(err)
	}
	if technician.Role != domain.RoleTechnician || !technician.Active {
		return nil, apperrors.NewConflict("técnico indisponível")
	}

	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(ticket.Status, domain.TicketStatusInProgress) {
		return nil, apperrors.NewConflict("transição de status inválida")
	}

	oldStatus := ticket.Status
	ticket.Status = domain.TicketStatusInProgress
	ticket.TechnicianID = &technician.ID
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.appendHistory(ctx, actor, ticket.ID, oldStatus, ticket.Status, "chamado atribuído ao técnico "+technician.Name); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.Event{
		Type:     events.EventTicketAssigned,
		TicketID: ticket.ID,
		Actor:    events.Actor{ID: actor.ID, Role: actor.Role},
		Payload:  events.TicketAssignedPayload{TechnicianID: technician.ID},
	})
	return ticket, nil
}

// Close transitions IN_PROGRESS → CLOSED and stamps the closure.
// Only the assigned technician or an admin may close.
func (s *TicketService) Close(ctx context.Context, actor *domain.User, ticketID, closureDescription string) (*domain.Ticket, error) {
	closureDescription = strings.TrimSpace(closureDescription)
	if closureDescription == "" {
		return nil, apperrors.NewValidationError("descrição de encerramento é obrigatória")
	}

	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !s.canResolve(actor, ticket) {
		return nil, apperrors.NewForbidden("acesso negado")
	}
	if !domain.CanTransition(ticket.Status, domain.TicketStatusClosed) {
		return nil, apperrors.NewConflict("transição de status inválida")
	}

	now := time.Now()
	oldStatus := ticket.Status
	ticket.Status = domain.TicketStatusClosed
	ticket.ClosureDescription = &closureDescription
	ticket.ClosedAt = &now
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.appendHistory(ctx, actor, ticket.ID, oldStatus, ticket.Status, closureDescription); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishStatusChange(ctx, actor, ticket.ID, oldStatus, ticket.Status, closureDescription)
	return ticket, nil
}

// Reopen transitions CLOSED → REOPENED. Allowed only for the requester or
// an admin; the previous technician assignment is released.
func (s *TicketService) Reopen(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && ticket.RequesterID != actor.ID {
		return nil, apperrors.NewForbidden("acesso negado")
	}
	if !domain.CanTransition(ticket.Status, domain.TicketStatusReopened) {
		return nil, apperrors.NewConflict("transição de status inválida")
	}

	oldStatus := ticket.Status
	ticket.Status = domain.TicketStatusReopened
	ticket.TechnicianID = nil
	ticket.ClosedAt = nil
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.appendHistory(ctx, actor, ticket.ID, oldStatus, ticket.Status, "chamado reaberto"); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishStatusChange(ctx, actor, ticket.ID, oldStatus, ticket.Status, "chamado reaberto")
	return ticket, nil
}

// UpdateDescription lets the requester adjust an OPEN ticket.
func (s *TicketService) UpdateDescription(ctx context.Context, actor *domain.User, ticketID, description string) (*domain.Ticket, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperrors.NewValidationError("descrição é obrigatória")
	}
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && ticket.RequesterID != actor.ID {
		return nil, apperrors.NewForbidden("acesso negado")
	}
	if ticket.Status != domain.TicketStatusOpen && ticket.Status != domain.TicketStatusReopened {
		return nil, apperrors.NewConflict("chamado em atendimento não pode ser alterado")
	}
	ticket.Description = description
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// Get returns a ticket with its service orders and history. Access is
// restricted to the requester, the assigned technician, or an admin.
func (s *TicketService) Get(ctx context.Context, actor *domain.User, ticketID string) (*TicketDetail, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !s.canView(actor, ticket) {
		return nil, apperrors.NewForbidden("acesso negado")
	}
	orders, err := s.orders.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	history, err := s.history.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &TicketDetail{Ticket: ticket, ServiceOrders: orders, History: history}, nil
}

// History lists the ticket's audit trail ascending by time.
func (s *TicketService) History(ctx context.Context, actor *domain.User, ticketID string) ([]domain.TicketHistoryEntry, error) {
	ticket, err := s.getTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !s.canView(actor, ticket) {
		return nil, apperrors.NewForbidden("acesso negado")
	}
	history, err := s.history.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return history, nil
}

func (s *TicketService) getTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("chamado")
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *TicketService) canView(actor *domain.User, ticket *domain.Ticket) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}
	if ticket.RequesterID == actor.ID {
		return true
	}
	return ticket.TechnicianID != nil && *ticket.TechnicianID == actor.ID
}

func (s *TicketService) canResolve(actor *domain.User, ticket *domain.Ticket) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}
	return actor.Role == domain.RoleTechnician &&
		ticket.TechnicianID != nil && *ticket.TechnicianID == actor.ID
}

func (s *TicketService) appendHistory(ctx context.Context, actor *domain.User, ticketID string, from, to domain.TicketStatus, description string) error {
	return s.history.Append(ctx, &domain.TicketHistoryEntry{
		TicketID:    ticketID,
		FromStatus:  from,
		ToStatus:    to,
		Description: description,
		ActorID:     actor.ID,
		ActorRole:   actor.Role,
	})
}

func (s *TicketService) publishStatusChange(ctx context.Context, actor *domain.User, ticketID string, oldStatus, newStatus domain.TicketStatus, comment string) {
	s.publish(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticketID,
		Actor:    events.Actor{ID: actor.ID, Role: actor.Role},
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Comment:   comment,
		},
	})
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatch == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatch.Publish(ctx, event)
}

func generateOrderNumber() string {
	return "HM-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
