package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpme/helpdesk/internal/auth"
	"github.com/helpme/helpdesk/internal/service"
	apperrors "github.com/helpme/helpdesk/pkg/util"
)

// FilaHandler exposes the role-scoped ticket queues.
type FilaHandler struct {
	queue *service.QueueService
}

// NewFilaHandler constructs handler.
func NewFilaHandler(queue *service.QueueService) *FilaHandler {
	return &FilaHandler{queue: queue}
}

// MyTickets GET /filadechamados/meus-chamados (USER).
func (h *FilaHandler) MyTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	tickets, err := h.queue.MyTickets(c.Context(), principal.User.ID, parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(ticketResponses(tickets))
}

// AssignedTickets GET /filadechamados/chamados-atribuidos (TECHNICIAN).
func (h *FilaHandler) AssignedTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	tickets, err := h.queue.AssignedTickets(c.Context(), principal.User.ID, parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(ticketResponses(tickets))
}

// AllByStatus GET /filadechamados/todos-chamados?status= (ADMIN).
func (h *FilaHandler) AllByStatus(c *fiber.Ctx) error {
	tickets, err := h.queue.AllByStatus(c.Context(), c.Query("status"), parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(ticketResponses(tickets))
}

// OpenQueue GET /filadechamados/abertos (ADMIN, TECHNICIAN).
func (h *FilaHandler) OpenQueue(c *fiber.Ctx) error {
	tickets, err := h.queue.OpenQueue(c.Context(), parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(ticketResponses(tickets))
}
