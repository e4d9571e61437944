package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpme/helpdesk/internal/api/dto"
	"github.com/helpme/helpdesk/internal/auth"
	"github.com/helpme/helpdesk/internal/service"
	apperrors "github.com/helpme/helpdesk/pkg/util"
)

// ChamadoHandler manages ticket lifecycle endpoints.
type ChamadoHandler struct {
	tickets *service.TicketService
}

// NewChamadoHandler constructs handler.
func NewChamadoHandler(tickets *service.TicketService) *ChamadoHandler {
	return &ChamadoHandler{tickets: tickets}
}

// Open POST /chamado.
func (h *ChamadoHandler) Open(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.OpenTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido")
	}

	ticket, err := h.tickets.Open(c.Context(), principal.User, service.OpenTicketInput{
		Description: req.Description,
		ServiceIDs:  req.ServiceIDs,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(ticketResponse(ticket))
}

// Get GET /chamado/:id.
func (h *ChamadoHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	detail, err := h.tickets.Get(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}

	orders := make([]dto.ServiceOrderResponse, 0, len(detail.ServiceOrders))
	for _, order := range detail.ServiceOrders {
		orders = append(orders, dto.ServiceOrderResponse{
			ID:        order.ID,
			ServiceID: order.ServiceID,
			CreatedAt: order.CreatedAt,
		})
	}
	return c.JSON(dto.TicketDetailResponse{
		TicketResponse: ticketResponse(detail.Ticket),
		ServiceOrders:  orders,
		History:        historyResponses(detail.History),
	})
}

// Update PUT /chamado/:id.
func (h *ChamadoHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido")
	}
	ticket, err := h.tickets.UpdateDescription(c.Context(), principal.User, c.Params("id"), req.Description)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(ticket))
}

// Assign POST /chamado/:id/atribuir.
func (h *ChamadoHandler) Assign(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AssignTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido")
	}
	ticket, err := h.tickets.Assign(c.Context(), principal.User, c.Params("id"), req.TechnicianID)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(ticket))
}

// Close POST /chamado/:id/encerrar.
func (h *ChamadoHandler) Close(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CloseTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido")
	}
	ticket, err := h.tickets.Close(c.Context(), principal.User, c.Params("id"), req.ClosureDescription)
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(ticket))
}

// Reopen POST /chamado/:id/reabrir.
func (h *ChamadoHandler) Reopen(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	ticket, err := h.tickets.Reopen(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(ticketResponse(ticket))
}

// History GET /chamado/:id/historico.
func (h *ChamadoHandler) History(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	entries, err := h.tickets.History(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(historyResponses(entries))
}
