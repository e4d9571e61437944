package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpme/helpdesk/internal/api/dto"
	"github.com/helpme/helpdesk/internal/service"
	apperrors "github.com/helpme/helpdesk/pkg/util"
)

// TecnicoHandler manages technician directory endpoints.
type TecnicoHandler struct {
	technicians *service.TechnicianService
}

// NewTecnicoHandler constructs handler.
func NewTecnicoHandler(technicians *service.TechnicianService) *TecnicoHandler {
	return &TecnicoHandler{technicians: technicians}
}

// Create POST /tecnico (ADMIN).
func (h *TecnicoHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido")
	}
	technician, err := h.technicians.Create(c.Context(), service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Sector:   req.Sector,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(userResponse(technician))
}

// List GET /tecnico (ADMIN).
func (h *TecnicoHandler) List(c *fiber.Ctx) error {
	activeOnly := c.Query("ativos") == "true"
	technicians, err := h.technicians.List(c.Context(), activeOnly, parsePage(c))
	if err != nil {
		return err
	}
	return c.JSON(userResponses(technicians))
}

// Get GET /tecnico/:id (ADMIN).
func (h *TecnicoHandler) Get(c *fiber.Ctx) error {
	technician, err := h.technicians.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(userResponse(technician))
}

// Deactivate DELETE /tecnico/:id (ADMIN).
func (h *TecnicoHandler) Deactivate(c *fiber.Ctx) error {
	technician, err := h.technicians.Deactivate(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(userResponse(technician))
}

// SetShift PUT /tecnico/:id/expediente (ADMIN).
func (h *TecnicoHandler) SetShift(c *fiber.Ctx) error {
	var req dto.ShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido")
	}
	shift, err := h.technicians.SetShift(c.Context(), c.Params("id"), service.ShiftInput{
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(shiftResponse(shift))
}

// GetShift GET /tecnico/:id/expediente.
func (h *TecnicoHandler) GetShift(c *fiber.Ctx) error {
	shift, err := h.technicians.GetShift(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(shiftResponse(shift))
}

// DeleteShift DELETE /tecnico/:id/expediente (ADMIN).
func (h *TecnicoHandler) DeleteShift(c *fiber.Ctx) error {
	if err := h.technicians.DeleteShift(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
