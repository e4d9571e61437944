package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpme/helpdesk/internal/api/dto"
	"github.com/helpme/helpdesk/internal/service"
	apperrors "github.com/helpme/helpdesk/pkg/util"
)

// ServicoHandler manages the service catalog endpoints.
type ServicoHandler struct {
	catalog *service.CatalogService
}

// NewServicoHandler constructs handler.
func NewServicoHandler(catalog *service.CatalogService) *ServicoHandler {
	return &ServicoHandler{catalog: catalog}
}

// Create POST /servico (ADMIN).
func (h *ServicoHandler) Create(c *fiber.Ctx) error {
	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido")
	}
	svc, err := h.catalog.Create(c.Context(), service.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(serviceResponse(svc))
}

// List GET /servico.
func (h *ServicoHandler) List(c *fiber.Ctx) error {
	activeOnly := c.Query("ativos") == "true"
	services, err := h.catalog.List(c.Context(), activeOnly, parsePage(c))
	if err != nil {
		return err
	}
	items := make([]dto.ServiceResponse, 0, len(services))
	for i := range services {
		items = append(items, serviceResponse(&services[i]))
	}
	return c.JSON(items)
}

// Get GET /servico/:id.
func (h *ServicoHandler) Get(c *fiber.Ctx) error {
	svc, err := h.catalog.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(serviceResponse(svc))
}

// Update PUT /servico/:id (ADMIN).
func (h *ServicoHandler) Update(c *fiber.Ctx) error {
	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido")
	}
	svc, err := h.catalog.Update(c.Context(), c.Params("id"), service.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(serviceResponse(svc))
}

// Delete DELETE /servico/:id (ADMIN). Referenced services are deactivated
// instead of removed.
func (h *ServicoHandler) Delete(c *fiber.Ctx) error {
	svc, deleted, err := h.catalog.Remove(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if deleted {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(serviceResponse(svc))
}
