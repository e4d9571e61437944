package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpme/helpdesk/internal/api/dto"
	"github.com/helpme/helpdesk/internal/auth"
	"github.com/helpme/helpdesk/internal/domain"
	"github.com/helpme/helpdesk/internal/repository"
	"github.com/helpme/helpdesk/internal/service"
	apperrors "github.com/helpme/helpdesk/pkg/util"
)

// UsuarioHandler manages account endpoints.
type UsuarioHandler struct {
	users *service.UserService
}

// NewUsuarioHandler constructs handler.
func NewUsuarioHandler(users *service.UserService) *UsuarioHandler {
	return &UsuarioHandler{users: users}
}

// Create POST /usuario (ADMIN).
func (h *UsuarioHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido")
	}
	if req.Role == "" {
		req.Role = string(domain.RoleUser)
	}
	user, err := h.users.Create(c.Context(), service.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Sector:   req.Sector,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(userResponse(user))
}

// List GET /usuario (ADMIN).
func (h *UsuarioHandler) List(c *fiber.Ctx) error {
	page := parsePage(c)
	filter := repository.UserFilter{Limit: page.Limit, Offset: page.Offset}
	if roleParam := c.Query("role"); roleParam != "" {
		role, err := domain.ParseRole(roleParam)
		if err != nil {
			return apperrors.NewValidationError("papel inválido")
		}
		filter.Role = &role
	}
	if sector := c.Query("setor"); sector != "" {
		filter.Sector = &sector
	}
	users, err := h.users.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(userResponses(users))
}

// Profile GET /usuario/perfil.
func (h *UsuarioHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(userResponse(principal.User))
}

// UpdateProfile PUT /usuario/perfil.
func (h *UsuarioHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido")
	}
	user, err := h.users.UpdateProfile(c.Context(), principal.User.ID, req.Name, req.Sector)
	if err != nil {
		return err
	}
	return c.JSON(userResponse(user))
}

// Get GET /usuario/:id (ADMIN).
func (h *UsuarioHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(userResponse(user))
}

// Deactivate DELETE /usuario/:id (ADMIN).
func (h *UsuarioHandler) Deactivate(c *fiber.Ctx) error {
	user, err := h.users.Deactivate(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(userResponse(user))
}
