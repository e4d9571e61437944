package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpme/helpdesk/internal/api/dto"
	"github.com/helpme/helpdesk/internal/service"
	apperrors "github.com/helpme/helpdesk/pkg/util"
)

// AuthHandler exposes login/refresh/logout endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido")
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email e senha são obrigatórios")
	}

	user, pair, err := h.auth.Login(c.Context(), c.IP(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"user": userResponse(user),
		"auth": authResponse(pair),
	})
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido")
	}
	if req.RefreshToken == "" {
		return apperrors.NewValidationError("refresh_token é obrigatório")
	}

	user, pair, err := h.auth.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"user": userResponse(user),
		"auth": authResponse(pair),
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("payload inválido")
	}
	if req.RefreshToken == "" {
		return apperrors.NewValidationError("refresh_token é obrigatório")
	}
	if err := h.auth.Logout(c.Context(), req.RefreshToken); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func authResponse(pair *service.TokenPair) dto.AuthResponse {
	return dto.AuthResponse{
		AccessToken:      pair.AccessToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshToken:     pair.RefreshToken,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}
}
