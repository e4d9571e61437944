package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpme/helpdesk/internal/domain"
	apperrors "github.com/helpme/helpdesk/pkg/util"
)

// RequireRoles allows only callers whose role is in the allowed set. The
// error body stays generic regardless of which roles the route wanted.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("acesso negado")
		}
		return c.Next()
	}
}

// RequireAuthenticated ensures any logged-in caller.
func RequireAuthenticated() fiber.Handler {
	return RequireRoles()
}
