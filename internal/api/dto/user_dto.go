package dto

import (
	"time"

	"github.com/helpme/helpdesk/internal/domain"
)

// CreateUserRequest payload for admin account creation.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Sector   string `json:"sector"`
}

// UpdateProfileRequest payload for PUT /usuario/perfil.
type UpdateProfileRequest struct {
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Sector    string      `json:"sector"`
	Active    bool        `json:"active"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
