package domain

import (
	"fmt"
	"time"
)

// Role enumerates the access levels recognized by the API.
type Role string

const (
	RoleUser       Role = "USER"
	RoleTechnician Role = "TECHNICIAN"
	RoleAdmin      Role = "ADMIN"
)

// ParseRole validates a role string at the boundary.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleUser, RoleTechnician, RoleAdmin:
		return Role(value), nil
	default:
		return "", fmt.Errorf("unknown role %q", value)
	}
}

// User models anyone who can authenticate: requesters, technicians, admins.
// Accounts are deactivated, never hard-deleted in the normal flow.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Sector       string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
