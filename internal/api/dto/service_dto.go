package dto

import "time"

// ServiceRequest payload for catalog create/update.
type ServiceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ServiceResponse catalog entry.
type ServiceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ShiftRequest payload for setting a technician's expediente.
type ShiftRequest struct {
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
}

// ShiftResponse working-hours window.
type ShiftResponse struct {
	ID           string    `json:"id"`
	TechnicianID string    `json:"technician_id"`
	StartsAt     string    `json:"starts_at"`
	EndsAt       string    `json:"ends_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
