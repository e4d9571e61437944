package domain

import "time"

// Shift (expediente) is a technician's working hours window, one-to-one
// with the technician. Times are clock values in the "15:04" layout.
type Shift struct {
	ID           string
	TechnicianID string
	StartsAt     string
	EndsAt       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
