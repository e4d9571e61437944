package domain

import "time"

// Service is a catalog entry that tickets can be opened against.
type Service struct {
	ID          string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
