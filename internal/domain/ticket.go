package domain

import (
	"fmt"
	"time"
)

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusReopened   TicketStatus = "REOPENED"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// ParseTicketStatus validates a status string received from a client.
func ParseTicketStatus(value string) (TicketStatus, error) {
	switch TicketStatus(value) {
	case TicketStatusOpen, TicketStatusReopened, TicketStatusInProgress, TicketStatusClosed:
		return TicketStatus(value), nil
	default:
		return "", fmt.Errorf("status %q inválido", value)
	}
}

// Ticket is the aggregate for support requests. It has exactly one
// requester and at most one assigned technician at a time.
type Ticket struct {
	ID                 string
	OrderNumber        string
	Description        string
	Status             TicketStatus
	RequesterID        string
	TechnicianID       *string
	ClosureDescription *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	ClosedAt           *time.Time
}

var allowedTransitions = map[TicketStatus][]TicketStatus{
	TicketStatusOpen:       {TicketStatusInProgress},
	TicketStatusReopened:   {TicketStatusInProgress},
	TicketStatusInProgress: {TicketStatusClosed},
	TicketStatusClosed:     {TicketStatusReopened},
}

// CanTransition reports whether the status machine permits current → next.
func CanTransition(current, next TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ServiceOrder links a ticket to one catalog service.
type ServiceOrder struct {
	ID        string
	TicketID  string
	ServiceID string
	CreatedAt time.Time
}
