package dto

import (
	"time"

	"github.com/helpme/helpdesk/internal/domain"
)

// OpenTicketRequest payload.
type OpenTicketRequest struct {
	Description string   `json:"description"`
	ServiceIDs  []string `json:"service_ids"`
}

// AssignTicketRequest payload.
type AssignTicketRequest struct {
	TechnicianID string `json:"technician_id"`
}

// CloseTicketRequest payload.
type CloseTicketRequest struct {
	ClosureDescription string `json:"closure_description"`
}

// UpdateTicketRequest payload.
type UpdateTicketRequest struct {
	Description string `json:"description"`
}

// TicketResponse summary of a ticket.
type TicketResponse struct {
	ID                 string              `json:"id"`
	OrderNumber        string              `json:"order_number"`
	Description        string              `json:"description"`
	Status             domain.TicketStatus `json:"status"`
	RequesterID        string              `json:"requester_id"`
	TechnicianID       *string             `json:"technician_id"`
	ClosureDescription *string             `json:"closure_description,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	ClosedAt           *time.Time          `json:"closed_at,omitempty"`
}

// ServiceOrderResponse linkage row.
type ServiceOrderResponse struct {
	ID        string    `json:"id"`
	ServiceID string    `json:"service_id"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryEntryResponse audit trail entry.
type HistoryEntryResponse struct {
	ID          string              `json:"id"`
	FromStatus  domain.TicketStatus `json:"from_status,omitempty"`
	ToStatus    domain.TicketStatus `json:"to_status"`
	Description string              `json:"description"`
	ActorID     string              `json:"actor_id"`
	ActorRole   domain.Role         `json:"actor_role"`
	CreatedAt   time.Time           `json:"created_at"`
}

// TicketDetailResponse provides full ticket info.
type TicketDetailResponse struct {
	TicketResponse
	ServiceOrders []ServiceOrderResponse `json:"service_orders"`
	History       []HistoryEntryResponse `json:"history"`
}
