package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/helpme/helpdesk/internal/api/dto"
	"github.com/helpme/helpdesk/internal/domain"
	"github.com/helpme/helpdesk/internal/service"
)

func parsePage(c *fiber.Ctx) service.Page {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	return service.Page{Limit: pageSize, Offset: (page - 1) * pageSize}
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Sector:    user.Sector,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func userResponses(users []domain.User) []dto.UserResponse {
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return items
}

func ticketResponse(ticket *domain.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:                 ticket.ID,
		OrderNumber:        ticket.OrderNumber,
		Description:        ticket.Description,
		Status:             ticket.Status,
		RequesterID:        ticket.RequesterID,
		TechnicianID:       ticket.TechnicianID,
		ClosureDescription: ticket.ClosureDescription,
		CreatedAt:          ticket.CreatedAt,
		UpdatedAt:          ticket.UpdatedAt,
		ClosedAt:           ticket.ClosedAt,
	}
}

func ticketResponses(tickets []domain.Ticket) []dto.TicketResponse {
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i]))
	}
	return items
}

func historyResponses(entries []domain.TicketHistoryEntry) []dto.HistoryEntryResponse {
	items := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.HistoryEntryResponse{
			ID:          entry.ID.Hex(),
			FromStatus:  entry.FromStatus,
			ToStatus:    entry.ToStatus,
			Description: entry.Description,
			ActorID:     entry.ActorID,
			ActorRole:   entry.ActorRole,
			CreatedAt:   entry.CreatedAt,
		})
	}
	return items
}

func serviceResponse(svc *domain.Service) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:          svc.ID,
		Name:        svc.Name,
		Description: svc.Description,
		Active:      svc.Active,
		CreatedAt:   svc.CreatedAt,
		UpdatedAt:   svc.UpdatedAt,
	}
}

func shiftResponse(shift *domain.Shift) dto.ShiftResponse {
	return dto.ShiftResponse{
		ID:           shift.ID,
		TechnicianID: shift.TechnicianID,
		StartsAt:     shift.StartsAt,
		EndsAt:       shift.EndsAt,
		CreatedAt:    shift.CreatedAt,
		UpdatedAt:    shift.UpdatedAt,
	}
}
