package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/helpme/helpdesk/internal/domain"
	"github.com/helpme/helpdesk/internal/repository"
	apperrors "github.com/helpme/helpdesk/pkg/util"
)

// TechnicianService manages technician directory data and shifts.
type TechnicianService struct {
	users  *UserService
	shifts repository.ShiftRepository
}

// NewTechnicianService constructs the service.
func NewTechnicianService(users *UserService, shifts repository.ShiftRepository) *TechnicianService {
	return &TechnicianService{users: users, shifts: shifts}
}

// ShiftInput describes a working-hours window in "15:04" clock values.
type ShiftInput struct {
	StartsAt string
	EndsAt   string
}

// Create registers a technician account.
func (s *TechnicianService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	input.Role = string(domain.RoleTechnician)
	return s.users.Create(ctx, input)
}

// List returns technician accounts.
func (s *TechnicianService) List(ctx context.Context, activeOnly bool, page Page) ([]domain.User, error) {
	role := domain.RoleTechnician
	filter := repository.UserFilter{Role: &role, Limit: page.Limit, Offset: page.Offset}
	if activeOnly {
		active := true
		filter.Active = &active
	}
	return s.users.List(ctx, filter)
}

// Get fetches one technician.
func (s *TechnicianService) Get(ctx context.Context, id string) (*domain.User, error) {
	technician, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if technician.Role != domain.RoleTechnician {
		return nil, apperrors.NewNotFound("técnico")
	}
	return technician, nil
}

// Deactivate disables a technician account.
func (s *TechnicianService) Deactivate(ctx context.Context, id string) (*domain.User, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.users.Deactivate(ctx, id)
}

// SetShift creates or replaces the technician's working hours window.
func (s *TechnicianService) SetShift(ctx context.Context, technicianID string, input ShiftInput) (*domain.Shift, error) {
	if _, err := s.Get(ctx, technicianID); err != nil {
		return nil, err
	}
	start, err := time.Parse("15:04", input.StartsAt)
	if err != nil {
		return nil, apperrors.NewValidationError("horário inicial inválido")
	}
	end, err := time.Parse("15:04", input.EndsAt)
	if err != nil {
		return nil, apperrors.NewValidationError("horário final inválido")
	}
	if !end.After(start) {
		return nil, apperrors.NewValidationError("expediente deve terminar após o início")
	}

	shift := &domain.Shift{
		TechnicianID: technicianID,
		StartsAt:     input.StartsAt,
		EndsAt:       input.EndsAt,
	}
	if err := s.shifts.Upsert(ctx, shift); err != nil {
		return nil, apperrors.MapError(err)
	}
	return shift, nil
}

// GetShift returns the technician's shift.
func (s *TechnicianService) GetShift(ctx context.Context, technicianID string) (*domain.Shift, error) {
	shift, err := s.shifts.GetByTechnician(ctx, technicianID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("expediente")
		}
		return nil, apperrors.MapError(err)
	}
	return shift, nil
}

// DeleteShift removes the technician's shift.
func (s *TechnicianService) DeleteShift(ctx context.Context, technicianID string) error {
	if err := s.shifts.Delete(ctx, technicianID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("expediente")
		}
		return apperrors.MapError(err)
	}
	return nil
}
