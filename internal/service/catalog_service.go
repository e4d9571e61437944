package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/helpme/helpdesk/internal/domain"
	"github.com/helpme/helpdesk/internal/repository"
	apperrors "github.com/helpme/helpdesk/pkg/util"
)

// CatalogService manages the service catalog.
type CatalogService struct {
	services repository.ServiceRepository
	orders   repository.ServiceOrderRepository
}

// NewCatalogService constructs the service.
func NewCatalogService(services repository.ServiceRepository, orders repository.ServiceOrderRepository) *CatalogService {
	return &CatalogService{services: services, orders: orders}
}

// ServiceInput describes catalog create/update payloads.
type ServiceInput struct {
	Name        string
	Description string
}

// Create adds a catalog service with a unique name.
func (s *CatalogService) Create(ctx context.Context, input ServiceInput) (*domain.Service, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("nome é obrigatório")
	}
	if _, err := s.services.GetByName(ctx, name); err == nil {
		return nil, apperrors.NewConflict("serviço já cadastrado")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	svc := &domain.Service{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Active:      true,
	}
	if err := s.services.Create(ctx, svc); err != nil {
		return nil, apperrors.MapError(err)
	}
	return svc, nil
}

// Update edits name/description of a catalog service.
func (s *CatalogService) Update(ctx context.Context, id string, input ServiceInput) (*domain.Service, error) {
	svc, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" && name != svc.Name {
		if _, err := s.services.GetByName(ctx, name); err == nil {
			return nil, apperrors.NewConflict("serviço já cadastrado")
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
		svc.Name = name
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		svc.Description = desc
	}
	if err := s.services.Update(ctx, svc); err != nil {
		return nil, apperrors.MapError(err)
	}
	return svc, nil
}

// Remove deletes an unreferenced service; services already linked to
// service orders are deactivated instead so old tickets keep resolving.
func (s *CatalogService) Remove(ctx context.Context, id string) (*domain.Service, bool, error) {
	svc, err := s.get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	references, err := s.orders.CountByService(ctx, id)
	if err != nil {
		return nil, false, apperrors.MapError(err)
	}
	if references == 0 {
		if err := s.services.Delete(ctx, id); err != nil {
			return nil, false, apperrors.MapError(err)
		}
		return svc, true, nil
	}
	svc.Active = false
	if err := s.services.Update(ctx, svc); err != nil {
		return nil, false, apperrors.MapError(err)
	}
	return svc, false, nil
}

// List returns catalog services.
func (s *CatalogService) List(ctx context.Context, activeOnly bool, page Page) ([]domain.Service, error) {
	services, err := s.services.List(ctx, activeOnly, page.Limit, page.Offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return services, nil
}

// Get fetches one service.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Service, error) {
	return s.get(ctx, id)
}

func (s *CatalogService) get(ctx context.Context, id string) (*domain.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("serviço")
		}
		return nil, apperrors.MapError(err)
	}
	return svc, nil
}
