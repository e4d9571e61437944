package service

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/helpme/helpdesk/internal/domain"
	"github.com/helpme/helpdesk/internal/repository"
)

type fakeUserRepo struct {
	users map[string]*domain.User
	err   error
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.err != nil {
		return r.err
	}
	if user.ID == "" {
		user.ID = "user-" + strconv.Itoa(len(r.users)+1)
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) List(_ context.Context, filter repository.UserFilter) ([]domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	var result []domain.User
	for _, user := range r.users {
		if filter.Role != nil && user.Role != *filter.Role {
			continue
		}
		if filter.Active != nil && user.Active != *filter.Active {
			continue
		}
		if filter.Sector != nil && user.Sector != *filter.Sector {
			continue
		}
		result = append(result, *user)
	}
	return result, nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context, role domain.Role, activeOnly bool) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	var count int64
	for _, user := range r.users {
		if user.Role != role {
			continue
		}
		if activeOnly && !user.Active {
			continue
		}
		count++
	}
	return count, nil
}

type fakeTicketRepo struct {
	tickets    map[string]*domain.Ticket
	lastFilter repository.TicketFilter
	err        error
}

func newFakeTicketRepo(tickets ...*domain.Ticket) *fakeTicketRepo {
	repo := &fakeTicketRepo{tickets: make(map[string]*domain.Ticket)}
	for _, ticket := range tickets {
		repo.tickets[ticket.ID] = ticket
	}
	return repo
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	if r.err != nil {
		return r.err
	}
	if ticket.ID == "" {
		ticket.ID = "ticket-" + strconv.Itoa(len(r.tickets)+1)
	}
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	r.tickets[ticket.ID] = ticket
	return nil
}

func (r *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	ticket.UpdatedAt = time.Now()
	r.tickets[ticket.ID] = ticket
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	if r.err != nil {
		return nil, r.err
	}
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) GetByOrderNumber(_ context.Context, orderNumber string) (*domain.Ticket, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, ticket := range r.tickets {
		if ticket.OrderNumber == orderNumber {
			copied := *ticket
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.lastFilter = filter
	if r.err != nil {
		return nil, r.err
	}
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if filter.RequesterID != nil && ticket.RequesterID != *filter.RequesterID {
			continue
		}
		if filter.TechnicianID != nil && (ticket.TechnicianID == nil || *ticket.TechnicianID != *filter.TechnicianID) {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, ticket.Status) {
			continue
		}
		result = append(result, *ticket)
	}
	return result, nil
}

func (r *fakeTicketRepo) CountByStatus(_ context.Context) (map[domain.TicketStatus]int64, error) {
	if r.err != nil {
		return nil, r.err
	}
	counts := make(map[domain.TicketStatus]int64)
	for _, ticket := range r.tickets {
		counts[ticket.Status]++
	}
	return counts, nil
}

func containsStatus(statuses []domain.TicketStatus, status domain.TicketStatus) bool {
	for _, candidate := range statuses {
		if candidate == status {
			return true
		}
	}
	return false
}

type fakeServiceRepo struct {
	services map[string]*domain.Service
	err      error
}

func newFakeServiceRepo(services ...*domain.Service) *fakeServiceRepo {
	repo := &fakeServiceRepo{services: make(map[string]*domain.Service)}
	for _, svc := range services {
		repo.services[svc.ID] = svc
	}
	return repo
}

func (r *fakeServiceRepo) Create(_ context.Context, svc *domain.Service) error {
	if r.err != nil {
		return r.err
	}
	if svc.ID == "" {
		svc.ID = "svc-" + strconv.Itoa(len(r.services)+1)
	}
	svc.CreatedAt = time.Now()
	svc.UpdatedAt = svc.CreatedAt
	r.services[svc.ID] = svc
	return nil
}

func (r *fakeServiceRepo) Update(_ context.Context, svc *domain.Service) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.services[svc.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.services[svc.ID] = svc
	return nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id string) (*domain.Service, error) {
	if r.err != nil {
		return nil, r.err
	}
	svc, ok := r.services[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *svc
	return &copied, nil
}

func (r *fakeServiceRepo) GetByName(_ context.Context, name string) (*domain.Service, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, svc := range r.services {
		if svc.Name == name {
			copied := *svc
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeServiceRepo) List(_ context.Context, activeOnly bool, _, _ int) ([]domain.Service, error) {
	if r.err != nil {
		return nil, r.err
	}
	var result []domain.Service
	for _, svc := range r.services {
		if activeOnly && !svc.Active {
			continue
		}
		result = append(result, *svc)
	}
	return result, nil
}

func (r *fakeServiceRepo) Delete(_ context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.services[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.services, id)
	return nil
}

type fakeOrderRepo struct {
	orders []domain.ServiceOrder
	err    error
}

func (r *fakeOrderRepo) Create(_ context.Context, order *domain.ServiceOrder) error {
	if r.err != nil {
		return r.err
	}
	order.ID = "order-" + strconv.Itoa(len(r.orders)+1)
	order.CreatedAt = time.Now()
	r.orders = append(r.orders, *order)
	return nil
}

func (r *fakeOrderRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.ServiceOrder, error) {
	if r.err != nil {
		return nil, r.err
	}
	var result []domain.ServiceOrder
	for _, order := range r.orders {
		if order.TicketID == ticketID {
			result = append(result, order)
		}
	}
	return result, nil
}

func (r *fakeOrderRepo) CountByService(_ context.Context, serviceID string) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	var count int64
	for _, order := range r.orders {
		if order.ServiceID == serviceID {
			count++
		}
	}
	return count, nil
}

type fakeHistoryRepo struct {
	entries []domain.TicketHistoryEntry
	err     error
}

func (r *fakeHistoryRepo) Append(_ context.Context, entry *domain.TicketHistoryEntry) error {
	if r.err != nil {
		return r.err
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeHistoryRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.TicketHistoryEntry, error) {
	if r.err != nil {
		return nil, r.err
	}
	var result []domain.TicketHistoryEntry
	for _, entry := range r.entries {
		if entry.TicketID == ticketID {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (r *fakeHistoryRepo) Purge(_ context.Context) (int64, error) {
	if r.err != nil {
		return 0, r.err
	}
	deleted := int64(len(r.entries))
	r.entries = nil
	return deleted, nil
}

type fakeShiftRepo struct {
	shifts map[string]*domain.Shift
	err    error
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[string]*domain.Shift)}
}

func (r *fakeShiftRepo) Upsert(_ context.Context, shift *domain.Shift) error {
	if r.err != nil {
		return r.err
	}
	if existing, ok := r.shifts[shift.TechnicianID]; ok {
		shift.ID = existing.ID
	} else if shift.ID == "" {
		shift.ID = "shift-" + strconv.Itoa(len(r.shifts)+1)
	}
	r.shifts[shift.TechnicianID] = shift
	return nil
}

func (r *fakeShiftRepo) GetByTechnician(_ context.Context, technicianID string) (*domain.Shift, error) {
	if r.err != nil {
		return nil, r.err
	}
	shift, ok := r.shifts[technicianID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *shift
	return &copied, nil
}

func (r *fakeShiftRepo) Delete(_ context.Context, technicianID string) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.shifts[technicianID]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.shifts, technicianID)
	return nil
}
