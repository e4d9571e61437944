package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/helpme/helpdesk/internal/domain"
	apperrors "github.com/helpme/helpdesk/pkg/util"
)

type ticketFixture struct {
	service   *TicketService
	tickets   *fakeTicketRepo
	orders    *fakeOrderRepo
	history   *fakeHistoryRepo
	requester *domain.User
	tech      *domain.User
	admin     *domain.User
}

func newTicketFixture() *ticketFixture {
	requester := &domain.User{ID: "u1", Name: "João", Role: domain.RoleUser, Active: true}
	tech := &domain.User{ID: "tech-1", Name: "Carla", Role: domain.RoleTechnician, Active: true}
	admin := &domain.User{ID: "adm-1", Name: "Rita", Role: domain.RoleAdmin, Active: true}

	tickets := newFakeTicketRepo()
	orders := &fakeOrderRepo{}
	history := &fakeHistoryRepo{}
	svc := NewTicketService(TicketDependencies{
		TicketRepo:       tickets,
		ServiceOrderRepo: orders,
		ServiceRepo: newFakeServiceRepo(
			&domain.Service{ID: "svc-1", Name: "Formatação", Active: true},
			&domain.Service{ID: "svc-2", Name: "Rede", Active: true},
			&domain.Service{ID: "svc-off", Name: "Legado", Active: false},
		),
		UserRepo:    newFakeUserRepo(requester, tech, admin),
		HistoryRepo: history,
	})
	return &ticketFixture{
		service:   svc,
		tickets:   tickets,
		orders:    orders,
		history:   history,
		requester: requester,
		tech:      tech,
		admin:     admin,
	}
}

func (f *ticketFixture) open(t *testing.T, serviceIDs ...string) *domain.Ticket {
	t.Helper()
	if len(serviceIDs) == 0 {
		serviceIDs = []string{"svc-1"}
	}
	ticket, err := f.service.Open(context.Background(), f.requester, OpenTicketInput{
		Description: "computador não liga",
		ServiceIDs:  serviceIDs,
	})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	return ticket
}

func TestTicketOpen(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	ticket := f.open(t, "svc-1", "svc-2")

	if ticket.Status != domain.TicketStatusOpen {
		t.Errorf("Status = %s, want OPEN", ticket.Status)
	}
	if ticket.RequesterID != f.requester.ID {
		t.Errorf("RequesterID = %q, want %q", ticket.RequesterID, f.requester.ID)
	}
	if !strings.HasPrefix(ticket.OrderNumber, "HM-") || len(ticket.OrderNumber) != 11 {
		t.Errorf("OrderNumber = %q, want HM- prefix with 8 characters", ticket.OrderNumber)
	}
	if len(f.orders.orders) != 2 {
		t.Errorf("created %d service orders, want 2", len(f.orders.orders))
	}
	if len(f.history.entries) != 1 {
		t.Fatalf("wrote %d history entries, want exactly 1", len(f.history.entries))
	}
	entry := f.history.entries[0]
	if entry.FromStatus != "" || entry.ToStatus != domain.TicketStatusOpen {
		t.Errorf("history transition = %q → %q, want \"\" → OPEN", entry.FromStatus, entry.ToStatus)
	}
}

func TestTicketOpenValidation(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	ctx := context.Background()

	if _, err := f.service.Open(ctx, f.requester, OpenTicketInput{Description: "  ", ServiceIDs: []string{"svc-1"}}); err == nil {
		t.Error("Open accepted a blank description")
	}
	if _, err := f.service.Open(ctx, f.requester, OpenTicketInput{Description: "x"}); err == nil {
		t.Error("Open accepted an empty service list")
	}
	if _, err := f.service.Open(ctx, f.requester, OpenTicketInput{Description: "x", ServiceIDs: []string{"missing"}}); err == nil {
		t.Error("Open accepted an unknown service")
	}
	if _, err := f.service.Open(ctx, f.requester, OpenTicketInput{Description: "x", ServiceIDs: []string{"svc-off"}}); err == nil {
		t.Error("Open accepted an inactive service")
	}
	if len(f.history.entries) != 0 {
		t.Errorf("failed opens wrote %d history entries, want 0", len(f.history.entries))
	}
}

func TestTicketAssignByTechnician(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	ticket := f.open(t)

	assigned, err := f.service.Assign(context.Background(), f.tech, ticket.ID, "")
	if err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if assigned.Status != domain.TicketStatusInProgress {
		t.Errorf("Status = %s, want IN_PROGRESS", assigned.Status)
	}
	if assigned.TechnicianID == nil || *assigned.TechnicianID != f.tech.ID {
		t.Error("technician was not recorded on the ticket")
	}
	if len(f.history.entries) != 2 {
		t.Fatalf("wrote %d history entries, want 2", len(f.history.entries))
	}
	last := f.history.entries[1]
	if last.FromStatus != domain.TicketStatusOpen || last.ToStatus != domain.TicketStatusInProgress {
		t.Errorf("history transition = %s → %s, want OPEN → IN_PROGRESS", last.FromStatus, last.ToStatus)
	}
}

func TestTicketAssignTechnicianCannotAssignOthers(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	ticket := f.open(t)

	other := &domain.User{ID: "tech-2", Name: "Davi", Role: domain.RoleTechnician, Active: true}
	_, err := f.service.Assign(context.Background(), f.tech, ticket.ID, other.ID)
	if err == nil {
		t.Fatal("technician assigned a ticket to someone else")
	}
	if apperrors.ToDomainError(err).HTTPStatus != http.StatusForbidden {
		t.Errorf("HTTPStatus = %d, want %d", apperrors.ToDomainError(err).HTTPStatus, http.StatusForbidden)
	}
}

func TestTicketAssignAdminRequiresTechnician(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	ticket := f.open(t)
	ctx := context.Background()

	if _, err := f.service.Assign(ctx, f.admin, ticket.ID, ""); err == nil {
		t.Error("admin assignment without a technician id was accepted")
	}
	if _, err := f.service.Assign(ctx, f.admin, ticket.ID, f.requester.ID); err == nil {
		t.Error("a non-technician account was accepted as assignee")
	}

	assigned, err := f.service.Assign(ctx, f.admin, ticket.ID, f.tech.ID)
	if err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if assigned.TechnicianID == nil || *assigned.TechnicianID != f.tech.ID {
		t.Error("admin assignment did not record the technician")
	}
}

func TestTicketAssignRejectsInvalidTransition(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	ticket := f.open(t)
	ctx := context.Background()

	if _, err := f.service.Assign(ctx, f.tech, ticket.ID, ""); err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	_, err := f.service.Assign(ctx, f.tech, ticket.ID, "")
	if err == nil {
		t.Fatal("Assign accepted an IN_PROGRESS ticket")
	}
	if apperrors.ToDomainError(err).HTTPStatus != http.StatusConflict {
		t.Errorf("HTTPStatus = %d, want %d", apperrors.ToDomainError(err).HTTPStatus, http.StatusConflict)
	}
}

func TestTicketCloseLifecycle(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	ticket := f.open(t)
	ctx := context.Background()

	if _, err := f.service.Close(ctx, f.tech, ticket.ID, "resolvido"); err == nil {
		t.Error("Close accepted an OPEN ticket")
	}

	if _, err := f.service.Assign(ctx, f.tech, ticket.ID, ""); err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if _, err := f.service.Close(ctx, f.tech, ticket.ID, "  "); err == nil {
		t.Error("Close accepted a blank closure description")
	}

	closed, err := f.service.Close(ctx, f.tech, ticket.ID, "troca de fonte")
	if err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if closed.Status != domain.TicketStatusClosed {
		t.Errorf("Status = %s, want CLOSED", closed.Status)
	}
	if closed.ClosedAt == nil {
		t.Error("ClosedAt was not stamped")
	}
	if closed.ClosureDescription == nil || *closed.ClosureDescription != "troca de fonte" {
		t.Error("closure description was not recorded")
	}
	if len(f.history.entries) != 3 {
		t.Errorf("wrote %d history entries, want 3", len(f.history.entries))
	}
}

func TestTicketCloseOnlyAssignedTechnician(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	ticket := f.open(t)
	ctx := context.Background()

	if _, err := f.service.Assign(ctx, f.tech, ticket.ID, ""); err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}

	other := &domain.User{ID: "tech-2", Name: "Davi", Role: domain.RoleTechnician, Active: true}
	_, err := f.service.Close(ctx, other, ticket.ID, "feito")
	if err == nil {
		t.Fatal("an unassigned technician closed the ticket")
	}
	if apperrors.ToDomainError(err).HTTPStatus != http.StatusForbidden {
		t.Errorf("HTTPStatus = %d, want %d", apperrors.ToDomainError(err).HTTPStatus, http.StatusForbidden)
	}

	if _, err := f.service.Close(ctx, f.admin, ticket.ID, "encerrado pelo admin"); err != nil {
		t.Errorf("admin close returned error: %v", err)
	}
}

func TestTicketReopen(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	ticket := f.open(t)
	ctx := context.Background()

	if _, err := f.service.Reopen(ctx, f.requester, ticket.ID); err == nil {
		t.Error("Reopen accepted an OPEN ticket")
	}

	if _, err := f.service.Assign(ctx, f.tech, ticket.ID, ""); err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if _, err := f.service.Close(ctx, f.tech, ticket.ID, "resolvido"); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	stranger := &domain.User{ID: "u2", Role: domain.RoleUser, Active: true}
	if _, err := f.service.Reopen(ctx, stranger, ticket.ID); err == nil {
		t.Error("a non-requester reopened the ticket")
	}

	reopened, err := f.service.Reopen(ctx, f.requester, ticket.ID)
	if err != nil {
		t.Fatalf("Reopen returned error: %v", err)
	}
	if reopened.Status != domain.TicketStatusReopened {
		t.Errorf("Status = %s, want REOPENED", reopened.Status)
	}
	if reopened.TechnicianID != nil {
		t.Error("technician assignment survived the reopen")
	}
	if reopened.ClosedAt != nil {
		t.Error("ClosedAt survived the reopen")
	}

	history, err := f.service.History(ctx, f.requester, ticket.ID)
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(history) != 4 {
		t.Fatalf("history has %d entries, want 4 (open, assign, close, reopen)", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i].CreatedAt.Before(history[i-1].CreatedAt) {
			t.Error("history entries are not in ascending time order")
		}
	}
}

func TestTicketViewAccess(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	ticket := f.open(t)
	ctx := context.Background()

	stranger := &domain.User{ID: "u9", Role: domain.RoleUser, Active: true}
	_, err := f.service.Get(ctx, stranger, ticket.ID)
	if err == nil {
		t.Fatal("an unrelated user viewed the ticket")
	}
	if apperrors.ToDomainError(err).HTTPStatus != http.StatusForbidden {
		t.Errorf("HTTPStatus = %d, want %d", apperrors.ToDomainError(err).HTTPStatus, http.StatusForbidden)
	}

	detail, err := f.service.Get(ctx, f.requester, ticket.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if detail.Ticket.ID != ticket.ID {
		t.Errorf("Ticket.ID = %q, want %q", detail.Ticket.ID, ticket.ID)
	}
	if len(detail.ServiceOrders) != 1 {
		t.Errorf("detail has %d service orders, want 1", len(detail.ServiceOrders))
	}
	if len(detail.History) != 1 {
		t.Errorf("detail has %d history entries, want 1", len(detail.History))
	}

	if _, err := f.service.Get(ctx, f.admin, ticket.ID); err != nil {
		t.Errorf("admin view returned error: %v", err)
	}
}

func TestTicketUpdateDescription(t *testing.T) {
	t.Parallel()

	f := newTicketFixture()
	ticket := f.open(t)
	ctx := context.Background()

	updated, err := f.service.UpdateDescription(ctx, f.requester, ticket.ID, "monitor piscando")
	if err != nil {
		t.Fatalf("UpdateDescription returned error: %v", err)
	}
	if updated.Description != "monitor piscando" {
		t.Errorf("Description = %q, want updated text", updated.Description)
	}

	if _, err := f.service.Assign(ctx, f.tech, ticket.ID, ""); err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	_, err = f.service.UpdateDescription(ctx, f.requester, ticket.ID, "outra coisa")
	if err == nil {
		t.Error("UpdateDescription accepted an IN_PROGRESS ticket")
	}
}
