package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/helpme/helpdesk/internal/api/http/handlers"
	"github.com/helpme/helpdesk/internal/auth"
	"github.com/helpme/helpdesk/internal/cache"
	"github.com/helpme/helpdesk/internal/config"
	"github.com/helpme/helpdesk/internal/domain"
	"github.com/helpme/helpdesk/internal/observability"
	"github.com/helpme/helpdesk/internal/ratelimit"
	"github.com/helpme/helpdesk/internal/repository"
	"github.com/helpme/helpdesk/internal/service"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) Create(context.Context, *domain.User) error { return nil }
func (r *stubUserRepo) Update(context.Context, *domain.User) error { return nil }

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *stubUserRepo) List(context.Context, repository.UserFilter) ([]domain.User, error) {
	return nil, nil
}

func (r *stubUserRepo) CountByRole(context.Context, domain.Role, bool) (int64, error) {
	return 0, nil
}

type stubTicketRepo struct {
	tickets []domain.Ticket
}

func (r *stubTicketRepo) Create(context.Context, *domain.Ticket) error { return nil }
func (r *stubTicketRepo) Update(context.Context, *domain.Ticket) error { return nil }

func (r *stubTicketRepo) GetByID(context.Context, string) (*domain.Ticket, error) {
	return nil, pgx.ErrNoRows
}

func (r *stubTicketRepo) GetByOrderNumber(context.Context, string) (*domain.Ticket, error) {
	return nil, pgx.ErrNoRows
}

func (r *stubTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range r.tickets {
		if len(filter.Statuses) > 0 {
			match := false
			for _, status := range filter.Statuses {
				if ticket.Status == status {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		result = append(result, ticket)
	}
	return result, nil
}

func (r *stubTicketRepo) CountByStatus(context.Context) (map[domain.TicketStatus]int64, error) {
	return map[domain.TicketStatus]int64{}, nil
}

type testEnv struct {
	app    *fiber.App
	tokens *auth.TokenManager
	admin  *domain.User
	user   *domain.User
	tech   *domain.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	hash, err := auth.HashPassword("senha-correta", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	admin := &domain.User{ID: "adm-1", Name: "Rita", Email: "rita@example.com", PasswordHash: hash, Role: domain.RoleAdmin, Active: true}
	user := &domain.User{ID: "u1", Name: "João", Email: "joao@example.com", PasswordHash: hash, Role: domain.RoleUser, Active: true}
	tech := &domain.User{ID: "tech-1", Name: "Carla", Email: "carla@example.com", PasswordHash: hash, Role: domain.RoleTechnician, Active: true}

	userRepo := &stubUserRepo{users: map[string]*domain.User{
		admin.ID: admin,
		user.ID:  user,
		tech.ID:  tech,
	}}
	ticketRepo := &stubTicketRepo{tickets: []domain.Ticket{
		{ID: "t1", OrderNumber: "HM-AAAA0001", Status: domain.TicketStatusOpen, RequesterID: user.ID},
		{ID: "t2", OrderNumber: "HM-AAAA0002", Status: domain.TicketStatusClosed, RequesterID: user.ID},
	}}

	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:              "test-secret",
			AccessTokenTTLMinutes:  15,
			RefreshTokenTTLMinutes: 60,
			BcryptCost:             bcrypt.MinCost,
		},
		RateLimit: config.RateLimitConfig{LoginLimit: 5, LoginWindow: 15 * time.Minute},
	}

	authService := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:     userRepo,
		Sessions:     cache.NewInMemory(),
		LoginLimiter: ratelimit.NewInMemory(15 * time.Minute),
		Logger:       zap.NewNop(),
	})
	userService := service.NewUserService(userRepo, bcrypt.MinCost)
	queueService := service.NewQueueService(ticketRepo)

	app := fiber.New()
	RegisterMiddlewares(app, MiddlewareConfig{
		Logger:  zap.NewNop(),
		Metrics: observability.NewMetrics(),
	})
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("test", "dev", nil, nil, nil),
		Auth:           handlers.NewAuthHandler(authService),
		Usuario:        handlers.NewUsuarioHandler(userService),
		Chamado:        handlers.NewChamadoHandler(service.NewTicketService(service.TicketDependencies{TicketRepo: ticketRepo, UserRepo: userRepo})),
		Fila:           handlers.NewFilaHandler(queueService),
		Servico:        handlers.NewServicoHandler(service.NewCatalogService(nil, nil)),
		Tecnico:        handlers.NewTecnicoHandler(service.NewTechnicianService(userService, nil)),
		Admin:          handlers.NewAdminHandler(service.NewAdminService(ticketRepo, userRepo), observability.NewMetrics()),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), userRepo),
	})

	return &testEnv{app: app, tokens: authService.TokenManager(), admin: admin, user: user, tech: tech}
}

func (e *testEnv) get(t *testing.T, path string, as *domain.User) (int, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if as != nil {
		token, _, err := e.tokens.GenerateAccessToken(as)
		if err != nil {
			t.Fatalf("GenerateAccessToken returned error: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req)
	if err != nil {
		t.Fatalf("request %s failed: %v", path, err)
	}
	defer resp.Body.Close()

	body := make(map[string]json.RawMessage)
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func errorMessage(t *testing.T, body map[string]json.RawMessage) string {
	t.Helper()
	raw, ok := body["error"]
	if !ok {
		t.Fatal(`response body has no "error" field`)
	}
	var message string
	if err := json.Unmarshal(raw, &message); err != nil {
		t.Fatalf(`"error" field is not a plain string: %s`, raw)
	}
	return message
}

func TestRoutesRequireAuthentication(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	status, body := env.get(t, "/filadechamados/todos-chamados?status=OPEN", nil)
	if status != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
	if errorMessage(t, body) == "" {
		t.Error("401 response has an empty error message")
	}
}

func TestAdminQueueForbiddenForUsers(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	for _, caller := range []*domain.User{env.user, env.tech} {
		status, body := env.get(t, "/filadechamados/todos-chamados?status=OPEN", caller)
		if status != fiber.StatusForbidden {
			t.Errorf("%s: status = %d, want 403", caller.Role, status)
		}
		if got := errorMessage(t, body); got != "acesso negado" {
			t.Errorf("%s: error = %q, want acesso negado", caller.Role, got)
		}
	}
}

func TestAdminQueueStatusValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	status, body := env.get(t, "/filadechamados/todos-chamados", env.admin)
	if status != fiber.StatusBadRequest {
		t.Errorf("missing status: status = %d, want 400", status)
	}
	if got := errorMessage(t, body); !strings.Contains(got, "status") {
		t.Errorf("missing status: error = %q, want mention of the status parameter", got)
	}

	status, body = env.get(t, "/filadechamados/todos-chamados?status=PENDING", env.admin)
	if status != fiber.StatusBadRequest {
		t.Errorf("invalid status: status = %d, want 400", status)
	}
	if got := errorMessage(t, body); !strings.Contains(got, "inválido") {
		t.Errorf("invalid status: error = %q, want invalid status message", got)
	}
}

func TestAdminQueueListsByStatus(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	req := httptest.NewRequest("GET", "/filadechamados/todos-chamados?status=OPEN", nil)
	token, _, err := env.tokens.GenerateAccessToken(env.admin)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned error: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := env.app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var tickets []map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&tickets); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(tickets) != 1 {
		t.Errorf("got %d tickets, want 1 OPEN ticket", len(tickets))
	}
}

func TestOpenQueueAllowsTechnicians(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	status, _ := env.get(t, "/filadechamados/abertos", env.tech)
	if status != fiber.StatusOK {
		t.Errorf("technician: status = %d, want 200", status)
	}

	status, _ = env.get(t, "/filadechamados/abertos", env.user)
	if status != fiber.StatusForbidden {
		t.Errorf("user: status = %d, want 403", status)
	}
}

func TestLoginErrorBodyShape(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"joao@example.com","password":"errada"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := env.app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}

	body := make(map[string]json.RawMessage)
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got := errorMessage(t, body); got != "credenciais inválidas" {
		t.Errorf("error = %q, want credenciais inválidas", got)
	}
}

func TestLoginSuccessReturnsTokens(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"joao@example.com","password":"senha-correta"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := env.app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Auth struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"auth"`
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Auth.AccessToken == "" || body.Auth.RefreshToken == "" {
		t.Error("token pair missing from the login response")
	}
	if body.User.Email != "joao@example.com" {
		t.Errorf("user.email = %q, want joao@example.com", body.User.Email)
	}
}

func TestApiDocsServed(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	resp, err := env.app.Test(httptest.NewRequest("GET", "/api-docs", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var doc map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("api docs are not valid JSON: %v", err)
	}
	if _, ok := doc["openapi"]; !ok {
		t.Error("api docs missing the openapi version field")
	}
}

func TestHealthLive(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	status, _ := env.get(t, "/health/live", nil)
	if status != fiber.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
}
