package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpme/helpdesk/internal/api/http/handlers"
	"github.com/helpme/helpdesk/internal/auth"
	"github.com/helpme/helpdesk/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Usuario        *handlers.UsuarioHandler
	Chamado        *handlers.ChamadoHandler
	Fila           *handlers.FilaHandler
	Servico        *handlers.ServicoHandler
	Tecnico        *handlers.TecnicoHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/api-docs", serveAPIDocs)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)

	authed := cfg.AuthMiddleware.Handle
	adminOnly := auth.RequireRoles(domain.RoleAdmin)

	usuario := app.Group("/usuario", authed)
	usuario.Get("/perfil", cfg.Usuario.Profile)
	usuario.Put("/perfil", cfg.Usuario.UpdateProfile)
	usuario.Post("/", adminOnly, cfg.Usuario.Create)
	usuario.Get("/", adminOnly, cfg.Usuario.List)
	usuario.Get("/:id", adminOnly, cfg.Usuario.Get)
	usuario.Delete("/:id", adminOnly, cfg.Usuario.Deactivate)

	chamado := app.Group("/chamado", authed, auth.RequireAuthenticated())
	chamado.Post("/", auth.RequireRoles(domain.RoleUser, domain.RoleAdmin), cfg.Chamado.Open)
	chamado.Get("/:id", cfg.Chamado.Get)
	chamado.Put("/:id", auth.RequireRoles(domain.RoleUser, domain.RoleAdmin), cfg.Chamado.Update)
	chamado.Post("/:id/atribuir", auth.RequireRoles(domain.RoleTechnician, domain.RoleAdmin), cfg.Chamado.Assign)
	chamado.Post("/:id/encerrar", auth.RequireRoles(domain.RoleTechnician, domain.RoleAdmin), cfg.Chamado.Close)
	chamado.Post("/:id/reabrir", auth.RequireRoles(domain.RoleUser, domain.RoleAdmin), cfg.Chamado.Reopen)
	chamado.Get("/:id/historico", cfg.Chamado.History)

	fila := app.Group("/filadechamados", authed)
	fila.Get("/meus-chamados", auth.RequireRoles(domain.RoleUser), cfg.Fila.MyTickets)
	fila.Get("/chamados-atribuidos", auth.RequireRoles(domain.RoleTechnician), cfg.Fila.AssignedTickets)
	fila.Get("/todos-chamados", adminOnly, cfg.Fila.AllByStatus)
	fila.Get("/abertos", auth.RequireRoles(domain.RoleTechnician, domain.RoleAdmin), cfg.Fila.OpenQueue)

	servico := app.Group("/servico", authed)
	servico.Get("/", cfg.Servico.List)
	servico.Get("/:id", cfg.Servico.Get)
	servico.Post("/", adminOnly, cfg.Servico.Create)
	servico.Put("/:id", adminOnly, cfg.Servico.Update)
	servico.Delete("/:id", adminOnly, cfg.Servico.Delete)

	tecnico := app.Group("/tecnico", authed)
	tecnico.Get("/:id/expediente", auth.RequireRoles(domain.RoleTechnician, domain.RoleAdmin), cfg.Tecnico.GetShift)
	tecnico.Put("/:id/expediente", adminOnly, cfg.Tecnico.SetShift)
	tecnico.Delete("/:id/expediente", adminOnly, cfg.Tecnico.DeleteShift)
	tecnico.Post("/", adminOnly, cfg.Tecnico.Create)
	tecnico.Get("/", adminOnly, cfg.Tecnico.List)
	tecnico.Get("/:id", adminOnly, cfg.Tecnico.Get)
	tecnico.Delete("/:id", adminOnly, cfg.Tecnico.Deactivate)

	admin := app.Group("/admin", authed, adminOnly)
	admin.Get("/dashboard", cfg.Admin.Dashboard)
	admin.Get("/metrics", cfg.Admin.Metrics)
}
