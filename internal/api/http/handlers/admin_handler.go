package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/helpme/helpdesk/internal/observability"
	"github.com/helpme/helpdesk/internal/service"
)

// AdminHandler exposes the operational dashboard.
type AdminHandler struct {
	admin   *service.AdminService
	metrics *observability.Metrics
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService, metrics *observability.Metrics) *AdminHandler {
	return &AdminHandler{admin: adminService, metrics: metrics}
}

// Dashboard GET /admin/dashboard (ADMIN).
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	summary, err := h.admin.Dashboard(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"tickets_by_status":  summary.TicketsByStatus,
		"open_queue_depth":   summary.OpenQueueDepth,
		"active_technicians": summary.ActiveTechnicians,
	})
}

// Metrics GET /admin/metrics (ADMIN). In-memory counters scraped by the
// external dashboards.
func (h *AdminHandler) Metrics(c *fiber.Ctx) error {
	requests, errors := h.metrics.Snapshot()
	return c.JSON(fiber.Map{
		"requests": requests,
		"errors":   errors,
	})
}
