package handlers

import (
	"cleanconnect/internal/app"
	dashboardController "cleanconnect/internal/controllers/dashboard"
	"cleanconnect/internal/handlers/middleware"
	"cleanconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	Handler
	dashboardController dashboardController.DashboardControllerInterface
}

func NewDashboardHandler(app *app.App, router fiber.Router) *DashboardHandler {
	return &DashboardHandler{
		dashboardController: app.Controllers.Dashboard,
		Handler:             newHandler(app, router, "dashboard_handler"),
	}
}

func (h *DashboardHandler) Register() {
	cleaner := h.router.Group(
		"/dashboard/cleaner",
		h.middleware.RequireAuth(),
		h.middleware.RequireRole(models.RoleCleaner),
	)
	cleaner.Get("/stats", h.getStats)
	cleaner.Get("/bookings", h.getBookings)
}

func (h *DashboardHandler) getStats(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getStats")

	stats, err := h.dashboardController.CleanerStats(c.UserContext(), middleware.GetUser(c))
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, stats)
}

func (h *DashboardHandler) getBookings(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getBookings")

	bookings, err := h.dashboardController.CleanerBookings(c.UserContext(), middleware.GetUser(c))
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, bookings)
}
