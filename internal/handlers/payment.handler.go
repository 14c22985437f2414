package handlers

import (
	"cleanconnect/internal/app"
	paymentsController "cleanconnect/internal/controllers/payments"
	"cleanconnect/internal/handlers/middleware"
	"cleanconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	Handler
	paymentsController paymentsController.PaymentsControllerInterface
}

func NewPaymentHandler(app *app.App, router fiber.Router) *PaymentHandler {
	return &PaymentHandler{
		paymentsController: app.Controllers.Payments,
		Handler:            newHandler(app, router, "payment_handler"),
	}
}

func (h *PaymentHandler) Register() {
	h.router.Post(
		"/payments/notify",
		h.middleware.RequireAuth(),
		h.middleware.RequireRole(models.RoleCleaner),
		h.notify,
	)

	admin := h.router.Group("/admin", h.middleware.RequireAuth(), h.middleware.RequireAdmin())
	admin.Get("/payments", h.listPending)
	admin.Put("/payments/:id/approve", h.decide)
}

func (h *PaymentHandler) notify(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("notify")

	var req paymentsController.NotifyRequest
	if !parseBody(c, log, &req) {
		return nil
	}

	cleaner, err := h.paymentsController.Notify(c.UserContext(), middleware.GetUser(c), req)
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, cleaner)
}

func (h *PaymentHandler) listPending(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listPending")

	payments, err := h.paymentsController.ListPending(c.UserContext(), middleware.GetUser(c))
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, payments)
}

func (h *PaymentHandler) decide(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("decide")

	var req paymentsController.DecisionRequest
	if !parseBody(c, log, &req) {
		return nil
	}

	payment, err := h.paymentsController.Decide(c.UserContext(), middleware.GetUser(c), c.Params("id"), req)
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, payment)
}
