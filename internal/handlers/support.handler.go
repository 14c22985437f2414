package handlers

import (
	"cleanconnect/internal/app"
	supportController "cleanconnect/internal/controllers/support"

	"github.com/gofiber/fiber/v2"
)

type SupportHandler struct {
	Handler
	supportController supportController.SupportControllerInterface
}

func NewSupportHandler(app *app.App, router fiber.Router) *SupportHandler {
	return &SupportHandler{
		supportController: app.Controllers.Support,
		Handler:           newHandler(app, router, "support_handler"),
	}
}

func (h *SupportHandler) Register() {
	h.router.Post("/support", h.submit)
}

func (h *SupportHandler) submit(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("submit")

	var req supportController.SupportRequest
	if !parseBody(c, log, &req) {
		return nil
	}

	receipt, err := h.supportController.Submit(c.UserContext(), req)
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, receipt)
}
