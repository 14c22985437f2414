package handlers

import (
	"cleanconnect/internal/app"
	profileController "cleanconnect/internal/controllers/profile"
	"cleanconnect/internal/handlers/middleware"

	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	Handler
	profileController profileController.ProfileControllerInterface
}

func NewProfileHandler(app *app.App, router fiber.Router) *ProfileHandler {
	return &ProfileHandler{
		profileController: app.Controllers.Profile,
		Handler:           newHandler(app, router, "profile_handler"),
	}
}

func (h *ProfileHandler) Register() {
	profile := h.router.Group("/profile", h.middleware.RequireAuth())
	profile.Put("/client", h.updateClient)
	profile.Put("/cleaner", h.updateCleaner)
}

func (h *ProfileHandler) updateClient(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("updateClient")

	var req profileController.ClientProfileUpdate
	if !parseBody(c, log, &req) {
		return nil
	}

	user, err := h.profileController.UpdateClient(c.UserContext(), middleware.GetUser(c), req)
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, user)
}

func (h *ProfileHandler) updateCleaner(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("updateCleaner")

	var req profileController.CleanerProfileUpdate
	if !parseBody(c, log, &req) {
		return nil
	}

	user, err := h.profileController.UpdateCleaner(c.UserContext(), middleware.GetUser(c), req)
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, user)
}
