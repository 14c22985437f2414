package handlers

import (
	"cleanconnect/internal/app"
	profileController "cleanconnect/internal/controllers/profile"
	"cleanconnect/internal/handlers/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	Handler
	profileController profileController.ProfileControllerInterface
}

func NewUserHandler(app *app.App, router fiber.Router) *UserHandler {
	return &UserHandler{
		profileController: app.Controllers.Profile,
		Handler:           newHandler(app, router, "user_handler"),
	}
}

func (h *UserHandler) Register() {
	users := h.router.Group("/users", h.middleware.RequireAuth())
	users.Get("/me", h.getCurrentUser)
}

func (h *UserHandler) getCurrentUser(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("getCurrentUser")

	user, err := h.profileController.Get(c.UserContext(), middleware.GetUser(c))
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, user)
}
