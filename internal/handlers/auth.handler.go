package handlers

import (
	"cleanconnect/internal/app"
	authController "cleanconnect/internal/controllers/auth"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	authController authController.AuthControllerInterface
}

func NewAuthHandler(app *app.App, router fiber.Router) *AuthHandler {
	return &AuthHandler{
		authController: app.Controllers.Auth,
		Handler:        newHandler(app, router, "auth_handler"),
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")
	auth.Post("/register", h.register)
	auth.Post("/login", h.login)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("register")

	var req authController.RegisterRequest
	if !parseBody(c, log, &req) {
		return nil
	}

	resp, err := h.authController.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, resp)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("login")

	var req authController.LoginRequest
	if !parseBody(c, log, &req) {
		return nil
	}

	resp, err := h.authController.Login(c.UserContext(), req)
	if err != nil {
		return respondError(c, log, err)
	}
	return ok(c, resp)
}
