package handlers

import (
	"cleanconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

func LocationHandler(router fiber.Router) {
	router.Get("/locations", func(c *fiber.Ctx) error {
		return ok(c, models.NigerianStates)
	})
}
