package handlers

import (
	"cleanconnect/config"

	"github.com/gofiber/fiber/v2"
)

func HealthHandler(router fiber.Router, config config.Config) {
	router.Get("/health", func(c *fiber.Ctx) error {
		return ok(c, fiber.Map{
			"status":  "ok",
			"version": config.GeneralVersion,
			"service": "cleanconnect_api",
		})
	})
}
