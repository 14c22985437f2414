package handlers

import (
	"errors"

	"cleanconnect/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

const internalErrorMessage = "Something went wrong. Please try again."

type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(Envelope{Success: true, Data: data})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Success: false, Error: message})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, types.ErrValidation), errors.Is(err, types.ErrConflict):
		return fiber.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, types.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, types.ErrUnauthorized):
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

// respondError maps a controller error onto the envelope. Unclassified
// errors are logged and hidden behind a generic message.
func respondError(c *fiber.Ctx, log logger.Logger, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Er("request failed", err, "path", c.Path())
		return fail(c, status, internalErrorMessage)
	}
	return fail(c, status, types.Message(err))
}

// parseBody decodes the JSON body into req, answering 400 itself on failure.
func parseBody(c *fiber.Ctx, log logger.Logger, req any) bool {
	if err := c.BodyParser(req); err != nil {
		log.Warn("Invalid request body", "error", err)
		_ = fail(c, fiber.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}
