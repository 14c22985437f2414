package middleware

import (
	"context"

	"cleanconnect/config"
	"cleanconnect/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

// Authenticator resolves a bearer token to the user it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, error)
}

type Middleware struct {
	Config config.Config
	auth   Authenticator
	log    logger.Logger
}

func New(config config.Config, auth Authenticator) Middleware {
	return Middleware{
		Config: config,
		auth:   auth,
		log:    logger.New("middleware"),
	}
}

func reject(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}
