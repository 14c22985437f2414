package middleware

import (
	"errors"
	"strings"

	"cleanconnect/internal/models"
	"cleanconnect/internal/types"

	"github.com/gofiber/fiber/v2"
)

const UserKeyFiber = "User"

// RequireAuth resolves the bearer token and stores the caller in the request locals.
func (m *Middleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := m.log.TraceFromContext(c.UserContext()).Function("RequireAuth")

		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			log.Info("missing authorization header")
			return reject(c, fiber.StatusUnauthorized, "Unauthorized")
		}

		tokenParts := strings.Fields(authHeader)
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "bearer") {
			log.Info("invalid authorization header format")
			return reject(c, fiber.StatusUnauthorized, "Unauthorized")
		}

		user, err := m.auth.Authenticate(c.UserContext(), tokenParts[1])
		if errors.Is(err, types.ErrUnauthorized) {
			log.Info("token validation failed", "error", err.Error())
			return reject(c, fiber.StatusUnauthorized, "Unauthorized")
		}
		if err != nil {
			log.Er("failed to authenticate request", err)
			return reject(c, fiber.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		c.Locals(UserKeyFiber, &user)
		log.Debug("user authenticated", "userID", user.ID, "role", user.Role)
		return c.Next()
	}
}

func GetUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(UserKeyFiber).(*models.User)
	if !ok {
		return nil
	}
	return user
}
