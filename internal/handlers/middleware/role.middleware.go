package middleware

import (
	"slices"

	"cleanconnect/internal/models"

	"github.com/gofiber/fiber/v2"
)

// RequireRole must run after RequireAuth.
func (m *Middleware) RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := m.log.TraceFromContext(c.UserContext()).Function("RequireRole")

		user := GetUser(c)
		if user == nil {
			log.Info("user not found in context")
			return reject(c, fiber.StatusUnauthorized, "Unauthorized")
		}

		if !slices.Contains(roles, user.Role) {
			log.Info("role not permitted", "userID", user.ID, "role", user.Role)
			return reject(c, fiber.StatusForbidden, "Permission denied.")
		}

		return c.Next()
	}
}

func (m *Middleware) RequireAdmin() fiber.Handler {
	return m.RequireRole(models.RoleAdmin)
}
