package middleware

import (
	"errors"
	"strings"

	"github.com/dataflexghana/dataflexcomplete/internal/config"
	"github.com/dataflexghana/dataflexcomplete/internal/pkg/jwt"
	"github.com/dataflexghana/dataflexcomplete/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var authToken string

		// 1. Try to get token from cookie first
		authToken = c.Cookies("auth_token")

		// 2. If not in cookie, try Authorization header
		if authToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				authToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if authToken == "" {
			return response.Unauthorized(c, "Authentication required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAuthToken(authToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Session expired, please login again")
			}
			return response.Unauthorized(c, "Invalid session token")
		}

		// 5. Set user info in context
		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("role", claims.Role)
		c.Locals("name", claims.Name)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware("admin")
}

// AgentOnly middleware allows only the agent role
func AgentOnly() fiber.Handler {
	return RoleMiddleware("agent")
}
