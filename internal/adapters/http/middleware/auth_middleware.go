package middleware

import (
	"errors"
	"strings"

	"washlab-backend/internal/config"
	"washlab-backend/internal/core/domain"
	"washlab-backend/internal/core/services"
	"washlab-backend/internal/pkg/jwt"
	"washlab-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware. Tokens are accepted from
// the Authorization header only. The user is re-fetched so the display name
// attached to the request reflects the current record, and deleted accounts
// lose access even with a live token.
func AuthMiddleware(cfg *config.Config, authSvc *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "Access token required")
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return response.Unauthorized(c, "Malformed authorization header")
		}
		accessToken := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := jwt.ValidateToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		user, err := authSvc.GetUserByID(c.Context(), claims.UserID)
		if err != nil {
			return response.Unauthorized(c, "Invalid access token")
		}

		c.Locals("userID", user.ID)
		c.Locals("name", user.FullName())
		c.Locals("role", user.Role)

		return c.Next()
	}
}

// RequireRoles creates role-based authorization middleware. The check is a
// flat allow-list: every route names the roles it accepts and no role
// implies another.
func RequireRoles(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowed := range allowedRoles {
			if role == string(allowed) {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// SuperAdminOnly allows only the super-admin role
func SuperAdminOnly() fiber.Handler {
	return RequireRoles(domain.RoleSuperAdmin)
}
