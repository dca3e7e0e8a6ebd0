package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/therapy-admin-api/internal/apperror"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/utils"
)

// RequirePermission lets the request through only when the authenticated user's role
// grants permission. The required permission is never echoed back.
func RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return utils.SendError(c, apperror.Unauthenticated())
		}
		if !models.HasPermission(&user, permission) {
			return utils.SendError(c, apperror.Unauthorized())
		}
		return c.Next()
	}
}
