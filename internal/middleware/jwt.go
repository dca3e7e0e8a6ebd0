package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/therapy-admin-api/internal/apperror"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/service"
	"github.com/noah-isme/therapy-admin-api/internal/utils"
)

const currentUserKey = "current_user"

// Authenticate resolves the bearer token into the active user and stores it on the request.
func Authenticate(auth service.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if authorization == "" {
			return utils.SendError(c, apperror.Unauthenticated())
		}

		const bearer = "bearer "
		if len(authorization) <= len(bearer) || !strings.EqualFold(authorization[:len(bearer)], bearer) {
			return utils.SendError(c, apperror.Unauthenticated())
		}

		user, err := auth.Authenticate(c.UserContext(), strings.TrimSpace(authorization[len(bearer):]))
		if err != nil {
			var appErr *apperror.Error
			if errors.As(err, &appErr) {
				return utils.SendError(c, appErr)
			}
			return err
		}

		c.Locals(currentUserKey, user)
		c.Locals("user_id", user.ID.String())
		return c.Next()
	}
}

// CurrentUser returns the user stored by Authenticate.
func CurrentUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals(currentUserKey).(models.User)
	return user, ok
}

// SetCurrentUser stores user on the request. Tests use it to bypass token verification.
func SetCurrentUser(c *fiber.Ctx, user models.User) {
	c.Locals(currentUserKey, user)
	c.Locals("user_id", user.ID.String())
}
