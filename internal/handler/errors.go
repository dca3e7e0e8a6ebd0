package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/apperror"
	"github.com/noah-isme/therapy-admin-api/internal/utils"
)

// ErrorHandler renders every error returned by a handler. Classified errors keep their
// code and status; anything else is logged and reported as INTERNAL_ERROR.
func ErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	base := logger.With().Str("component", "error_handler").Logger()

	return func(c *fiber.Ctx, err error) error {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return utils.SendError(c, appErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			switch {
			case fiberErr.Code == fiber.StatusNotFound, fiberErr.Code == fiber.StatusMethodNotAllowed:
				return utils.SendNotFound(c)
			case fiberErr.Code == fiber.StatusRequestEntityTooLarge:
				return utils.SendError(c, apperror.InvalidRequest("body: request entity too large"))
			case fiberErr.Code == fiber.StatusTooManyRequests:
				return utils.SendError(c, apperror.RateLimited())
			case fiberErr.Code < fiber.StatusInternalServerError:
				return utils.SendError(c, apperror.InvalidRequest(fiberErr.Message))
			}
		}

		requestLogger(base, c).Error().
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("unhandled error")
		return utils.SendError(c, apperror.Internal())
	}
}

// NotFound terminates the handler chain for unmatched routes.
func NotFound(c *fiber.Ctx) error {
	return utils.SendNotFound(c)
}
