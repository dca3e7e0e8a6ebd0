package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/apperror"
	"github.com/noah-isme/therapy-admin-api/internal/middleware"
	"github.com/noah-isme/therapy-admin-api/internal/service"
)

func parseIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, apperror.InvalidRequest("id: must be a valid UUID")
	}
	return id, nil
}

// parseBody decodes a JSON body into payload. An empty body leaves payload untouched so
// partial updates may send nothing.
func parseBody(c *fiber.Ctx, payload interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(payload); err != nil {
		return apperror.InvalidRequest("body: must be a valid JSON object")
	}
	return nil
}

func parseQuery(c *fiber.Ctx, payload interface{}) error {
	if err := c.QueryParser(payload); err != nil {
		return apperror.InvalidRequest("query: " + err.Error())
	}
	return nil
}

func actorFromContext(c *fiber.Ctx) service.Actor {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return service.Actor{}
	}
	return service.ActorFromUser(user)
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}
