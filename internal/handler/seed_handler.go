package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/apperror"
	"github.com/noah-isme/therapy-admin-api/internal/service"
	"github.com/noah-isme/therapy-admin-api/internal/utils"
)

// SeedHandler exposes the bootstrap endpoint that creates roles and the first admin.
type SeedHandler struct {
	service service.SeedService
	logger  zerolog.Logger
}

// NewSeedHandler constructs a seed handler.
func NewSeedHandler(service service.SeedService, logger zerolog.Logger) *SeedHandler {
	return &SeedHandler{
		service: service,
		logger:  logger.With().Str("component", "seed_handler").Logger(),
	}
}

// Register wires seed routes.
func (h *SeedHandler) Register(router fiber.Router) {
	router.Post("", h.seed)
}

func (h *SeedHandler) seed(c *fiber.Ctx) error {
	result, err := h.service.Seed(c.UserContext(), c.Get("X-Seed-Token"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSeedDisabled):
			return utils.SendError(c, apperror.Unauthorized())
		case errors.Is(err, service.ErrSeedUnauthorized):
			return utils.SendError(c, apperror.Unauthenticated())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("seed operation failed")
			return err
		}
	}

	return utils.SendData(c, fiber.StatusOK, result)
}
