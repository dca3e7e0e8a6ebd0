package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/middleware"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/service"
	"github.com/noah-isme/therapy-admin-api/internal/utils"
)

// ActivityLogHandler serves the audit trail.
type ActivityLogHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewActivityLogHandler constructs an activity log handler.
func NewActivityLogHandler(service service.ActivityService, logger zerolog.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_log_handler").Logger(),
	}
}

// Register wires activity log routes.
func (h *ActivityLogHandler) Register(router fiber.Router) {
	router.Get("", middleware.RequirePermission(models.PermissionViewActivityLogs), h.list)
}

func (h *ActivityLogHandler) list(c *fiber.Ctx) error {
	var req dto.ActivityLogListRequest
	if err := parseQuery(c, &req); err != nil {
		return err
	}

	entries, err := h.service.List(c.UserContext(), req)
	if err != nil {
		return err
	}
	return utils.SendJSON(c, entries)
}
