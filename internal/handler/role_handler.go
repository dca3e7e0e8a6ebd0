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

// RoleHandler exposes the read-only role catalogue.
type RoleHandler struct {
	service service.RoleService
	logger  zerolog.Logger
}

// NewRoleHandler constructs a role handler.
func NewRoleHandler(service service.RoleService, logger zerolog.Logger) *RoleHandler {
	return &RoleHandler{
		service: service,
		logger:  logger.With().Str("component", "role_handler").Logger(),
	}
}

// Register wires role routes.
func (h *RoleHandler) Register(router fiber.Router) {
	view := middleware.RequirePermission(models.PermissionViewUsers)
	router.Get("", view, h.list)
	router.Get("/:id", view, h.get)
}

func (h *RoleHandler) list(c *fiber.Ctx) error {
	var req dto.RoleListRequest
	if err := parseQuery(c, &req); err != nil {
		return err
	}

	roles, err := h.service.List(c.UserContext(), req)
	if err != nil {
		return err
	}
	return utils.SendJSON(c, roles)
}

func (h *RoleHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	role, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return utils.SendData(c, fiber.StatusOK, role)
}
