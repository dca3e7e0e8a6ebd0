package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/service"
)

// ContactHandler exposes provider contact endpoints.
type ContactHandler struct {
	resourceHandler[dto.ContactListRequest, dto.ContactResponse, dto.ContactCreateRequest, dto.ContactUpdateRequest]
}

// NewContactHandler constructs a contact handler.
func NewContactHandler(svc service.ContactService, logger zerolog.Logger) *ContactHandler {
	return &ContactHandler{
		resourceHandler: resourceHandler[dto.ContactListRequest, dto.ContactResponse, dto.ContactCreateRequest, dto.ContactUpdateRequest]{
			service:   svc,
			view:      models.PermissionViewUsers,
			manage:    models.PermissionManageUsers,
			createdID: true,
			logger:    logger.With().Str("component", "contact_handler").Logger(),
		},
	}
}

// Register wires contact routes.
func (h *ContactHandler) Register(router fiber.Router) {
	h.register(router)
}
