package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/service"
)

// TherapistHandler exposes therapist endpoints. Creation answers 204 without an identifier.
type TherapistHandler struct {
	resourceHandler[dto.TherapistListRequest, dto.TherapistResponse, dto.TherapistCreateRequest, dto.TherapistUpdateRequest]
}

// NewTherapistHandler constructs a therapist handler.
func NewTherapistHandler(svc service.TherapistService, logger zerolog.Logger) *TherapistHandler {
	return &TherapistHandler{
		resourceHandler: resourceHandler[dto.TherapistListRequest, dto.TherapistResponse, dto.TherapistCreateRequest, dto.TherapistUpdateRequest]{
			service:   svc,
			view:      models.PermissionViewUsers,
			manage:    models.PermissionManageUsers,
			createdID: false,
			logger:    logger.With().Str("component", "therapist_handler").Logger(),
		},
	}
}

// Register wires therapist routes.
func (h *TherapistHandler) Register(router fiber.Router) {
	h.register(router)
}
