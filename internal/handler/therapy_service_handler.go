package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/service"
)

// TherapyServiceHandler exposes therapy service endpoints.
type TherapyServiceHandler struct {
	resourceHandler[dto.TherapyServiceListRequest, dto.TherapyServiceResponse, dto.TherapyServiceCreateRequest, dto.TherapyServiceUpdateRequest]
}

// NewTherapyServiceHandler constructs a therapy service handler.
func NewTherapyServiceHandler(svc service.TherapyServiceService, logger zerolog.Logger) *TherapyServiceHandler {
	return &TherapyServiceHandler{
		resourceHandler: resourceHandler[dto.TherapyServiceListRequest, dto.TherapyServiceResponse, dto.TherapyServiceCreateRequest, dto.TherapyServiceUpdateRequest]{
			service:   svc,
			view:      models.PermissionViewTherapyServices,
			manage:    models.PermissionManageTherapyServices,
			createdID: true,
			logger:    logger.With().Str("component", "therapy_service_handler").Logger(),
		},
	}
}

// Register wires therapy service routes.
func (h *TherapyServiceHandler) Register(router fiber.Router) {
	h.register(router)
}
