package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/service"
)

// SchoolHandler exposes school management endpoints.
type SchoolHandler struct {
	resourceHandler[dto.SchoolListRequest, dto.SchoolResponse, dto.SchoolCreateRequest, dto.SchoolUpdateRequest]
}

// NewSchoolHandler constructs a school handler.
func NewSchoolHandler(svc service.SchoolService, logger zerolog.Logger) *SchoolHandler {
	return &SchoolHandler{
		resourceHandler: resourceHandler[dto.SchoolListRequest, dto.SchoolResponse, dto.SchoolCreateRequest, dto.SchoolUpdateRequest]{
			service:   svc,
			view:      models.PermissionViewSchools,
			manage:    models.PermissionManageSchools,
			createdID: true,
			logger:    logger.With().Str("component", "school_handler").Logger(),
		},
	}
}

// Register wires school routes.
func (h *SchoolHandler) Register(router fiber.Router) {
	h.register(router)
}
