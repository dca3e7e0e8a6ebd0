package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/service"
)

// StudentHandler exposes student management endpoints.
type StudentHandler struct {
	resourceHandler[dto.StudentListRequest, dto.StudentResponse, dto.StudentCreateRequest, dto.StudentUpdateRequest]
}

// NewStudentHandler constructs a student handler.
func NewStudentHandler(svc service.StudentService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		resourceHandler: resourceHandler[dto.StudentListRequest, dto.StudentResponse, dto.StudentCreateRequest, dto.StudentUpdateRequest]{
			service:   svc,
			view:      models.PermissionViewStudents,
			manage:    models.PermissionManageStudents,
			createdID: true,
			logger:    logger.With().Str("component", "student_handler").Logger(),
		},
	}
}

// Register wires student routes.
func (h *StudentHandler) Register(router fiber.Router) {
	h.register(router)
}
