package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/service"
)

// ReportHandler exposes session report endpoints.
type ReportHandler struct {
	resourceHandler[dto.ReportListRequest, dto.ReportResponse, dto.ReportCreateRequest, dto.ReportUpdateRequest]
}

// NewReportHandler constructs a report handler.
func NewReportHandler(svc service.ReportService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		resourceHandler: resourceHandler[dto.ReportListRequest, dto.ReportResponse, dto.ReportCreateRequest, dto.ReportUpdateRequest]{
			service:   svc,
			view:      models.PermissionViewReports,
			manage:    models.PermissionManageReports,
			createdID: true,
			logger:    logger.With().Str("component", "report_handler").Logger(),
		},
	}
}

// Register wires report routes.
func (h *ReportHandler) Register(router fiber.Router) {
	h.register(router)
}
