package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/service"
)

// InvoiceHandler exposes invoice endpoints.
type InvoiceHandler struct {
	resourceHandler[dto.InvoiceListRequest, dto.InvoiceResponse, dto.InvoiceCreateRequest, dto.InvoiceUpdateRequest]
}

// NewInvoiceHandler constructs a invoice handler.
func NewInvoiceHandler(svc service.InvoiceService, logger zerolog.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		resourceHandler: resourceHandler[dto.InvoiceListRequest, dto.InvoiceResponse, dto.InvoiceCreateRequest, dto.InvoiceUpdateRequest]{
			service:   svc,
			view:      models.PermissionViewInvoices,
			manage:    models.PermissionManageInvoices,
			createdID: true,
			logger:    logger.With().Str("component", "invoice_handler").Logger(),
		},
	}
}

// Register wires invoice routes.
func (h *InvoiceHandler) Register(router fiber.Router) {
	h.register(router)
}
