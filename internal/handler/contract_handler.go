package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/service"
)

// ContractHandler exposes provider contract endpoints.
type ContractHandler struct {
	resourceHandler[dto.ContractListRequest, dto.ContractResponse, dto.ContractCreateRequest, dto.ContractUpdateRequest]
}

// NewContractHandler constructs a contract handler.
func NewContractHandler(svc service.ContractService, logger zerolog.Logger) *ContractHandler {
	return &ContractHandler{
		resourceHandler: resourceHandler[dto.ContractListRequest, dto.ContractResponse, dto.ContractCreateRequest, dto.ContractUpdateRequest]{
			service:   svc,
			view:      models.PermissionViewUsers,
			manage:    models.PermissionManageUsers,
			createdID: true,
			logger:    logger.With().Str("component", "contract_handler").Logger(),
		},
	}
}

// Register wires contract routes.
func (h *ContractHandler) Register(router fiber.Router) {
	h.register(router)
}
