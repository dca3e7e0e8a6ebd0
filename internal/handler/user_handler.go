package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/service"
)

// UserHandler manages dashboard accounts. Creating a user mails an invitation.
type UserHandler struct {
	resourceHandler[dto.UserListRequest, dto.UserResponse, dto.UserCreateRequest, dto.UserUpdateRequest]
}

// NewUserHandler constructs a user handler.
func NewUserHandler(svc service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		resourceHandler: resourceHandler[dto.UserListRequest, dto.UserResponse, dto.UserCreateRequest, dto.UserUpdateRequest]{
			service:   svc,
			view:      models.PermissionViewUsers,
			manage:    models.PermissionManageUsers,
			createdID: true,
			logger:    logger.With().Str("component", "user_handler").Logger(),
		},
	}
}

// Register wires user routes.
func (h *UserHandler) Register(router fiber.Router) {
	h.register(router)
}
