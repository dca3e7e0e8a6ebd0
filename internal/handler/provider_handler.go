package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/middleware"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/repository"
	"github.com/noah-isme/therapy-admin-api/internal/service"
	"github.com/noah-isme/therapy-admin-api/internal/utils"
)

// ProviderHandler exposes provider endpoints, including the document, contract and
// contact link sets.
type ProviderHandler struct {
	resourceHandler[dto.ProviderListRequest, dto.ProviderResponse, dto.ProviderCreateRequest, dto.ProviderUpdateRequest]
	providers service.ProviderService
}

// NewProviderHandler constructs a provider handler.
func NewProviderHandler(svc service.ProviderService, logger zerolog.Logger) *ProviderHandler {
	return &ProviderHandler{
		resourceHandler: resourceHandler[dto.ProviderListRequest, dto.ProviderResponse, dto.ProviderCreateRequest, dto.ProviderUpdateRequest]{
			service: svc,
			view:    models.PermissionViewUsers,
			manage:  models.PermissionManageUsers,
			logger:  logger.With().Str("component", "provider_handler").Logger(),
		},
		providers: svc,
	}
}

// Register wires provider routes.
func (h *ProviderHandler) Register(router fiber.Router) {
	h.register(router)

	manage := middleware.RequirePermission(models.PermissionManageUsers)
	for _, kind := range []repository.LinkKind{repository.LinkDocuments, repository.LinkContracts, repository.LinkContacts} {
		router.Post("/:id/"+string(kind), manage, h.addLinks(kind))
		router.Delete("/:id/"+string(kind), manage, h.removeLinks(kind))
	}
}

func (h *ProviderHandler) addLinks(kind repository.LinkKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var req dto.LinkAddRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}

		if err := h.providers.AddLinks(c.UserContext(), id, kind, req, actorFromContext(c)); err != nil {
			return err
		}
		return utils.SendNoContent(c)
	}
}

func (h *ProviderHandler) removeLinks(kind repository.LinkKind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseIDParam(c)
		if err != nil {
			return err
		}

		var req dto.LinkRemoveRequest
		if err := parseBody(c, &req); err != nil {
			return err
		}

		if err := h.providers.RemoveLinks(c.UserContext(), id, kind, req, actorFromContext(c)); err != nil {
			return err
		}
		return utils.SendNoContent(c)
	}
}
