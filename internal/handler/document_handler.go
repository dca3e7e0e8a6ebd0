package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/middleware"
	"github.com/noah-isme/therapy-admin-api/internal/models"
	"github.com/noah-isme/therapy-admin-api/internal/service"
	"github.com/noah-isme/therapy-admin-api/internal/utils"
)

// DocumentHandler manages uploaded documents. Creation is a multipart upload with a
// "file" part and an optional "name" field.
type DocumentHandler struct {
	service service.DocumentService
	logger  zerolog.Logger
}

// NewDocumentHandler constructs a document handler.
func NewDocumentHandler(service service.DocumentService, logger zerolog.Logger) *DocumentHandler {
	return &DocumentHandler{
		service: service,
		logger:  logger.With().Str("component", "document_handler").Logger(),
	}
}

// Register wires document routes.
func (h *DocumentHandler) Register(router fiber.Router) {
	view := middleware.RequirePermission(models.PermissionViewUsers)
	manage := middleware.RequirePermission(models.PermissionManageUsers)

	router.Get("", view, h.list)
	router.Get("/:id", view, h.get)
	router.Post("", manage, h.upload)
	router.Patch("/:id", manage, h.update)
	router.Delete("/:id", manage, h.delete)
}

func (h *DocumentHandler) list(c *fiber.Ctx) error {
	var req dto.DocumentListRequest
	if err := parseQuery(c, &req); err != nil {
		return err
	}

	documents, err := h.service.List(c.UserContext(), req)
	if err != nil {
		return err
	}
	return utils.SendJSON(c, documents)
}

func (h *DocumentHandler) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	document, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return utils.SendData(c, fiber.StatusOK, document)
}

func (h *DocumentHandler) upload(c *fiber.Ctx) error {
	// A missing part is reported by the service as "file: is required".
	file, err := c.FormFile("file")
	if err != nil {
		file = nil
	}

	id, err := h.service.Upload(c.UserContext(), file, strings.TrimSpace(c.FormValue("name")), actorFromContext(c))
	if err != nil {
		return err
	}

	requestLogger(h.logger, c).Info().Str("document_id", id.String()).Msg("document uploaded")
	return utils.SendCreated(c, id.String())
}

func (h *DocumentHandler) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req dto.DocumentUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := h.service.Update(c.UserContext(), id, req, actorFromContext(c)); err != nil {
		return err
	}
	return utils.SendNoContent(c)
}

func (h *DocumentHandler) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), id, actorFromContext(c)); err != nil {
		return err
	}
	return utils.SendNoContent(c)
}
