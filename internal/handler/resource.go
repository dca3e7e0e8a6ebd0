package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/middleware"
	"github.com/noah-isme/therapy-admin-api/internal/service"
	"github.com/noah-isme/therapy-admin-api/internal/utils"
)

// crudService is the method set shared by every resource service.
type crudService[L, R, C, U any] interface {
	List(ctx context.Context, req L) (dto.ListResponse[R], error)
	Get(ctx context.Context, id uuid.UUID) (R, error)
	Create(ctx context.Context, req C, actor service.Actor) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, req U, actor service.Actor) error
	Delete(ctx context.Context, id uuid.UUID, actor service.Actor) error
}

// resourceHandler serves list, get, create, update and delete for one resource,
// each route guarded by the view or manage permission.
type resourceHandler[L, R, C, U any] struct {
	service crudService[L, R, C, U]
	view    string
	manage  string
	// createdID controls whether POST answers 201 {id} or 204.
	createdID bool
	logger    zerolog.Logger
}

func (h *resourceHandler[L, R, C, U]) register(router fiber.Router) {
	router.Get("", middleware.RequirePermission(h.view), h.list)
	router.Get("/:id", middleware.RequirePermission(h.view), h.get)
	router.Post("", middleware.RequirePermission(h.manage), h.create)
	router.Patch("/:id", middleware.RequirePermission(h.manage), h.update)
	router.Delete("/:id", middleware.RequirePermission(h.manage), h.delete)
}

func (h *resourceHandler[L, R, C, U]) list(c *fiber.Ctx) error {
	var req L
	if err := parseQuery(c, &req); err != nil {
		return err
	}

	result, err := h.service.List(c.UserContext(), req)
	if err != nil {
		return err
	}

	return utils.SendJSON(c, result)
}

func (h *resourceHandler[L, R, C, U]) get(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	item, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return err
	}

	return utils.SendData(c, fiber.StatusOK, item)
}

func (h *resourceHandler[L, R, C, U]) create(c *fiber.Ctx) error {
	var req C
	if err := parseBody(c, &req); err != nil {
		return err
	}

	id, err := h.service.Create(c.UserContext(), req, actorFromContext(c))
	if err != nil {
		return err
	}

	requestLogger(h.logger, c).Debug().Str("id", id.String()).Msg("resource created")
	if !h.createdID {
		return utils.SendNoContent(c)
	}
	return utils.SendCreated(c, id.String())
}

func (h *resourceHandler[L, R, C, U]) update(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req U
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := h.service.Update(c.UserContext(), id, req, actorFromContext(c)); err != nil {
		return err
	}

	return utils.SendNoContent(c)
}

func (h *resourceHandler[L, R, C, U]) delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), id, actorFromContext(c)); err != nil {
		return err
	}

	return utils.SendNoContent(c)
}
