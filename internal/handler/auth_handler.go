package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/apperror"
	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/middleware"
	"github.com/noah-isme/therapy-admin-api/internal/service"
	"github.com/noah-isme/therapy-admin-api/internal/utils"
)

// AuthHandler exposes the sign-in, password reset and invitation endpoints.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs an auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register wires the public auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.login)
	router.Post("/start-password-reset", h.startPasswordReset)
	router.Post("/reset-password", h.resetPassword)
	router.Post("/accept-invite", h.acceptInvite)
}

// RegisterSession wires routes that need an authenticated user, each behind guard.
func (h *AuthHandler) RegisterSession(router fiber.Router, guard fiber.Handler) {
	router.Get("/me", guard, h.me)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	response, err := h.service.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return utils.SendJSON(c, response)
}

func (h *AuthHandler) startPasswordReset(c *fiber.Ctx) error {
	var req dto.StartPasswordResetRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := h.service.StartPasswordReset(c.UserContext(), req); err != nil {
		return err
	}
	return utils.SendNoContent(c)
}

func (h *AuthHandler) resetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := h.service.ResetPassword(c.UserContext(), req); err != nil {
		return err
	}
	return utils.SendNoContent(c)
}

func (h *AuthHandler) acceptInvite(c *fiber.Ctx) error {
	var req dto.AcceptInviteRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := h.service.AcceptInvite(c.UserContext(), req); err != nil {
		return err
	}
	return utils.SendNoContent(c)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return apperror.Unauthenticated()
	}
	return utils.SendData(c, fiber.StatusOK, dto.NewUserResponse(user))
}
