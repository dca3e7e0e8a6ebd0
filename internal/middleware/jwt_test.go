package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/therapy-admin-api/internal/apperror"
	"github.com/noah-isme/therapy-admin-api/internal/models"
)

type stubAuthenticator struct {
	tokens map[string]models.User
	err    error
	calls  []string
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, token string) (models.User, error) {
	s.calls = append(s.calls, token)
	if s.err != nil {
		return models.User{}, s.err
	}
	user, ok := s.tokens[token]
	if !ok {
		return models.User{}, apperror.Unauthenticated()
	}
	return user, nil
}

func authApp(auth *stubAuthenticator) *fiber.App {
	app := fiber.New()
	app.Get("/me", Authenticate(auth), func(c *fiber.Ctx) error {
		user, ok := CurrentUser(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.JSON(fiber.Map{"email": user.Email})
	})
	return app
}

func TestAuthenticateStoresUser(t *testing.T) {
	user := userWith(models.PermissionViewUsers)
	auth := &stubAuthenticator{tokens: map[string]models.User{"good": user}}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp, err := authApp(auth).Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Equal(t, user.Email, payload["email"])
	require.Equal(t, []string{"good"}, auth.calls)
}

func TestAuthenticateRejectsMissingOrMalformedHeader(t *testing.T) {
	auth := &stubAuthenticator{tokens: map[string]models.User{}}
	app := authApp(auth)

	for _, header := range []string{"", "Basic abc", "Bearer", "Bearer bad"} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, header)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		require.Equal(t, "UNAUTHENTICATED", payload["code"])
	}
	require.Equal(t, []string{"bad"}, auth.calls)
}

func TestAuthenticatePropagatesInfrastructureErrors(t *testing.T) {
	auth := &stubAuthenticator{err: errors.New("database unavailable")}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp, err := authApp(auth).Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
