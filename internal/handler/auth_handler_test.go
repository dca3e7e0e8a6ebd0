package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/therapy-admin-api/internal/dto"
	"github.com/noah-isme/therapy-admin-api/internal/models"
)

func TestLoginReturnsUserAndToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "ADMIN@therapy.test", "password": testAdminPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.LoginResponse
	decode(t, resp, &body)
	require.NotEmpty(t, body.Token)
	require.Equal(t, testAdminEmail, body.Data.Email)
	require.Equal(t, models.UserStatusActive, body.Data.Status)
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": testAdminEmail, "password": "wrong"})
	requireError(t, resp, http.StatusBadRequest, "INVALID_CREDENTIALS")

	resp = env.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "nobody@therapy.test", "password": "whatever"})
	requireError(t, resp, http.StatusBadRequest, "INVALID_CREDENTIALS")

	resp = env.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "not-an-email"})
	body := requireError(t, resp, http.StatusBadRequest, "INVALID_REQUEST")
	require.NotEmpty(t, body.Errors)

	resp = env.request(http.MethodPost, "/api/v1/auth/login", "", nil, map[string]string{"Content-Type": "application/json"})
	requireError(t, resp, http.StatusBadRequest, "INVALID_REQUEST")
}

func TestLoginRejectsMalformedJSON(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(http.MethodPost, "/api/v1/auth/login", "", "just a string")
	body := requireError(t, resp, http.StatusBadRequest, "INVALID_REQUEST")
	require.Equal(t, []string{"body: must be a valid JSON object"}, body.Errors)
}

func TestDeactivatedUserLosesAccess(t *testing.T) {
	env := newTestEnv(t)
	viewerID, viewerToken := env.inviteUser("viewer@therapy.test", "Viewer")

	resp := env.do(http.MethodGet, "/api/v1/auth/me", viewerToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = env.do(http.MethodPatch, "/api/v1/users/"+viewerID, env.adminToken, map[string]string{"status": models.UserStatusInactive})
	require.Equal(t, http.StatusNoContent, resp.StatusCode, readBody(t, resp))

	resp = env.do(http.MethodGet, "/api/v1/auth/me", viewerToken, nil)
	requireError(t, resp, http.StatusUnauthorized, "UNAUTHENTICATED")

	resp = env.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "viewer@therapy.test", "password": "invited-password"})
	requireError(t, resp, http.StatusUnauthorized, "INACTIVE_ACCOUNT")
}

func TestMeReturnsCurrentUserWithPermissions(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(http.MethodGet, "/api/v1/auth/me", env.adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data dto.UserResponse `json:"data"`
	}
	decode(t, resp, &body)
	require.Equal(t, testAdminEmail, body.Data.Email)
	require.Contains(t, body.Data.Permissions, models.PermissionManageUsers)

	resp = env.do(http.MethodGet, "/api/v1/auth/me", "", nil)
	requireError(t, resp, http.StatusUnauthorized, "UNAUTHENTICATED")
}

func TestPasswordResetFlow(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(http.MethodPost, "/api/v1/auth/start-password-reset", "", map[string]string{"email": "nobody@therapy.test"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = env.do(http.MethodPost, "/api/v1/auth/start-password-reset", "", map[string]string{"email": testAdminEmail})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	message := env.mail.last(t)
	require.Equal(t, testAdminEmail, message.To)
	token := inviteToken(t, message)

	resp = env.do(http.MethodPost, "/api/v1/auth/reset-password", "", map[string]string{"token": token, "password": "a-brand-new-secret"})
	require.Equal(t, http.StatusNoContent, resp.StatusCode, readBody(t, resp))

	resp = env.do(http.MethodPost, "/api/v1/auth/reset-password", "", map[string]string{"token": token, "password": "a-brand-new-secret"})
	requireError(t, resp, http.StatusBadRequest, "INVALID_RESET_TOKEN")

	env.login(testAdminEmail, "a-brand-new-secret")
	resp = env.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": testAdminEmail, "password": testAdminPassword})
	requireError(t, resp, http.StatusBadRequest, "INVALID_CREDENTIALS")
}

func TestAcceptInviteRejectsUnknownToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(http.MethodPost, "/api/v1/auth/accept-invite", "", map[string]string{"token": "bogus", "password": "long-enough-password"})
	requireError(t, resp, http.StatusBadRequest, "INVALID_RESET_TOKEN")
}

func TestSeedEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(http.MethodPost, "/api/v1/seed", "", nil, map[string]string{"X-Seed-Token": "wrong"})
	requireError(t, resp, http.StatusUnauthorized, "UNAUTHENTICATED")

	resp = env.request(http.MethodPost, "/api/v1/seed", "", nil, map[string]string{"X-Seed-Token": testSeedToken})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data dto.SeedResult `json:"data"`
	}
	decode(t, resp, &body)
	require.Equal(t, len(models.AllPermissions), body.Data.Permissions)
	require.NotEmpty(t, body.Data.AdminUserID)

	var users int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&users).Error)
	require.EqualValues(t, 1, users)
}
