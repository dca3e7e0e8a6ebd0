package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/therapy-admin-api/internal/config"
	"github.com/noah-isme/therapy-admin-api/internal/database"
	"github.com/noah-isme/therapy-admin-api/internal/handler"
	"github.com/noah-isme/therapy-admin-api/internal/mail"
	"github.com/noah-isme/therapy-admin-api/internal/repository"
	"github.com/noah-isme/therapy-admin-api/internal/router"
	"github.com/noah-isme/therapy-admin-api/internal/service"
)

const (
	testSeedToken     = "seed-token"
	testAdminEmail    = "admin@therapy.test"
	testAdminPassword = "correct-horse-battery"
)

type outbox struct {
	mu       sync.Mutex
	messages []mail.Message
}

func (o *outbox) Dispatch(_ context.Context, message mail.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, message)
	return nil
}

func (o *outbox) last(t *testing.T) mail.Message {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	require.NotEmpty(t, o.messages, "no mail dispatched")
	return o.messages[len(o.messages)-1]
}

type memoryStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func (m *memoryStorage) Upload(_ context.Context, name string, reader io.Reader) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = map[string][]byte{}
	}
	m.files[name] = data
	return "https://files.test/" + name, nil
}

type testEnv struct {
	t          *testing.T
	db         *gorm.DB
	app        *fiber.App
	mail       *outbox
	adminToken string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := config.Config{
		AppName:           "Therapy Admin API",
		AppEnv:            "test",
		FrontendURL:       "https://admin.test",
		JWTSecret:         "test-secret",
		JWTTTL:            time.Hour,
		ResetTokenTTL:     time.Hour,
		InviteTokenTTL:    time.Hour,
		RateLimitMax:      1000,
		RateLimitWindow:   time.Minute,
		UploadMaxSizeMB:   1,
		SeedEnabled:       true,
		SeedToken:         testSeedToken,
		SeedAdminEmail:    testAdminEmail,
		SeedAdminPassword: testAdminPassword,
	}
	logger := zerolog.New(io.Discard)
	mailer := &outbox{}
	validate := service.NewValidator()

	users := repository.NewUserRepository(db)
	roles := repository.NewRoleRepository(db)
	schools := repository.NewSchoolRepository(db)
	students := repository.NewStudentRepository(db)
	providers := repository.NewProviderRepository(db)
	therapists := repository.NewTherapistRepository(db)
	therapyServices := repository.NewTherapyServiceRepository(db)

	activity := service.NewActivityService(repository.NewActivityLogRepository(db), users, nil, validate, logger)
	auth := service.NewAuthService(users, mailer, service.AuthConfig{
		Secret:        cfg.JWTSecret,
		TokenTTL:      cfg.JWTTTL,
		ResetTokenTTL: cfg.ResetTokenTTL,
		FrontendURL:   cfg.FrontendURL,
	}, validate, activity, logger)

	app := router.NewApp(cfg, logger)
	router.Register(app, cfg, router.Dependencies{
		Authenticator: auth,
		AuthHandler:   handler.NewAuthHandler(auth, logger),
		UserHandler: handler.NewUserHandler(service.NewUserService(users, roles, schools, mailer,
			service.UserServiceConfig{FrontendURL: cfg.FrontendURL, InviteTTL: cfg.InviteTokenTTL}, validate, activity, logger), logger),
		RoleHandler:      handler.NewRoleHandler(service.NewRoleService(roles, nil, 0, validate, logger), logger),
		SchoolHandler:    handler.NewSchoolHandler(service.NewSchoolService(schools, validate, activity, logger), logger),
		StudentHandler:   handler.NewStudentHandler(service.NewStudentService(students, schools, validate, activity, logger), logger),
		ProviderHandler:  handler.NewProviderHandler(service.NewProviderService(providers, validate, activity, logger), logger),
		TherapistHandler: handler.NewTherapistHandler(service.NewTherapistService(therapists, providers, validate, activity, logger), logger),
		TherapyServiceHandler: handler.NewTherapyServiceHandler(service.NewTherapyServiceService(therapyServices, students, providers, therapists,
			validate, activity, logger), logger),
		ReportHandler:  handler.NewReportHandler(service.NewReportService(repository.NewReportRepository(db), therapyServices, validate, activity, logger), logger),
		InvoiceHandler: handler.NewInvoiceHandler(service.NewInvoiceService(repository.NewInvoiceRepository(db), providers, schools, validate, activity, logger), logger),
		DocumentHandler: handler.NewDocumentHandler(service.NewDocumentService(repository.NewDocumentRepository(db), &memoryStorage{},
			cfg.UploadMaxSizeMB, validate, activity, logger), logger),
		ContractHandler:    handler.NewContractHandler(service.NewContractService(repository.NewContractRepository(db), validate, activity, logger), logger),
		ContactHandler:     handler.NewContactHandler(service.NewContactService(repository.NewContactRepository(db), validate, activity, logger), logger),
		ActivityLogHandler: handler.NewActivityLogHandler(activity, logger),
		SeedHandler:        handler.NewSeedHandler(service.NewSeedService(roles, users, service.SeedConfig{
			Enabled:       cfg.SeedEnabled,
			Token:         cfg.SeedToken,
			AdminEmail:    cfg.SeedAdminEmail,
			AdminPassword: cfg.SeedAdminPassword,
		}, logger), logger),
	})

	env := &testEnv{t: t, db: db, app: app, mail: mailer}

	resp := env.request(http.MethodPost, "/api/v1/seed", "", nil, map[string]string{"X-Seed-Token": testSeedToken})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	env.adminToken = env.login(testAdminEmail, testAdminPassword)
	return env
}

func (e *testEnv) request(method, path, token string, body interface{}, headers map[string]string) *http.Response {
	e.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(e.t, err)
	return resp
}

// do sends an authenticated JSON request.
func (e *testEnv) do(method, path, token string, body interface{}) *http.Response {
	e.t.Helper()
	return e.request(method, path, token, body, nil)
}

func (e *testEnv) login(email, password string) string {
	e.t.Helper()
	resp := e.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(e.t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	decode(e.t, resp, &body)
	require.NotEmpty(e.t, body.Token)
	return body.Token
}

// create posts a resource and returns the identifier from the 201 body.
func (e *testEnv) create(path string, body interface{}) string {
	e.t.Helper()
	resp := e.do(http.MethodPost, path, e.adminToken, body)
	require.Equal(e.t, http.StatusCreated, resp.StatusCode, readBody(e.t, resp))

	var created struct {
		ID string `json:"id"`
	}
	decode(e.t, resp, &created)
	require.NotEmpty(e.t, created.ID)
	return created.ID
}

// inviteUser creates a user with roleName, accepts the invitation and returns a session token.
func (e *testEnv) inviteUser(email, roleName string) (string, string) {
	e.t.Helper()

	resp := e.do(http.MethodGet, "/api/v1/roles?name="+url.QueryEscape(roleName), e.adminToken, nil)
	require.Equal(e.t, http.StatusOK, resp.StatusCode)
	var roles struct {
		Data []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"data"`
	}
	decode(e.t, resp, &roles)
	require.Len(e.t, roles.Data, 1)

	id := e.create("/api/v1/users", map[string]interface{}{
		"email":     email,
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"roleId":    roles.Data[0].ID,
	})

	token := inviteToken(e.t, e.mail.last(e.t))
	resp = e.do(http.MethodPost, "/api/v1/auth/accept-invite", "", map[string]string{"token": token, "password": "invited-password"})
	require.Equal(e.t, http.StatusNoContent, resp.StatusCode, readBody(e.t, resp))

	return id, e.login(email, "invited-password")
}

func inviteToken(t *testing.T, message mail.Message) string {
	t.Helper()
	idx := strings.Index(message.Body, "?token=")
	require.GreaterOrEqual(t, idx, 0, "no action link in %q", message.Body)
	values, err := url.ParseQuery(strings.TrimPrefix(strings.Fields(message.Body[idx:])[0], "?"))
	require.NoError(t, err)
	return values.Get("token")
}

func decode(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body = io.NopCloser(bytes.NewReader(data))
	return string(data)
}

type errorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

func requireError(t *testing.T, resp *http.Response, status int, code string) errorBody {
	t.Helper()
	require.Equal(t, status, resp.StatusCode, readBody(t, resp))
	var body errorBody
	decode(t, resp, &body)
	require.Equal(t, code, body.Code)
	require.NotEmpty(t, body.Message)
	return body
}
