package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/config"
	"github.com/noah-isme/therapy-admin-api/internal/handler"
	"github.com/noah-isme/therapy-admin-api/internal/middleware"
	"github.com/noah-isme/therapy-admin-api/internal/observability"
	"github.com/noah-isme/therapy-admin-api/internal/service"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	Authenticator         service.Authenticator
	AuthHandler           *handler.AuthHandler
	UserHandler           *handler.UserHandler
	RoleHandler           *handler.RoleHandler
	SchoolHandler         *handler.SchoolHandler
	StudentHandler        *handler.StudentHandler
	ProviderHandler       *handler.ProviderHandler
	TherapistHandler      *handler.TherapistHandler
	TherapyServiceHandler *handler.TherapyServiceHandler
	ReportHandler         *handler.ReportHandler
	InvoiceHandler        *handler.InvoiceHandler
	DocumentHandler       *handler.DocumentHandler
	ContractHandler       *handler.ContractHandler
	ContactHandler        *handler.ContactHandler
	ActivityLogHandler    *handler.ActivityLogHandler
	SeedHandler           *handler.SeedHandler
	HealthProbes          map[string]handler.HealthProbe
}

// NewApp builds the fiber application with the shared error handler and middleware chain.
func NewApp(cfg config.Config, logger zerolog.Logger) *fiber.App {
	uploadLimit := cfg.UploadMaxSizeMB
	if uploadLimit <= 0 {
		uploadLimit = 10
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		ErrorHandler: handler.ErrorHandler(logger),
		// Multipart framing adds to the file size; the service enforces the exact limit.
		BodyLimit: (uploadLimit + 1) * 1024 * 1024,
	})

	middleware.Register(app, middleware.Config{
		Logger:          &logger,
		AllowOrigins:    cfg.FrontendURL,
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
		AccessLog:       cfg.AppEnv == "development",
	})

	return app
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.HealthProbes))

	if deps.SeedHandler != nil {
		deps.SeedHandler.Register(api.Group("/seed"))
	}

	if deps.Authenticator == nil {
		app.Use(handler.NotFound)
		return
	}
	authenticated := middleware.Authenticate(deps.Authenticator)

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.Register(auth)
		deps.AuthHandler.RegisterSession(auth, authenticated)
	}

	resources := []struct {
		path     string
		register func(fiber.Router)
	}{
		{"/users", registrar(deps.UserHandler)},
		{"/roles", registrar(deps.RoleHandler)},
		{"/schools", registrar(deps.SchoolHandler)},
		{"/students", registrar(deps.StudentHandler)},
		{"/providers", registrar(deps.ProviderHandler)},
		{"/therapists", registrar(deps.TherapistHandler)},
		{"/therapy-services", registrar(deps.TherapyServiceHandler)},
		{"/reports", registrar(deps.ReportHandler)},
		{"/invoices", registrar(deps.InvoiceHandler)},
		{"/documents", registrar(deps.DocumentHandler)},
		{"/contracts", registrar(deps.ContractHandler)},
		{"/contacts", registrar(deps.ContactHandler)},
		{"/activity-logs", registrar(deps.ActivityLogHandler)},
	}
	for _, resource := range resources {
		if resource.register == nil {
			continue
		}
		resource.register(api.Group(resource.path, authenticated))
	}

	app.Use(handler.NotFound)
}

type routeRegistrar interface {
	Register(router fiber.Router)
}

// registrar returns nil for handlers that were not provided so callers can wire a subset.
func registrar[T routeRegistrar](h T) func(fiber.Router) {
	var zero T
	if any(h) == any(zero) {
		return nil
	}
	return h.Register
}
