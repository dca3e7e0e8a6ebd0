package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/therapy-admin-api/internal/config"
	"github.com/noah-isme/therapy-admin-api/internal/database"
	"github.com/noah-isme/therapy-admin-api/internal/handler"
	"github.com/noah-isme/therapy-admin-api/internal/mail"
	"github.com/noah-isme/therapy-admin-api/internal/repository"
	"github.com/noah-isme/therapy-admin-api/internal/router"
	"github.com/noah-isme/therapy-admin-api/internal/service"
	cloud "github.com/noah-isme/therapy-admin-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()
	if cfg.AppEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
	} else {
		logger.Warn().Msg("redis not configured; role cache and queued mail disabled")
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Drain()
	}

	var mailer mail.Dispatcher = mail.NewInlineDispatcher(mail.NewLogSender(logger))
	if cfg.RedisURL != "" {
		queue, err := mail.NewQueueDispatcher(cfg.RedisURL, logger)
		if err != nil {
			log.Fatalf("failed to create mail queue: %v", err)
		}
		defer queue.Close()
		mailer = queue
	}

	var storage service.FileStorage = unconfiguredStorage{}
	cloudCfg := cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}
	if cloudCfg.Configured() {
		uploader, err := cloud.New(cloudCfg, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		storage = uploader
	} else {
		logger.Warn().Msg("cloudinary not configured; document uploads will fail")
	}

	validate := service.NewValidator()

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	schoolRepo := repository.NewSchoolRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	providerRepo := repository.NewProviderRepository(db)
	therapistRepo := repository.NewTherapistRepository(db)
	therapyServiceRepo := repository.NewTherapyServiceRepository(db)
	reportRepo := repository.NewReportRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	contractRepo := repository.NewContractRepository(db)
	contactRepo := repository.NewContactRepository(db)
	activityRepo := repository.NewActivityLogRepository(db)

	events := service.NewEventPublisher(redisClient, natsConn, cfg.EventsChannel)
	activityService := service.NewActivityService(activityRepo, userRepo, events, validate, logger)
	authService := service.NewAuthService(userRepo, mailer, service.AuthConfig{
		Secret:        cfg.JWTSecret,
		TokenTTL:      cfg.JWTTTL,
		ResetTokenTTL: cfg.ResetTokenTTL,
		FrontendURL:   cfg.FrontendURL,
	}, validate, activityService, logger)
	userService := service.NewUserService(userRepo, roleRepo, schoolRepo, mailer, service.UserServiceConfig{
		FrontendURL: cfg.FrontendURL,
		InviteTTL:   cfg.InviteTokenTTL,
	}, validate, activityService, logger)
	roleService := service.NewRoleService(roleRepo, redisClient, cfg.RolesCacheTTL, validate, logger)
	schoolService := service.NewSchoolService(schoolRepo, validate, activityService, logger)
	studentService := service.NewStudentService(studentRepo, schoolRepo, validate, activityService, logger)
	providerService := service.NewProviderService(providerRepo, validate, activityService, logger)
	therapistService := service.NewTherapistService(therapistRepo, providerRepo, validate, activityService, logger)
	therapyServiceService := service.NewTherapyServiceService(therapyServiceRepo, studentRepo, providerRepo, therapistRepo, validate, activityService, logger)
	reportService := service.NewReportService(reportRepo, therapyServiceRepo, validate, activityService, logger)
	invoiceService := service.NewInvoiceService(invoiceRepo, providerRepo, schoolRepo, validate, activityService, logger)
	documentService := service.NewDocumentService(documentRepo, storage, cfg.UploadMaxSizeMB, validate, activityService, logger)
	contractService := service.NewContractService(contractRepo, validate, activityService, logger)
	contactService := service.NewContactService(contactRepo, validate, activityService, logger)
	seedService := service.NewSeedService(roleRepo, userRepo, service.SeedConfig{
		Enabled:       cfg.SeedEnabled,
		Token:         cfg.SeedToken,
		AdminEmail:    cfg.SeedAdminEmail,
		AdminPassword: cfg.SeedAdminPassword,
	}, logger)

	app := router.NewApp(cfg, logger)
	router.Register(app, cfg, router.Dependencies{
		Authenticator:         authService,
		AuthHandler:           handler.NewAuthHandler(authService, logger),
		UserHandler:           handler.NewUserHandler(userService, logger),
		RoleHandler:           handler.NewRoleHandler(roleService, logger),
		SchoolHandler:         handler.NewSchoolHandler(schoolService, logger),
		StudentHandler:        handler.NewStudentHandler(studentService, logger),
		ProviderHandler:       handler.NewProviderHandler(providerService, logger),
		TherapistHandler:      handler.NewTherapistHandler(therapistService, logger),
		TherapyServiceHandler: handler.NewTherapyServiceHandler(therapyServiceService, logger),
		ReportHandler:         handler.NewReportHandler(reportService, logger),
		InvoiceHandler:        handler.NewInvoiceHandler(invoiceService, logger),
		DocumentHandler:       handler.NewDocumentHandler(documentService, logger),
		ContractHandler:       handler.NewContractHandler(contractService, logger),
		ContactHandler:        handler.NewContactHandler(contactService, logger),
		ActivityLogHandler:    handler.NewActivityLogHandler(activityService, logger),
		SeedHandler:           handler.NewSeedHandler(seedService, logger),
		HealthProbes:          healthProbes(db, redisClient),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, logger)
}

func healthProbes(db *gorm.DB, redisClient *redis.Client) map[string]handler.HealthProbe {
	probes := map[string]handler.HealthProbe{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if redisClient != nil {
		probes["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}
	return probes
}

// unconfiguredStorage rejects uploads when no document storage credentials are set.
type unconfiguredStorage struct{}

func (unconfiguredStorage) Upload(context.Context, string, io.Reader) (string, error) {
	return "", errors.New("document storage is not configured")
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
