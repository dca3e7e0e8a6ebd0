package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/noah-isme/therapy-admin-api/internal/config"
	"github.com/noah-isme/therapy-admin-api/internal/mail"
)

// The worker delivers queued invitation and password reset emails.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName+" worker").Logger()

	if cfg.RedisURL == "" {
		log.Fatal("redis url must be configured for the mail worker")
	}

	worker, err := mail.NewWorker(cfg.RedisURL, 5, mail.NewLogSender(logger), logger)
	if err != nil {
		log.Fatalf("failed to create mail worker: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("mail worker stopped")
		os.Exit(1)
	}
	logger.Info().Msg("mail worker stopped")
}
