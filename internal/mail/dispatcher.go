package mail

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Dispatcher hands messages off for delivery.
type Dispatcher interface {
	Dispatch(ctx context.Context, message Message) error
}

// QueueDispatcher enqueues messages for the worker process.
type QueueDispatcher struct {
	client *asynq.Client
	logger zerolog.Logger
}

// NewQueueDispatcher constructs a dispatcher backed by the redis instance at redisURL.
func NewQueueDispatcher(redisURL string, logger zerolog.Logger) (*QueueDispatcher, error) {
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &QueueDispatcher{
		client: asynq.NewClient(opt),
		logger: logger.With().Str("component", "mail_dispatcher").Logger(),
	}, nil
}

// Dispatch enqueues a send-email task.
func (d *QueueDispatcher) Dispatch(ctx context.Context, message Message) error {
	task, err := NewSendEmailTask(message)
	if err != nil {
		return err
	}
	info, err := d.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault), asynq.MaxRetry(5))
	if err != nil {
		return fmt.Errorf("enqueue mail: %w", err)
	}
	d.logger.Debug().Str("task_id", info.ID).Str("subject", message.Subject).Msg("mail enqueued")
	return nil
}

// Close releases the underlying client.
func (d *QueueDispatcher) Close() error {
	return d.client.Close()
}

// InlineDispatcher sends messages synchronously. Used when no queue is configured.
type InlineDispatcher struct {
	sender Sender
}

// NewInlineDispatcher constructs a dispatcher that delivers immediately.
func NewInlineDispatcher(sender Sender) *InlineDispatcher {
	return &InlineDispatcher{sender: sender}
}

// Dispatch delivers the message in the calling goroutine.
func (d *InlineDispatcher) Dispatch(ctx context.Context, message Message) error {
	return d.sender.Send(ctx, message)
}

// LogSender writes messages to the structured log instead of a mail server.
type LogSender struct {
	logger zerolog.Logger
}

// NewLogSender constructs a logging sender.
func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger.With().Str("component", "mail_sender").Logger()}
}

// Send logs the message.
func (s *LogSender) Send(ctx context.Context, message Message) error {
	s.logger.Info().Str("to", message.To).Str("subject", message.Subject).Msg("email delivered")
	return nil
}
