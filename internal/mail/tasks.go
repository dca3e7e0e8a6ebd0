// Package mail queues and delivers transactional email through asynq.
package mail

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the queue mail tasks are placed on.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for transactional emails.
	TaskTypeSendEmail = "mail:send"
)

// Message describes one outgoing email.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask wraps a message into an asynq task.
func NewSendEmailTask(message Message) (*asynq.Task, error) {
	data, err := json.Marshal(message)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// Sender delivers a message to its recipient.
type Sender interface {
	Send(ctx context.Context, message Message) error
}

// NewSendEmailHandler returns the asynq handler for TaskTypeSendEmail tasks.
// Malformed payloads are dropped without retry.
func NewSendEmailHandler(sender Sender) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var message Message
		if err := json.Unmarshal(t.Payload(), &message); err != nil {
			return fmt.Errorf("decode mail payload: %v: %w", err, asynq.SkipRetry)
		}
		if message.To == "" {
			return fmt.Errorf("mail payload has no recipient: %w", asynq.SkipRetry)
		}
		return sender.Send(ctx, message)
	}
}
