package mail

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, message Message) error {
	r.sent = append(r.sent, message)
	return r.err
}

func TestSendEmailHandlerDeliversPayload(t *testing.T) {
	sender := &recordingSender{}
	task, err := NewSendEmailTask(Message{To: "a@example.com", Subject: "Hi", Body: "Body"})
	require.NoError(t, err)
	require.Equal(t, TaskTypeSendEmail, task.Type())

	require.NoError(t, NewSendEmailHandler(sender)(context.Background(), task))
	require.Len(t, sender.sent, 1)
	require.Equal(t, "a@example.com", sender.sent[0].To)
}

func TestSendEmailHandlerSkipsRetryOnBadPayload(t *testing.T) {
	sender := &recordingSender{}
	err := NewSendEmailHandler(sender)(context.Background(), asynq.NewTask(TaskTypeSendEmail, []byte("{")))
	require.ErrorIs(t, err, asynq.SkipRetry)

	err = NewSendEmailHandler(sender)(context.Background(), asynq.NewTask(TaskTypeSendEmail, []byte(`{"subject":"x"}`)))
	require.ErrorIs(t, err, asynq.SkipRetry)
	require.Empty(t, sender.sent)
}

func TestSendEmailHandlerPropagatesSenderError(t *testing.T) {
	sender := &recordingSender{err: errors.New("smtp down")}
	task, err := NewSendEmailTask(Message{To: "a@example.com"})
	require.NoError(t, err)

	err = NewSendEmailHandler(sender)(context.Background(), task)
	require.EqualError(t, err, "smtp down")
}

func TestInlineDispatcherSendsImmediately(t *testing.T) {
	sender := &recordingSender{}
	require.NoError(t, NewInlineDispatcher(sender).Dispatch(context.Background(), Message{To: "b@example.com"}))
	require.Len(t, sender.sent, 1)
}

func TestTemplatesEmbedEscapedToken(t *testing.T) {
	reset := PasswordResetMessage("https://admin.example.com/", "a@example.com", "a+b")
	require.Equal(t, "a@example.com", reset.To)
	require.True(t, strings.Contains(reset.Body, "https://admin.example.com/reset-password?token=a%2Bb"))

	invite := InviteMessage("https://admin.example.com", "c@example.com", "Casey", "tok")
	require.True(t, strings.HasPrefix(invite.Body, "Hello Casey,"))
	require.Contains(t, invite.Body, "/accept-invite?token=tok")
}

func TestLogSenderNeverFails(t *testing.T) {
	sender := NewLogSender(zerolog.New(io.Discard))
	require.NoError(t, sender.Send(context.Background(), Message{To: "x@example.com"}))
}
