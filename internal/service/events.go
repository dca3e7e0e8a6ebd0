package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
)

// ActivityEvent is broadcast after an audit entry is stored.
type ActivityEvent struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	SubjectID  string    `json:"subjectId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// EventPublisher fans activity events out to other processes.
type EventPublisher interface {
	Publish(ctx context.Context, event ActivityEvent) error
}

type brokerPublisher struct {
	redis        *redis.Client
	redisChannel string
	nats         *nats.Conn
	natsSubject  string
}

// NewEventPublisher publishes to a redis channel "<base>:activity" and a NATS subject
// "<base>.activity". Either transport may be nil.
func NewEventPublisher(redisClient *redis.Client, natsConn *nats.Conn, channelBase string) EventPublisher {
	channelBase = strings.TrimSpace(channelBase)
	publisher := &brokerPublisher{redis: redisClient, nats: natsConn}
	if channelBase != "" {
		publisher.redisChannel = channelBase + ":activity"
		publisher.natsSubject = strings.ReplaceAll(channelBase, ":", ".") + ".activity"
	}
	return publisher
}

func (p *brokerPublisher) Publish(ctx context.Context, event ActivityEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if p.redis != nil && p.redisChannel != "" {
		if err := p.redis.Publish(ctx, p.redisChannel, payload).Err(); err != nil {
			return err
		}
	}

	if p.nats != nil && p.natsSubject != "" {
		if err := p.nats.Publish(p.natsSubject, payload); err != nil {
			return err
		}
	}

	return nil
}
