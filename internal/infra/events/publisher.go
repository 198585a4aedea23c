package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"court-booking-engine/internal/pkg/config"
	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

// StreamAdder is the slice of the Redis client the publisher needs.
type StreamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// StreamPublisher appends booking events to a Redis stream.
type StreamPublisher struct {
	client  StreamAdder
	stream  string
	maxLen  int64
	timeout time.Duration
}

func NewStreamPublisher(client StreamAdder, cfg config.RedisConfig) *StreamPublisher {
	return &StreamPublisher{
		client:  client,
		stream:  cfg.Stream,
		maxLen:  cfg.MaxLen,
		timeout: 2 * time.Second,
	}
}

func (p *StreamPublisher) Publish(ctx context.Context, ev shared.Event) error {
	payload, err := json.Marshal(ev.Payload)
	if err != nil {
		return errs.Wrap(err, "failed to marshal event payload")
	}

	// The request may already be finishing; the event belongs to a committed change.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	args := &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"type":         string(ev.Type),
			"aggregate_id": ev.AggregateID.String(),
			"user_id":      ev.UserID.String(),
			"occurred_at":  ev.OccurredAt.UTC().Format(time.RFC3339Nano),
			"payload":      payload,
		},
	}
	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return errs.Wrapf(err, "failed to XADD %s to stream %s", ev.Type, p.stream)
	}
	return nil
}

// NopPublisher drops events. Used when no Redis address is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, ev shared.Event) error {
	slog.DebugContext(ctx, "event publishing disabled", slog.String("type", string(ev.Type)))
	return nil
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewPublisher picks the Redis stream publisher when an address is configured.
func NewPublisher(cfg config.RedisConfig) (shared.EventPublisher, func() error) {
	if cfg.Addr == "" {
		slog.Info("REDIS_ADDR not set, booking events are not published")
		return NopPublisher{}, func() error { return nil }
	}
	client := NewRedisClient(cfg)
	return NewStreamPublisher(client, cfg), client.Close
}
