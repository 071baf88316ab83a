package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const relayPublishTimeout = 2 * time.Second

// relayMessage is the Redis payload. Audience travels alongside the event
// because Event does not serialize it for clients.
type relayMessage struct {
	Event    Event  `json:"event"`
	Audience string `json:"audience,omitempty"`
}

// RedisRelay shares events between server instances over Redis Pub/Sub.
// Publish sends to the channel; Run receives from it and hands each event to
// the local publisher, so every instance serves its own subscribers.
type RedisRelay struct {
	client  *redis.Client
	channel string
	local   Publisher
	log     *slog.Logger

	wg sync.WaitGroup
}

// NewRedisRelay creates a relay feeding local with everything seen on channel.
func NewRedisRelay(log *slog.Logger, client *redis.Client, channel string, local Publisher) *RedisRelay {
	return &RedisRelay{
		client:  client,
		channel: channel,
		local:   local,
		log:     log.With("component", "event_relay"),
	}
}

// Publish sends e to Redis on a detached goroutine. Failures are logged.
func (r *RedisRelay) Publish(ctx context.Context, e Event) {
	payload, err := json.Marshal(relayMessage{Event: e, Audience: e.Audience})
	if err != nil {
		r.log.WarnContext(ctx, "encode relay event", slog.String("error", err.Error()))
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), relayPublishTimeout)
		defer cancel()

		if err := r.client.Publish(pubCtx, r.channel, payload).Err(); err != nil {
			r.log.WarnContext(pubCtx, "relay publish failed",
				slog.String("type", e.Type.String()),
				slog.String("error", err.Error()),
			)
		}
	}()
}

// Wait blocks until in-flight publishes finish.
func (r *RedisRelay) Wait() {
	r.wg.Wait()
}

// Run subscribes to the channel until ctx is cancelled. It returns an error
// only when the initial subscription fails.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}
	r.log.InfoContext(ctx, "event relay subscribed", slog.String("channel", r.channel))

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			var m relayMessage
			if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
				r.log.WarnContext(ctx, "decode relay event", slog.String("error", err.Error()))
				continue
			}
			m.Event.Audience = m.Audience
			r.local.Publish(ctx, m.Event)
		}
	}
}
