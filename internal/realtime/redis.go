package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"auction-hub/internal/metrics"
	"auction-hub/utils"

	"github.com/redis/go-redis/v9"
)

// envelope is what travels over the Redis channel
type envelope struct {
	Room  string          `json:"room"`
	Frame json.RawMessage `json:"frame"`
}

// RedisBroadcaster fans events out through a Redis channel so that every
// instance subscribed with Run delivers them to its own connections.
type RedisBroadcaster struct {
	rdb     *redis.Client
	channel string
	hub     *Hub
}

// NewRedisBroadcaster creates a broadcaster publishing on channel and delivering into hub.
func NewRedisBroadcaster(rdb *redis.Client, channel string, hub *Hub) *RedisBroadcaster {
	return &RedisBroadcaster{rdb: rdb, channel: channel, hub: hub}
}

// Emit publishes ev for room on the Redis channel.
func (b *RedisBroadcaster) Emit(ctx context.Context, room string, ev Event) error {
	frame, err := ev.Encode()
	if err != nil {
		return err
	}
	payload, err := json.Marshal(envelope{Room: room, Frame: frame})
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}
	if err := b.rdb.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s to %s: %w", ev.Name, room, err)
	}
	metrics.BroadcastEventsTotal.WithLabelValues(ev.Name).Inc()
	return nil
}

// Run subscribes to the channel and delivers every message to the local hub
// until ctx is cancelled.
func (b *RedisBroadcaster) Run(ctx context.Context) error {
	sub := b.rdb.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.channel, err)
	}
	utils.Info("broadcast bridge subscribed", map[string]any{"channel": b.channel})

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("broadcast subscription closed")
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil || env.Room == "" {
				utils.Warn("malformed broadcast message", map[string]any{"channel": b.channel})
				continue
			}
			b.hub.Publish(env.Room, env.Frame)
		}
	}
}

// RunWithRetry keeps Run alive until ctx is cancelled, waiting between
// attempts with a doubling delay capped at maxBackoff.
func (b *RedisBroadcaster) RunWithRetry(ctx context.Context, minBackoff, maxBackoff time.Duration) {
	retry(ctx, b.Run, minBackoff, maxBackoff)
}

func retry(ctx context.Context, run func(context.Context) error, minBackoff, maxBackoff time.Duration) {
	delay := minBackoff
	for {
		started := time.Now()
		err := run(ctx)
		if ctx.Err() != nil {
			return
		}
		// a run that stayed up for a while starts the backoff over
		if time.Since(started) > maxBackoff {
			delay = minBackoff
		}
		fields := map[string]any{"retry_in": delay.String()}
		if err != nil {
			fields["error"] = err.Error()
		}
		utils.Warn("broadcast bridge stopped, restarting", fields)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		delay = min(delay*2, maxBackoff)
	}
}
