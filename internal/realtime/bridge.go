package realtime

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisBridge relays broadcast events through a Redis pub/sub channel so
// that hubs on every instance see writes handled by any of them. With the
// bridge in front, the local hub only ever broadcasts what arrives from the
// channel, which keeps single- and multi-instance delivery identical.
type RedisBridge struct {
	client  *redis.Client
	channel string
	hub     *Hub
	logger  *zap.Logger
}

// NewRedisBridge constructs the bridge.
func NewRedisBridge(client *redis.Client, channel string, hub *Hub, logger *zap.Logger) *RedisBridge {
	return &RedisBridge{client: client, channel: channel, hub: hub, logger: logger}
}

// Broadcast implements Broadcaster by publishing to the Redis channel.
// Publish failures are logged and swallowed: fan-out is a best-effort
// UI-refresh signal, never a correctness dependency.
func (b *RedisBridge) Broadcast(event string, payload any) {
	raw, err := json.Marshal(Envelope{Event: event, Payload: payload})
	if err != nil {
		b.logger.Error("marshal realtime event", zap.Error(err))
		return
	}
	if err := b.client.Publish(context.Background(), b.channel, raw).Err(); err != nil {
		b.logger.Warn("publish realtime event", zap.String("event", event), zap.Error(err))
	}
}

// Listen subscribes to the channel and forwards events to the local hub
// until ctx is cancelled.
func (b *RedisBridge) Listen(ctx context.Context) {
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env Envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				b.logger.Warn("unmarshal realtime event", zap.Error(err))
				continue
			}
			b.hub.Broadcast(env.Event, env.Payload)
		}
	}
}
