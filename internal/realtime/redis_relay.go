package realtime

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const BoardEventsChannel = "kanban:board_events"

// PubSub is the slice of the redis provider the relay uses.
type PubSub interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channels ...string) *redis.PubSub
}

// RedisRelay fans board_changed out across server instances. Each instance
// publishes to one channel and broadcasts to its own hub whatever it receives,
// its own publications included.
type RedisRelay struct {
	hub    *Hub
	pubsub PubSub
	logger *zap.SugaredLogger
}

func NewRedisRelay(hub *Hub, pubsub PubSub, logger *zap.Logger) *RedisRelay {
	return &RedisRelay{hub: hub, pubsub: pubsub, logger: logger.Sugar()}
}

// NotifyBoardChanged publishes the event and returns once Redis accepts it.
// Local clients are reached only when the message comes back through the
// subscription, which may be after the caller has written its HTTP response.
// If the publish fails the local hub is notified directly instead.
func (r *RedisRelay) NotifyBoardChanged(ctx context.Context) {
	if err := r.pubsub.Publish(context.WithoutCancel(ctx), BoardEventsChannel, EventBoardChanged); err != nil {
		r.logger.Errorw("Failed to publish board event, broadcasting locally", "error", err)
		r.hub.Broadcast()
	}
}

// Start subscribes, waits for Redis to confirm the subscription and then
// relays channel messages to the local hub until ctx is cancelled.
func (r *RedisRelay) Start(ctx context.Context) error {
	sub := r.pubsub.Subscribe(ctx, BoardEventsChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe %s: %w", BoardEventsChannel, err)
	}

	r.logger.Infow("Board event relay started", "channel", BoardEventsChannel)
	go r.relay(ctx, sub)
	return nil
}

func (r *RedisRelay) relay(ctx context.Context, sub *redis.PubSub) {
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Board event relay stopped")
			return
		case msg, ok := <-ch:
			if !ok {
				if ctx.Err() == nil {
					r.logger.Error("Board event subscription closed unexpectedly")
				}
				return
			}
			if msg.Payload != EventBoardChanged {
				r.logger.Warnw("Ignoring unknown board event", "payload", msg.Payload)
				continue
			}
			r.hub.Broadcast()
		}
	}
}
