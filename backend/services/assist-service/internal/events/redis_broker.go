package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"everse/backend/services/assist-service/internal/models"
)

// DefaultChannel is the pub/sub channel shared by every assist-service replica.
const DefaultChannel = "emergency:events"

// RedisBroker implements Broker over Redis pub/sub so all replicas see every event.
type RedisBroker struct {
	client  *redis.Client
	channel string
	logger  *zap.Logger
}

// NewRedisBroker returns broker publishing on channel.
func NewRedisBroker(client *redis.Client, channel string, logger *zap.Logger) *RedisBroker {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisBroker{client: client, channel: channel, logger: logger}
}

// Publish sends evt as JSON.
func (b *RedisBroker) Publish(ctx context.Context, evt models.Event) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, b.channel, data).Err()
}

// Subscribe confirms the subscription before returning.
func (b *RedisBroker) Subscribe(ctx context.Context) (<-chan models.Event, error) {
	ps := b.client.Subscribe(ctx, b.channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("events: subscribe %s: %w", b.channel, err)
	}

	ch := make(chan models.Event, subscriberBuffer)
	go func() {
		defer close(ch)
		defer ps.Close()

		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var evt models.Event
				if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
					b.logger.Warn("dropping malformed event", zap.Error(err))
					continue
				}
				select {
				case ch <- evt:
				default:
					b.logger.Warn("dropping event, subscriber buffer full", zap.String("request_id", evt.Request.ID))
				}
			}
		}
	}()
	return ch, nil
}
