package notifier

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/Silvador/romanian-forest-auction-sub000/internal/domain/service/auction"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// RedisPublisher pushes engine events over Redis pub/sub. Subscribers of
// `auction:{id}`, `feed:global` and `user:{id}` channels receive the JSON
// envelope as published.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, topic string, event auction.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := p.client.Publish(ctx, topic, payload).Err(); err != nil {
		return fmt.Errorf("redis.Publish: %w", err)
	}

	return nil
}
