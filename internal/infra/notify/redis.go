package notify

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/mester-scheduler/internal/events"
)

// RedisPublisher faz PUBLISH num canal único; o tipo vai no corpo JSON.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(url, channel string) (*RedisPublisher, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisPublisher{client: redis.NewClient(opts), channel: channel}, nil
}

var _ events.Publisher = (*RedisPublisher)(nil)

func (p *RedisPublisher) Publish(ctx context.Context, ev events.Event) error {
	payload, err := encode(ev)
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
