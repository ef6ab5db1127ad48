package broker

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisMessage is one scan job leased from the stream's consumer group.
// Ack retires the lease. Nack puts a fresh copy of the job back on the
// stream before retiring the original, so another consumer picks it up.
type RedisMessage struct {
	stream string
	group  string
	id     string
	body   string
	redis  *redis.Client
}

func (m *RedisMessage) Body() string {
	return m.body
}

func (m *RedisMessage) Ack() error {
	return m.redis.XAck(context.Background(), m.stream, m.group, m.id).Err()
}

func (m *RedisMessage) Nack() error {
	ctx := context.Background()

	// Re-add before acking: if the re-add fails the original stays pending
	// instead of vanishing.
	err := m.redis.XAdd(ctx, &redis.XAddArgs{
		Stream: m.stream,
		Values: map[string]any{"body": m.body},
	}).Err()
	if err != nil {
		return err
	}

	return m.redis.XAck(ctx, m.stream, m.group, m.id).Err()
}
