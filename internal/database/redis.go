package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClients keeps cooldown commands and progress pub/sub on separate
// connection pools so a subscriber never starves a cooldown check.
type RedisClients struct {
	Cooldown *redis.Client
	PubSub   *redis.Client
}

func NewRedisClients(redisURL string) (*RedisClients, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cooldownClient := redis.NewClient(opt)
	if err := cooldownClient.Ping(ctx).Err(); err != nil {
		cooldownClient.Close()
		return nil, fmt.Errorf("failed to ping Redis (cooldown): %w", err)
	}

	pubsubOpt := *opt
	pubsubClient := redis.NewClient(&pubsubOpt)
	if err := pubsubClient.Ping(ctx).Err(); err != nil {
		cooldownClient.Close()
		pubsubClient.Close()
		return nil, fmt.Errorf("failed to ping Redis (pubsub): %w", err)
	}

	return &RedisClients{
		Cooldown: cooldownClient,
		PubSub:   pubsubClient,
	}, nil
}

func (r *RedisClients) Close() {
	r.Cooldown.Close()
	r.PubSub.Close()
}
