package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultCooldown is the minimum spacing between incremental generations
// for the same video and operation.
const DefaultCooldown = 10 * time.Second

// Cooldown admits at most one call per key per window. Allow returns zero
// when the call is admitted, otherwise the time left until it would be.
type Cooldown interface {
	Allow(ctx context.Context, key string) (time.Duration, error)
}

// CooldownKey builds the key for one operation on one video.
func CooldownKey(videoID, operation string) string {
	return videoID + ":" + operation
}

// MemoryCooldown is a process-local Cooldown.
type MemoryCooldown struct {
	mu     sync.Mutex
	window time.Duration
	now    Clock
	last   map[string]time.Time
}

func NewMemoryCooldown(window time.Duration, clock Clock) *MemoryCooldown {
	if clock == nil {
		clock = time.Now
	}
	if window <= 0 {
		window = DefaultCooldown
	}
	return &MemoryCooldown{window: window, now: clock, last: make(map[string]time.Time)}
}

func (c *MemoryCooldown) Allow(_ context.Context, key string) (time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if last, ok := c.last[key]; ok {
		elapsed := now.Sub(last)
		if elapsed < 0 {
			// The wall clock stepped back. The stored timestamp stays put.
			return c.window, nil
		}
		if elapsed < c.window {
			return c.window - elapsed, nil
		}
	}
	c.last[key] = now
	return 0, nil
}

// Sweep forgets keys whose window has passed.
func (c *MemoryCooldown) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, last := range c.last {
		if now.Sub(last) >= c.window {
			delete(c.last, key)
			removed++
		}
	}
	return removed
}

func (c *MemoryCooldown) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.last)
}

// RedisCooldown shares cooldowns between replicas. The key lives for one
// window; its remaining TTL is the wait.
type RedisCooldown struct {
	client *redis.Client
	window time.Duration
	prefix string
}

func NewRedisCooldown(client *redis.Client, window time.Duration) *RedisCooldown {
	if window <= 0 {
		window = DefaultCooldown
	}
	return &RedisCooldown{client: client, window: window, prefix: "svl:cooldown:"}
}

func (c *RedisCooldown) Allow(ctx context.Context, key string) (time.Duration, error) {
	k := c.prefix + key
	ok, err := c.client.SetNX(ctx, k, time.Now().UnixMilli(), c.window).Result()
	if err != nil {
		return 0, fmt.Errorf("cooldown set: %w", err)
	}
	if ok {
		return 0, nil
	}

	ttl, err := c.client.PTTL(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("cooldown ttl: %w", err)
	}
	// -2 means the key expired between the two calls, -1 that it has no TTL.
	if ttl <= 0 {
		if ttl == -1 {
			c.client.PExpire(ctx, k, c.window)
			return c.window, nil
		}
		return c.Allow(ctx, key)
	}
	return ttl, nil
}

// WaitSeconds rounds a wait up to whole seconds, so a positive wait is never
// reported as zero.
func WaitSeconds(wait time.Duration) int {
	if wait <= 0 {
		return 0
	}
	return int((wait + time.Second - 1) / time.Second)
}
