package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// keyTTL outlives the UTC day the key belongs to.
const keyTTL = 25 * time.Hour

// RedisCounter shares counts across server instances.
type RedisCounter struct {
	client *redis.Client
}

// NewRedisClient connects to addr and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// NewRedisCounter wraps an existing client.
func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

var _ Counter = (*RedisCounter)(nil)

// releaseScript decrements a day counter without taking it below zero or
// recreating an expired key.
var releaseScript = redis.NewScript(`
local n = tonumber(redis.call("GET", KEYS[1]) or "0")
if n > 0 then
	return redis.call("DECR", KEYS[1])
end
return 0
`)

func (c *RedisCounter) Allow(ctx context.Context, source string, limit int, now time.Time) (bool, error) {
	key := dayKey(source, now)
	var incr *redis.IntCmd
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, keyTTL)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("quota incr: %w", err)
	}
	return incr.Val() <= int64(limit), nil
}

func (c *RedisCounter) Release(ctx context.Context, source string, now time.Time) error {
	if err := releaseScript.Run(ctx, c.client, []string{dayKey(source, now)}).Err(); err != nil {
		return fmt.Errorf("quota release: %w", err)
	}
	return nil
}
