package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a sliding window limiter shared by every instance that
// points at the same Redis. Each key is a sorted set of request members
// scored by arrival time in milliseconds.
type RedisLimiter struct {
	client *redis.Client
	logger *slog.Logger
	limit  int
	window time.Duration
}

// Removes expired entries, then admits the request if the window still has room.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local member = ARGV[4]
local ttl = tonumber(ARGV[5])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)

local count = redis.call('ZCARD', key)

if count < limit then
    redis.call('ZADD', key, now, member)
    redis.call('EXPIRE', key, ttl)
    return 1
else
    return 0
end
`)

// NewRedisLimiter allows limit requests per window for each key. A limit of
// zero or less disables limiting.
func NewRedisLimiter(client *redis.Client, limit int, window time.Duration, logger *slog.Logger) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		logger: logger,
		limit:  limit,
		window: window,
	}
}

func rlKey(key string) string {
	return fmt.Sprintf("rl:webhook:%s", key)
}

// Allow fails open when Redis is unreachable.
func (rl *RedisLimiter) Allow(ctx context.Context, key string) bool {
	if rl.limit <= 0 {
		return true
	}

	now := time.Now().UnixMilli()
	result, err := slidingWindowScript.Run(ctx, rl.client, []string{rlKey(key)},
		now, rl.window.Milliseconds(), rl.limit, uuid.NewString(), int64(rl.window/time.Second)+1,
	).Int64()
	if err != nil {
		rl.logger.Error("rate limiter script failed", "error", err, "key", key)
		return true
	}

	if result == 0 {
		rl.logger.Debug("rate limited", "key", key, "limit", rl.limit)
		return false
	}
	return true
}
