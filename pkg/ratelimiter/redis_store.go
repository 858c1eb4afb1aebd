package ratelimiter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// consumeScript mirrors refill() so every replica shares one bucket per key.
// Times are unix milliseconds supplied by the caller.
var consumeScript = redis.NewScript(`
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local interval = tonumber(ARGV[3])
local now = tonumber(ARGV[4])
local requested = tonumber(ARGV[5])
local ttl = tonumber(ARGV[6])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'refill')
local tokens = tonumber(state[1])
local last = tonumber(state[2])
if tokens == nil or last == nil then
  tokens = capacity
  last = now
end

local elapsed = now - last
if elapsed > 0 then
  local intervals = math.floor(elapsed / interval)
  local cap = math.floor(capacity / rate) + 1
  if intervals > cap then
    intervals = cap
  end
  if intervals > 0 then
    tokens = math.min(tokens + intervals * rate, capacity)
    last = now
  end
end

local remaining = tokens - requested
if remaining >= 0 then
  tokens = remaining
end
redis.call('HSET', KEYS[1], 'tokens', tokens, 'refill', last)
redis.call('PEXPIRE', KEYS[1], ttl)
return {remaining, last}
`)

// DefaultKeyPrefix namespaces rate limit keys in a shared Redis.
const DefaultKeyPrefix = "ratelimit:"

// RedisStore keeps buckets in Redis so limits hold across replicas.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	now    func() time.Time
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix sets the prefix prepended to every bucket key.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(rs *RedisStore) {
		rs.prefix = prefix
	}
}

// WithRedisClock overrides the time source used for refills.
func WithRedisClock(now func() time.Time) RedisStoreOption {
	return func(rs *RedisStore) {
		if now != nil {
			rs.now = now
		}
	}
}

// NewRedisStore creates a store backed by the given client.
func NewRedisStore(client redis.Cmdable, opts ...RedisStoreOption) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: nil redis client", ErrInvalidConfig)
	}

	rs := &RedisStore{
		client: client,
		prefix: DefaultKeyPrefix,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(rs)
	}

	return rs, nil
}

func (rs *RedisStore) ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (int, time.Time, error) {
	// Keep state around long enough for a full refill, then let Redis drop it.
	ttl := config.RefillInterval * time.Duration(config.Capacity/config.RefillRate+1)

	res, err := consumeScript.Run(ctx, rs.client, []string{rs.prefix + key},
		config.Capacity,
		config.RefillRate,
		config.RefillInterval.Milliseconds(),
		rs.now().UnixMilli(),
		tokens,
		max(ttl.Milliseconds(), 1),
	).Int64Slice()
	if err != nil {
		return 0, time.Time{}, errors.Join(ErrStoreUnavailable, err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("%w: unexpected script reply %v", ErrStoreUnavailable, res)
	}

	lastRefill := time.UnixMilli(res[1])
	return int(res[0]), lastRefill.Add(config.RefillInterval), nil
}

func (rs *RedisStore) Reset(ctx context.Context, key string) error {
	if err := rs.client.Del(ctx, rs.prefix+key).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
