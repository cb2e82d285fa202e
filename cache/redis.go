package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Keksclan/goRawrLambda/composer"
	"github.com/Keksclan/goRawrLambda/retry"
	"github.com/redis/go-redis/v9"
)

// Redis is a Redis-backed response store. All operations fail soft: if Redis
// is unavailable, methods report a miss (or discard the write) instead of
// surfacing the error to the caller. Transient failures are retried with
// back-off first.
type Redis struct {
	rdb   redis.UniversalClient
	retry retry.Config
}

// DefaultRetry retries transient network failures and busy-server replies
// twice with a short back-off.
func DefaultRetry() retry.Config {
	return retry.Config{
		MaxAttempts: 3,
		BaseDelay:   10 * time.Millisecond,
		MaxDelay:    100 * time.Millisecond,
		Jitter:      0.2,
		Retryable:   retry.Any(retry.Transient, serverBusy),
	}
}

var busyPrefixes = []string{"LOADING ", "READONLY ", "TRYAGAIN ", "CLUSTERDOWN ", "MASTERDOWN "}

// serverBusy reports Redis error replies that ask the client to try again.
func serverBusy(err error) bool {
	var re redis.Error
	if !errors.As(err, &re) {
		return false
	}
	msg := re.Error()
	for _, p := range busyPrefixes {
		if strings.HasPrefix(msg, p) {
			return true
		}
	}
	return false
}

// NewRedis connects a store to the Redis server at addr.
func NewRedis(addr, password string, db int) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisClient(rdb)
}

// NewRedisClient wraps an existing client, e.g. a cluster or sentinel client.
func NewRedisClient(rdb redis.UniversalClient) *Redis {
	return &Redis{rdb: rdb, retry: DefaultRetry()}
}

// WithRetry replaces the retry policy and returns r.
func (r *Redis) WithRetry(cfg retry.Config) *Redis {
	r.retry = cfg
	return r
}

// Get retrieves the response stored under key. It returns (nil, false, nil)
// on a miss, when Redis is unreachable, or when the entry cannot be decoded.
func (r *Redis) Get(ctx context.Context, key string) (*composer.Response, bool, error) {
	raw, err := retry.Do(ctx, r.retry, func(ctx context.Context) ([]byte, error) {
		return r.rdb.Get(ctx, key).Bytes()
	})
	if err != nil {
		// redis.Nil is a plain miss; anything else fails soft.
		return nil, false, nil
	}
	var resp composer.Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false, nil
	}
	return &resp, true, nil
}

// Set stores resp under key with the given TTL. Errors are discarded.
func (r *Redis) Set(ctx context.Context, key string, resp *composer.Response, ttl time.Duration) error {
	if resp == nil {
		return nil
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return nil
	}
	_, _ = retry.Do(ctx, r.retry, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, r.rdb.Set(ctx, key, raw, ttl).Err()
	})
	return nil
}

// Ping checks the Redis connection.
func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Close closes the underlying Redis client.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
