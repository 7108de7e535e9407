package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultTTL      = 10 * time.Minute
	defaultURL      = "redis://localhost:6379/0"
	defaultLeaseTTL = 30 * time.Second
	probeTimeout    = 2 * time.Second
	scanBatch       = 100
)

var ErrUnavailable = errors.New("redis unavailable")

// Redis is a JSON cache in front of Postgres. When the server cannot be
// reached at startup it runs in bypass mode: reads miss, writes are dropped
// and every caller is granted a lease.
type Redis struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration

	warned atomic.Bool
}

// NewRedis parses url and probes the server once. Any failure yields a
// bypassing cache rather than an error.
func NewRedis(url string, ttl time.Duration, logger *zap.Logger) *Redis {
	r := &Redis{logger: logger, ttl: ttl}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.ttl <= 0 {
		r.ttl = defaultTTL
	}
	if url = strings.TrimSpace(url); url == "" {
		url = defaultURL
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		r.logger.Warn("invalid redis url, cache bypassed", zap.Error(err))
		return r
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		r.logger.Warn("redis unreachable, cache bypassed", zap.String("addr", opts.Addr), zap.Error(err))
		_ = client.Close()
		return r
	}
	r.client = client
	return r
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

// degrade logs the first runtime error only; later failures are returned quietly.
func (r *Redis) degrade(err error) error {
	if r.warned.CompareAndSwap(false, true) {
		r.logger.Warn("redis error, serving from database", zap.Error(err))
	}
	return err
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.isUnavailable() {
		return ErrUnavailable
	}
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	if r.isUnavailable() {
		return nil
	}
	return r.client.Close()
}

// GetJSON decodes key into out and reports whether it was a hit.
func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, r.degrade(err)
	case len(b) == 0:
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value under key; a non-positive ttl uses the cache default.
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.isUnavailable() {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		return r.degrade(err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if r.isUnavailable() || len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return r.degrade(err)
	}
	return nil
}

// DeleteByPattern scans for matching keys and unlinks them in batches.
func (r *Redis) DeleteByPattern(ctx context.Context, pattern string) error {
	if r.isUnavailable() {
		return nil
	}
	if pattern = strings.TrimSpace(pattern); pattern == "" {
		return nil
	}

	batch := make([]string, 0, scanBatch)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		err := r.client.Unlink(ctx, batch...).Err()
		batch = batch[:0]
		return err
	}

	iter := r.client.Scan(ctx, 0, pattern, scanBatch).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatch {
			if err := flush(); err != nil {
				return r.degrade(err)
			}
		}
	}
	if err := iter.Err(); err != nil {
		return r.degrade(err)
	}
	if err := flush(); err != nil {
		return r.degrade(err)
	}
	return nil
}

// SetIfNotExists takes a lease on key. In bypass mode every caller gets the
// lease, which matches a single instance deployment.
func (r *Redis) SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if r.isUnavailable() {
		return true, nil
	}
	if ttl <= 0 {
		ttl = defaultLeaseTTL
	}
	ok, err := r.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, r.degrade(err)
	}
	return ok, nil
}
