package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"recruit_messaging/pkg/logger"
)

const (
	redisValueKey = "%s:v:%s"
	redisIndexKey = "%s:index"
)

// Redis stores entries as plain strings with a TTL. A sorted set indexed by
// write time bounds the entry count: after each write the oldest entries
// beyond MaxEntries are deleted.
type Redis struct {
	rdb    *redis.Client
	prefix string
	opts   Options
	log    logger.Logger
	now    func() time.Time
}

var _ Cache = (*Redis)(nil)

func NewRedis(rdb *redis.Client, prefix string, opts Options, log logger.Logger) *Redis {
	return &Redis{
		rdb:    rdb,
		prefix: prefix,
		opts:   opts.withDefaults(),
		log:    log,
		now:    time.Now,
	}
}

func (r *Redis) valueKey(key string) string {
	return fmt.Sprintf(redisValueKey, r.prefix, key)
}

func (r *Redis) indexKey() string {
	return fmt.Sprintf(redisIndexKey, r.prefix)
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	value, err := r.rdb.Get(ctx, r.valueKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	if err != nil {
		r.log.Error("Failed to read cache entry", "key", key, "error", err)
		return "", fmt.Errorf("cache get: %w", err)
	}
	return value, nil
}

func (r *Redis) Set(ctx context.Context, key string, value string) error {
	now := r.now()
	full := r.valueKey(key)
	index := r.indexKey()

	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, full, value, r.opts.TTL)
		p.ZAdd(ctx, index, redis.Z{Score: float64(now.UnixMilli()), Member: full})
		p.ZRemRangeByScore(ctx, index, "-inf", fmt.Sprintf("(%d", now.Add(-r.opts.TTL).UnixMilli()))
		return nil
	})
	if err != nil {
		r.log.Error("Failed to write cache entry", "key", key, "error", err)
		return fmt.Errorf("cache set: %w", err)
	}

	return r.evictOverflow(ctx)
}

func (r *Redis) evictOverflow(ctx context.Context) error {
	index := r.indexKey()
	count, err := r.rdb.ZCard(ctx, index).Result()
	if err != nil {
		return fmt.Errorf("cache size: %w", err)
	}
	overflow := count - int64(r.opts.MaxEntries)
	if overflow <= 0 {
		return nil
	}

	victims, err := r.rdb.ZRange(ctx, index, 0, overflow-1).Result()
	if err != nil {
		return fmt.Errorf("cache eviction scan: %w", err)
	}
	if len(victims) == 0 {
		return nil
	}
	members := make([]interface{}, len(victims))
	for i, v := range victims {
		members[i] = v
	}

	_, err = r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, victims...)
		p.ZRem(ctx, index, members...)
		return nil
	})
	if err != nil {
		r.log.Warn("Failed to evict cache entries", "count", len(victims), "error", err)
		return fmt.Errorf("cache evict: %w", err)
	}
	return nil
}

func (r *Redis) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	members := make([]interface{}, len(keys))
	for i, k := range keys {
		full[i] = r.valueKey(k)
		members[i] = full[i]
	}

	_, err := r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, full...)
		p.ZRem(ctx, r.indexKey(), members...)
		return nil
	})
	if err != nil {
		r.log.Error("Failed to invalidate cache entries", "keys", keys, "error", err)
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
