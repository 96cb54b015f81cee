// Package redis implements the cache on go-redis.
package redis

import (
	"context"
	"time"

	"github.com/dropDatabas3/authgate/internal/observability/logger"
	rdb "github.com/redis/go-redis/v9"
)

type Cache struct {
	c      *rdb.Client
	prefix string
}

// New creates a Redis-backed cache. prefix, when set, namespaces all keys.
func New(addr string, db int, prefix string) *Cache {
	return &Cache{c: rdb.NewClient(&rdb.Options{Addr: addr, DB: db}), prefix: prefix}
}

// Ping verifies the connection. Called once at startup.
func (r *Cache) Ping(ctx context.Context) error {
	return r.c.Ping(ctx).Err()
}

func (r *Cache) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

func (r *Cache) Get(k string) ([]byte, bool) {
	b, err := r.c.Get(context.Background(), r.key(k)).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (r *Cache) Set(k string, v []byte, ttl time.Duration) {
	if err := r.c.Set(context.Background(), r.key(k), v, ttl).Err(); err != nil {
		logger.L().Warn("cache set failed", logger.Component("cache.redis"), logger.Err(err))
	}
}

func (r *Cache) Delete(k string) {
	if err := r.c.Del(context.Background(), r.key(k)).Err(); err != nil {
		logger.L().Warn("cache delete failed", logger.Component("cache.redis"), logger.Err(err))
	}
}
