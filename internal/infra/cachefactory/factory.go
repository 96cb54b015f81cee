// Package cachefactory builds the configured cache backend.
package cachefactory

import (
	"context"
	"fmt"
	"time"

	"github.com/dropDatabas3/authgate/internal/cache"
	"github.com/dropDatabas3/authgate/internal/cache/memory"
	"github.com/dropDatabas3/authgate/internal/cache/redis"
	"github.com/dropDatabas3/authgate/internal/config"
)

// New creates the cache named by cfg.Cache.Kind. The redis backend is pinged
// once so a bad address fails at startup rather than on first request.
func New(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	switch cfg.Cache.Kind {
	case "redis":
		r := redis.New(cfg.Cache.Redis.Addr, cfg.Cache.Redis.DB, cfg.Cache.Redis.Prefix)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := r.Ping(pingCtx); err != nil {
			return nil, fmt.Errorf("cachefactory: redis ping failed: %w", err)
		}
		return r, nil
	case "memory", "":
		ttl := 10 * time.Minute
		if cfg.Cache.Memory.DefaultTTL != "" {
			d, err := time.ParseDuration(cfg.Cache.Memory.DefaultTTL)
			if err != nil {
				return nil, fmt.Errorf("cachefactory: invalid memory default_ttl: %w", err)
			}
			ttl = d
		}
		return memory.New(ttl), nil
	default:
		return nil, fmt.Errorf("cachefactory: unknown cache kind %q", cfg.Cache.Kind)
	}
}
