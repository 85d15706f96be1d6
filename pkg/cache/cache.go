// Package cache keeps collected facts between runs. Parsing all
// configuration backups takes a while, so reports read the facts of an
// earlier run if these are not older than a configured time to live.
package cache

import (
	"context"
	"time"

	"github.com/cfgfacts/cfgfacts/pkg/errlog"
	"github.com/cfgfacts/cfgfacts/pkg/program"
)

// Store holds JSON encoded values with a time to live.
type Store interface {
	// Load decodes the value of key into v. It returns false if no
	// fresh value is stored.
	Load(ctx context.Context, key string, v any) (bool, error)
	Save(ctx context.Context, key string, v any) error
}

// Open returns the store configured in cfg: a Redis server if key
// redis_addr is set, JSON files in cache_dir otherwise.
func Open(cfg *program.Config) Store {
	ttl := time.Duration(cfg.CacheTTL) * time.Second
	if cfg.RedisAddr != "" {
		return NewRedisStore(cfg.RedisAddr, ttl)
	}
	return &FileStore{Dir: cfg.CacheDir, TTL: ttl}
}

// Fetch returns the value stored at key. If none is stored or refresh
// is set, the value is computed by build. The computed value is saved
// if save is set. Errors of the store are only warnings, the value is
// computed then.
func Fetch[T any](ctx context.Context, s Store, key string, refresh, save bool,
	build func() (T, error)) (T, error) {

	var v T
	if !refresh {
		found, err := s.Load(ctx, key, &v)
		if err != nil {
			errlog.Warning("Ignoring cached %s: %v", key, err)
		} else if found {
			return v, nil
		}
	}
	v, err := build()
	if err != nil {
		return v, err
	}
	if save {
		if err := s.Save(ctx, key, v); err != nil {
			errlog.Warning("Can't cache %s: %v", key, err)
		}
	}
	return v, nil
}
