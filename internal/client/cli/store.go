package cli

import (
	"context"
	"fmt"

	"github.com/eduroot/storefront/internal/client/config"
	"github.com/eduroot/storefront/internal/client/store"
	"github.com/eduroot/storefront/internal/filex"
	"github.com/redis/go-redis/v9"
)

// openStore opens the store selected by cfg.StoreDriver.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return store.NewMemoryStore(), nil

	case config.DriverRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("ping redis at %s: %w", cfg.RedisAddr, err)
		}
		return store.NewRedisStore(rdb, cfg.StoreNamespace), nil

	case config.DriverSQLite:
		if _, err := filex.EnsureParentDir(cfg.StorePath); err != nil {
			return nil, err
		}
		st, err := store.Open(ctx, cfg.StorePath)
		if err != nil {
			return nil, err
		}
		return st, nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
