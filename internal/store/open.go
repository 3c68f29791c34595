package store

import (
	"context"
	"fmt"

	"github.com/edvin/catalog/internal/config"
	"github.com/edvin/catalog/internal/db"
	"github.com/edvin/catalog/internal/metrics"
)

// Open builds the store selected by cfg.StoreDriver. The returned close
// function releases the underlying connection and is non-nil when err is nil.
func Open(ctx context.Context, cfg *config.Config) (ProductStore, func(), error) {
	switch cfg.StoreDriver {
	case "", config.DriverMemory:
		return NewMemoryStore(), func() {}, nil

	case config.DriverPostgres:
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		metrics.RegisterPgxPoolMetrics(pool)
		return NewPostgresStore(pool), pool.Close, nil

	case config.DriverMySQL:
		sqlDB, err := db.OpenMySQL(ctx, cfg.MySQLDSN)
		if err != nil {
			return nil, nil, err
		}
		return NewMySQLStore(sqlDB), func() { sqlDB.Close() }, nil

	case config.DriverRedis:
		client, err := db.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(client), func() { client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.StoreDriver)
	}
}
