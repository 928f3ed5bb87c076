// Package storage selects and opens the configured item store engine.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	redisad "menu_agent/internal/adapters/redis"
	"menu_agent/internal/domain"
	"menu_agent/internal/shared"
	boltstore "menu_agent/internal/storage/bolt"
	"menu_agent/internal/storage/memory"
	"menu_agent/internal/storage/sqlstore"
)

// Open returns the repository for cfg.StoreDriver and a close func.
func Open(ctx context.Context, cfg shared.Config) (domain.CatalogRepository, func() error, error) {
	switch cfg.StoreDriver {
	case "memory":
		return memory.New(), func() error { return nil }, nil

	case "bolt":
		if dir := filepath.Dir(cfg.BoltPath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create bolt dir: %w", err)
			}
		}
		s, err := boltstore.NewStore(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("path", cfg.BoltPath).Msg("bolt store opened")
		return s, s.Close, nil

	case sqlstore.DriverMySQL, sqlstore.DriverPostgres:
		dsn := cfg.MySQLDSN
		if cfg.StoreDriver == sqlstore.DriverPostgres {
			dsn = cfg.PostgresDSN
		}
		db, err := sql.Open(cfg.StoreDriver, dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("sql.Open: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("db ping: %w", err)
		}
		log.Info().Str("driver", cfg.StoreDriver).Msg("database connection ok")

		repo, err := sqlstore.New(db, cfg.StoreDriver)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		if cfg.AutoMigrate {
			if err := repo.Migrate(ctx); err != nil {
				db.Close()
				return nil, nil, err
			}
		}
		return repo, db.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// OpenCache returns the snapshot cache for cfg.CacheDriver. With "none" it
// returns a nil cache, which the app services treat as always-miss.
func OpenCache(ctx context.Context, cfg shared.Config) (domain.Cache, func() error, error) {
	switch cfg.CacheDriver {
	case "", "none":
		return nil, func() error { return nil }, nil
	case "redis":
		c := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := c.Ping(ctx); err != nil {
			c.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		log.Info().Str("addr", cfg.RedisAddr).Msg("redis cache ok")
		return c, c.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown cache driver %q", cfg.CacheDriver)
}
