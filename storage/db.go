package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Driver names accepted by OpenBackend
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// BackendOptions configures OpenBackend
type BackendOptions struct {
	Path string
	TTL  time.Duration

	// Redis is used by the redis driver. When nil a client is dialed from
	// RedisAddr, RedisPassword and RedisDB.
	Redis         *redis.Client
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// OpenBackend opens the medium named by driver
func OpenBackend(driver string, opts BackendOptions) (Backend, error) {
	switch driver {
	case DriverMemory:
		return NewMemoryBackend(opts.TTL), nil
	case DriverFile:
		return NewFileBackend(opts.Path)
	case DriverBolt:
		return NewBoltBackend(opts.Path)
	case DriverSQLite:
		return NewSQLiteBackend(opts.Path)
	case DriverRedis:
		rdb := opts.Redis
		if rdb == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			var err error
			rdb, err = NewRedisClient(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
			if err != nil {
				return nil, err
			}
		}
		return NewRedisBackend(rdb, opts.RedisPrefix, opts.TTL), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
