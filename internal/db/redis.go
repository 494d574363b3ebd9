package db

import (
	"github.com/garethjevans/GPXviz/internal/config"
	"github.com/redis/go-redis/v9"
)

// ConnectRedis returns the client holding editing sessions and the pub/sub
// bridge between instances. A nil client disables both.
func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}
