package config

import (
	"github.com/redis/go-redis/v9"
)

// NewRedis returns a client for cfg, or nil when no address is configured.
func NewRedis(cfg RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Pass,
		DB:       cfg.DB,
	})
}
