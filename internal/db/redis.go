package db

import (
	"github.com/redis/go-redis/v9"

	"github.com/NikolayFrontendDeveloper/picChatServer/internal/config"
)

// ConnectRedis returns nil when no address is configured; the feed cache is
// optional and every caller tolerates a nil client.
func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}
