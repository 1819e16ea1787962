package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	MongoURL      string        `mapstructure:"MONGO_URL"`
	MongoDatabase string        `mapstructure:"MONGO_DATABASE"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	FeedCacheTTL  time.Duration `mapstructure:"FEED_CACHE_TTL"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":3000")
	viper.SetDefault("MONGO_URL", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "social")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("FEED_CACHE_TTL", "30s")

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
