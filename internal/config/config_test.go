package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.ServerPort != ":3000" {
		t.Fatalf("expected default server port, got %q", cfg.ServerPort)
	}
	if cfg.MongoURL != "mongodb://localhost:27017" {
		t.Fatalf("expected default mongo url, got %q", cfg.MongoURL)
	}
	if cfg.MongoDatabase != "social" {
		t.Fatalf("expected default database, got %q", cfg.MongoDatabase)
	}
	if cfg.RedisAddr != "" {
		t.Fatalf("expected redis disabled by default, got %q", cfg.RedisAddr)
	}
	if cfg.FeedCacheTTL != 30*time.Second {
		t.Fatalf("expected default cache ttl, got %v", cfg.FeedCacheTTL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", ":9000")
	t.Setenv("MONGO_URL", "mongodb://mongo:27017")
	t.Setenv("MONGO_DATABASE", "staging")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_PASSWORD", "secret")
	t.Setenv("FEED_CACHE_TTL", "2m")

	cfg := Load()
	if cfg.ServerPort != ":9000" {
		t.Fatalf("expected override port")
	}
	if cfg.MongoURL != "mongodb://mongo:27017" {
		t.Fatalf("expected override mongo url")
	}
	if cfg.MongoDatabase != "staging" {
		t.Fatalf("expected override database")
	}
	if cfg.RedisAddr != "redis:6379" || cfg.RedisPassword != "secret" {
		t.Fatalf("expected override redis settings")
	}
	if cfg.FeedCacheTTL != 2*time.Minute {
		t.Fatalf("expected override ttl, got %v", cfg.FeedCacheTTL)
	}
}
