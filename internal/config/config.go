package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string
	RoutesFile  string
	SessionTTL  time.Duration

	RateLimitPerMinute       int
	RateLimitBurst           int
	TenantRateLimitPerMinute int
	TenantRateLimitBurst     int
}

func Load() Config {
	port := os.Getenv("RBAC_PORT")
	if port == "" {
		port = "8082"
	}

	return Config{
		Port:        port,
		DatabaseURL: os.Getenv("DB_DSN"),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
		RoutesFile:  os.Getenv("RBAC_ROUTES_FILE"),
		SessionTTL:  readDuration("RBAC_SESSION_TTL", 8*time.Hour),

		RateLimitPerMinute:       readInt("RBAC_RATE_LIMIT_PER_MIN", 120),
		RateLimitBurst:           readInt("RBAC_RATE_LIMIT_BURST", 30),
		TenantRateLimitPerMinute: readInt("RBAC_TENANT_RATE_LIMIT_PER_MIN", 300),
		TenantRateLimitBurst:     readInt("RBAC_TENANT_RATE_LIMIT_BURST", 60),
	}
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value < 0 {
		return fallback
	}
	return value
}
