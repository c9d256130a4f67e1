package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("RBAC_PORT", "")
	t.Setenv("RBAC_SESSION_TTL", "")
	t.Setenv("RBAC_RATE_LIMIT_PER_MIN", "")

	cfg := Load()
	if cfg.Port != "8082" {
		t.Errorf("expected default port 8082, got %s", cfg.Port)
	}
	if cfg.SessionTTL != 8*time.Hour {
		t.Errorf("expected default session TTL 8h, got %s", cfg.SessionTTL)
	}
	if cfg.RateLimitPerMinute != 120 {
		t.Errorf("expected default rate limit 120, got %d", cfg.RateLimitPerMinute)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("RBAC_PORT", "9000")
	t.Setenv("RBAC_SESSION_TTL", "30m")
	t.Setenv("RBAC_RATE_LIMIT_PER_MIN", "10")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Port)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("expected 30m TTL, got %s", cfg.SessionTTL)
	}
	if cfg.RateLimitPerMinute != 10 {
		t.Errorf("expected rate limit 10, got %d", cfg.RateLimitPerMinute)
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("RBAC_SESSION_TTL", "not-a-duration")
	t.Setenv("RBAC_RATE_LIMIT_PER_MIN", "many")

	cfg := Load()
	if cfg.SessionTTL != 8*time.Hour {
		t.Errorf("invalid TTL should fall back to 8h, got %s", cfg.SessionTTL)
	}
	if cfg.RateLimitPerMinute != 120 {
		t.Errorf("invalid rate limit should fall back to 120, got %d", cfg.RateLimitPerMinute)
	}
}
