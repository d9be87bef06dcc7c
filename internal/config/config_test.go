package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_RPS", "")
		t.Setenv("JWT_EXPIRES_IN", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.RateLimitRPS != 10 {
			t.Errorf("expected default rps 10, got %v", cfg.RateLimitRPS)
		}
		if cfg.JWTExpirationDur != 24*time.Hour {
			t.Errorf("expected 24h expiry, got %v", cfg.JWTExpirationDur)
		}
	})

	t.Run("invalid_values_fall_back", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_RPS", "fast")
		t.Setenv("RATE_LIMIT_BURST", "-1")
		t.Setenv("JWT_EXPIRES_IN", "forever")

		cfg, _ := Load()
		if cfg.RateLimitRPS != 10 || cfg.RateLimitBurst != 30 {
			t.Errorf("expected fallbacks 10/30, got %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
		}
		if cfg.JWTExpirationDur != 24*time.Hour {
			t.Errorf("expected 24h expiry, got %v", cfg.JWTExpirationDur)
		}
	})

	t.Run("cors_origins_list", func(t *testing.T) {
		t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")

		cfg, _ := Load()
		if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
			t.Errorf("unexpected origins: %v", cfg.CORSOrigins)
		}
	})
}
