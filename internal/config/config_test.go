package config

import (
	"errors"
	"testing"

	"taskly-be/internal/entities"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/taskly?sslmode=disable")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	for _, key := range []string{"PORT", "CLIENT_ORIGIN", "FRONTEND_URL", "REDIS_URL", "RATE_LIMIT_AUTH_BURST"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "5000" {
		t.Fatalf("expected default port 5000, got %q", cfg.Port)
	}
	if cfg.ClientOrigin != "*" {
		t.Fatalf("expected default origin *, got %q", cfg.ClientOrigin)
	}
	if cfg.RedisURL != "" {
		t.Fatalf("expected empty redis url, got %q", cfg.RedisURL)
	}
	if cfg.RateLimitAuthBurst != 10 {
		t.Fatalf("expected auth burst 10, got %d", cfg.RateLimitAuthBurst)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "8081")
	t.Setenv("CLIENT_ORIGIN", "https://app.example.com")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8081" {
		t.Fatalf("expected port 8081, got %q", cfg.Port)
	}
	if cfg.ClientOrigin != "https://app.example.com" {
		t.Fatalf("unexpected origin %q", cfg.ClientOrigin)
	}
	if cfg.RateLimitRPS != 2.5 {
		t.Fatalf("expected rps 2.5, got %v", cfg.RateLimitRPS)
	}
	if cfg.RateLimitBurst != 20 {
		t.Fatalf("expected invalid burst to fall back to 20, got %d", cfg.RateLimitBurst)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"missing jwt secret", "JWT_SECRET"},
		{"missing database url", "DATABASE_URL"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tc.unset, "")

			_, err := Load()
			if !errors.Is(err, entities.ErrConfig) {
				t.Fatalf("expected ErrConfig, got %v", err)
			}
		})
	}
}
