package config

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_TOKEN_TTL_MINUTES", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("SERVER_PORT", "")

	cfg := Load()

	if cfg.AdminTokenTTL != 2*time.Hour {
		t.Errorf("AdminTokenTTL = %v, want 2h", cfg.AdminTokenTTL)
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("BcryptCost = %d, want 12", cfg.BcryptCost)
	}
	if cfg.ServerPort != "3000" {
		t.Errorf("ServerPort = %q, want 3000", cfg.ServerPort)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ADMIN_TOKEN_TTL_MINUTES", "30")
	t.Setenv("MAX_DB_CONNS", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg := Load()

	if cfg.AdminTokenTTL != 30*time.Minute {
		t.Errorf("AdminTokenTTL = %v, want 30m", cfg.AdminTokenTTL)
	}
	if cfg.MaxDBConns != 10 {
		t.Errorf("MaxDBConns = %d, want fallback 10", cfg.MaxDBConns)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
}

func TestRateLimitKey(t *testing.T) {
	got := CacheKey.RateLimitKey("login", "10.0.0.1", 42)
	if got != "ratelimit:login:10.0.0.1:42" {
		t.Errorf("RateLimitKey = %q", got)
	}
}

func TestJWTSecretHasNoDefault(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg := Load()

	if cfg.JWTSecret != "" {
		t.Fatalf("JWTSecret = %q, want empty when unset", cfg.JWTSecret)
	}
	if err := cfg.Validate(); !errors.Is(err, ErrJWTSecretMissing) {
		t.Fatalf("Validate() = %v, want ErrJWTSecretMissing", err)
	}

	t.Setenv("JWT_SECRET", "a-real-secret")
	if err := Load().Validate(); err != nil {
		t.Fatalf("Validate() with secret = %v", err)
	}
}
