package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("REDIS_ADDR", "")

	cfg := Load()
	if cfg.ServerPort != "8080" {
		t.Fatalf("expected default port, got %s", cfg.ServerPort)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("expected default redis addr, got %s", cfg.RedisAddr)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("expected :8080, got %s", cfg.Addr())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://user@host/db")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_SECRET", "supersecret")

	cfg := Load()
	if cfg.DBUrl != "postgres://user@host/db" {
		t.Fatalf("expected db override, got %s", cfg.DBUrl)
	}
	if cfg.Addr() != ":9090" {
		t.Fatalf("expected :9090, got %s", cfg.Addr())
	}
	if cfg.JWTSecret != "supersecret" {
		t.Fatalf("expected jwt override")
	}
}
