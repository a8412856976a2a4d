package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv(ConfigPathEnv, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error for explicit missing file, got cfg=%+v", cfg)
	}

	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err = Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected addr: %q", cfg.HTTP.Addr)
	}
	if cfg.API.ChoicesPerMinute != 120 {
		t.Fatalf("unexpected choices/min: %d", cfg.API.ChoicesPerMinute)
	}
	if cfg.S3.PresignTTL != 15*time.Minute {
		t.Fatalf("unexpected presign ttl: %s", cfg.S3.PresignTTL)
	}
}

func TestLoad_YAMLThenEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
http:
  addr: ":9090"
log:
  level: debug
redis:
  addr: "localhost:6379"
  cache_ttl: 2m
api:
  choices_per_minute: 10
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CORS_ORIGINS", "https://getpet.lt, https://app.getpet.lt")
	t.Setenv("JWT_ACCESS_TTL", "1h")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("yaml addr not applied: %q", cfg.HTTP.Addr)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("env should win over yaml, got level %q", cfg.Log.Level)
	}
	if cfg.Redis.CacheTTL != 2*time.Minute {
		t.Fatalf("unexpected cache ttl: %s", cfg.Redis.CacheTTL)
	}
	if cfg.API.ChoicesPerMinute != 10 {
		t.Fatalf("unexpected choices/min: %d", cfg.API.ChoicesPerMinute)
	}
	if cfg.Auth.AccessTTL != time.Hour {
		t.Fatalf("unexpected access ttl: %s", cfg.Auth.AccessTTL)
	}
	if len(cfg.API.CORSOrigins) != 2 || cfg.API.CORSOrigins[1] != "https://app.getpet.lt" {
		t.Fatalf("unexpected cors origins: %#v", cfg.API.CORSOrigins)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should be valid: %v", err)
	}

	cfg.Firebase.ProjectID = "getpet"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error: firebase without jwt secret")
	}

	cfg.Auth.JWTSecret = "short"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error: short jwt secret")
	}

	cfg.Auth.JWTSecret = "0123456789abcdef0123456789abcdef"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.Env = "production"
	cfg.Auth.DevMode = true
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error: dev mode in production")
	}
}
