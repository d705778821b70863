package config

import (
	"testing"
	"time"
)

func TestLoadServerDefaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/lizards?sslmode=disable")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.DBMaxConns != 20 || cfg.DBMinConns != 2 {
		t.Fatalf("unexpected pool bounds: %d/%d", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.DBMaxConnLifetime != 30*time.Minute {
		t.Fatalf("DBMaxConnLifetime = %s, want 30m", cfg.DBMaxConnLifetime)
	}
	if !cfg.NotifyEnabled {
		t.Fatal("NotifyEnabled should default to true")
	}
}

func TestLoadServerRequiresPostgresDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")

	_, err := LoadServer()
	if err == nil {
		t.Fatal("LoadServer() expected error, got nil")
	}
}

func TestLoadServerParseTypes(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://localhost:5432/lizards?sslmode=disable")
	t.Setenv("ADMIN_CHAT_IDS", "100,-200")
	t.Setenv("NOTIFY_ENABLED", "false")
	t.Setenv("NOTIFY_RETRY_MAX", "5")
	t.Setenv("DB_MAX_CONN_IDLE_TIME", "90s")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if len(cfg.AdminChatIDs) != 2 || cfg.AdminChatIDs[0] != 100 || cfg.AdminChatIDs[1] != -200 {
		t.Fatalf("AdminChatIDs = %v", cfg.AdminChatIDs)
	}
	if cfg.NotifyEnabled || cfg.NotifyRetryMax != 5 {
		t.Fatalf("unexpected notify config: %+v", cfg)
	}
	if cfg.DBMaxConnIdleTime != 90*time.Second {
		t.Fatalf("DBMaxConnIdleTime = %s, want 90s", cfg.DBMaxConnIdleTime)
	}
}
