package config

import "testing"

func TestLoadLogDefaults(t *testing.T) {
	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "info" || cfg.Pretty || cfg.File != "" {
		t.Fatalf("unexpected log defaults: %+v", cfg)
	}
	if cfg.MaxMB != 10 {
		t.Fatalf("MaxMB = %d, want 10", cfg.MaxMB)
	}
}

func TestLoadLogParse(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "true")
	t.Setenv("LOG_FILE", "/var/log/lizard/server.log")
	t.Setenv("LOG_SAMPLE_EVERY", "50")

	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "debug" || !cfg.Pretty || cfg.SampleEvery != 50 {
		t.Fatalf("unexpected log config: %+v", cfg)
	}
	if cfg.File != "/var/log/lizard/server.log" {
		t.Fatalf("File = %q", cfg.File)
	}
}

func TestLoadLogRejectsBadSample(t *testing.T) {
	t.Setenv("LOG_SAMPLE_EVERY", "often")

	if _, err := LoadLog(); err == nil {
		t.Fatal("LoadLog() expected parse error, got nil")
	}
}
