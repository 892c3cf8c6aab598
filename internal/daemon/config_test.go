package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("API.Host = %q, want %q", cfg.API.Host, "127.0.0.1")
	}
	if cfg.API.Port != 8420 {
		t.Errorf("API.Port = %d, want %d", cfg.API.Port, 8420)
	}
	if cfg.Telemetry.Prometheus {
		t.Error("Prometheus should default to off")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestLoadConfig_NoFile(t *testing.T) {
	t.Setenv("PLAISIR_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load with no file: %v", err)
	}
	if cfg.API.Port != 8420 {
		t.Errorf("expected defaults, got port %d", cfg.API.Port)
	}
}

func TestSaveLoadConfig_RoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("PLAISIR_HOME", home)

	cfg := DefaultConfig()
	cfg.API.Port = 9000
	cfg.Logging.Level = "debug"
	cfg.Scheduler.RolloverSpec = "0 30 0 * * *"

	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "config.toml")); err != nil {
		t.Fatalf("config file: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.API.Port != 9000 {
		t.Errorf("Port = %d, want 9000", loaded.API.Port)
	}
	if loaded.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", loaded.Logging.Level)
	}
	if loaded.Scheduler.RolloverSpec != "0 30 0 * * *" {
		t.Errorf("RolloverSpec = %q", loaded.Scheduler.RolloverSpec)
	}
}
