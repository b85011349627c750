package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsUsable(t *testing.T) {
	cfg := Default()
	if cfg.Server.DashboardAddr == "" {
		t.Fatal("default dashboard address must not be empty")
	}
}

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zappy.yaml")
	contents := `
server:
  dashboard_addr: ":9090"
telemetry:
  postgres_url: "postgres://localhost/zappy"
  redis_url: "redis://localhost:6379"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.DashboardAddr != ":9090" {
		t.Fatalf("expected dashboard addr :9090, got %q", cfg.Server.DashboardAddr)
	}
	if cfg.Telemetry.PostgresURL == "" || cfg.Telemetry.RedisURL == "" {
		t.Fatalf("expected telemetry URLs to be populated")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
