package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(context.Background(), "")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}

	if cfg.HTTP.Addr != ":8000" {
		t.Fatalf("unexpected default addr %q", cfg.HTTP.Addr)
	}
	if cfg.HTTP.APIToken == "" {
		t.Fatal("default api token must not be empty")
	}
	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("unexpected default driver %q", cfg.Database.Driver)
	}
	if cfg.Agent.MaxSteps != 30 {
		t.Fatalf("unexpected default max_steps %d", cfg.Agent.MaxSteps)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
app:
  name: cae-test
  env: test
http:
  addr: ":9090"
  api_token: secret-token
database:
  driver: fixture
agent:
  provider: anthropic
  max_steps: 5
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(context.Background(), path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.App.Name != "cae-test" {
		t.Fatalf("unexpected app name %q", cfg.App.Name)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("unexpected addr %q", cfg.HTTP.Addr)
	}
	if !cfg.Database.IsFixture() {
		t.Fatal("expected fixture driver")
	}
	if cfg.Agent.Provider != "anthropic" {
		t.Fatalf("unexpected provider %q", cfg.Agent.Provider)
	}
}

func TestLoadRejectsMissingDSN(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
http:
  api_token: secret-token
database:
  driver: sqlite
  dsn: ""
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(context.Background(), path); err == nil {
		t.Fatal("expected error for empty dsn")
	}
}
