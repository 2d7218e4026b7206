// internal/config/loader_test.go
//
// Unit-tests for the layered configuration loader.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "conf"), 0o755); err != nil {
		t.Fatalf("mkdir conf: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "conf", "select2.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return root
}

func TestLoad_YAMLWithDefaults(t *testing.T) {
	root := writeYAML(t, `
http:
  listen_addr: ":8080"
database:
  dsn: "u:p@tcp(localhost:3306)/demo"
`)
	t.Setenv("SELECT2_ROOT", root)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.ListenAddr != ":8080" {
		t.Fatalf("listen_addr = %q", cfg.HTTP.ListenAddr)
	}
	// Unset sections fall back to defaults.
	if cfg.Cache.Backend != "memory" || cfg.Cache.Prefix != "select2_" {
		t.Fatalf("cache defaults not applied: %+v", cfg.Cache)
	}
	if cfg.Cache.TTL != 15*time.Minute {
		t.Fatalf("ttl default = %v", cfg.Cache.TTL)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	root := writeYAML(t, `
http:
  listen_addr: ":8080"
database:
  dsn: "u:p@tcp(localhost:3306)/demo"
cache:
  backend: memory
`)
	t.Setenv("SELECT2_ROOT", root)
	t.Setenv("SELECT2_HTTP__LISTEN_ADDR", ":9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.ListenAddr != ":9090" {
		t.Fatalf("env override lost: listen_addr = %q", cfg.HTTP.ListenAddr)
	}
}

func TestLoad_MissingDSNFailsValidation(t *testing.T) {
	root := writeYAML(t, `
http:
  listen_addr: ":8080"
`)
	t.Setenv("SELECT2_ROOT", root)

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a config without database.dsn")
	}
}
