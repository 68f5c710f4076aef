package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":8000" || cfg.DBPath != "echomindr.db" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.AdminToken != "" {
		t.Errorf("AdminToken = %q, want empty by default", cfg.AdminToken)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
db_path: /var/lib/echomindr/moments.db
listen: ":9090"
admin_token: secret
rate:
  rps: 2.5
  burst: 4
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "/var/lib/echomindr/moments.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.Listen != ":9090" || cfg.AdminToken != "secret" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Rate.RPS != 2.5 || cfg.Rate.Burst != 4 {
		t.Errorf("Rate = %+v", cfg.Rate)
	}
	// Unset fields keep defaults.
	if cfg.LogsDBPath != "echomindr_logs.db" {
		t.Errorf("LogsDBPath = %q", cfg.LogsDBPath)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ECHOMINDR_ADMIN_TOKEN", "env-token")
	t.Setenv("ECHOMINDR_LISTEN", ":7070")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AdminToken != "env-token" {
		t.Errorf("AdminToken = %q, want env override", cfg.AdminToken)
	}
	if cfg.Listen != ":7070" {
		t.Errorf("Listen = %q, want env override", cfg.Listen)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("listen: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
