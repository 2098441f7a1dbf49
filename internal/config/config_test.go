package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
app:
  name: courtside
  environment: test
  port: 9090
database:
  driver: sqlite
  filename: test.db
jobs:
  drift_audit_cron: "0 4 * * *"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.App.Name != "courtside" || cfg.App.Port != 9090 {
		t.Fatalf("unexpected app config: %+v", cfg.App)
	}
	if cfg.Database.Filename != "test.db" {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.Jobs.DriftAuditCron != "0 4 * * *" {
		t.Fatalf("unexpected jobs config: %+v", cfg.Jobs)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{
			name:   "valid",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "missing app name",
			mutate:  func(cfg *Config) { cfg.App.Name = "" },
			wantErr: true,
		},
		{
			name:    "missing port",
			mutate:  func(cfg *Config) { cfg.App.Port = 0 },
			wantErr: true,
		},
		{
			name:    "unsupported driver",
			mutate:  func(cfg *Config) { cfg.Database.Driver = "postgres" },
			wantErr: true,
		},
		{
			name:    "sqlite without filename",
			mutate:  func(cfg *Config) { cfg.Database.Filename = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.App.Name = "courtside"
			cfg.App.Port = 8080
			cfg.Database.Driver = "sqlite"
			cfg.Database.Filename = "test.db"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}
