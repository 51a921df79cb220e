// ABOUTME: Tests for configuration loading
// ABOUTME: Covers defaults, environment overrides, and YAML files
package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ROLO_CONFIG", "")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.WebPort != 8080 {
		t.Errorf("Expected default web port 8080, got %d", cfg.WebPort)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("Unexpected logging defaults: %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.ReminderHorizon != 30 {
		t.Errorf("Expected default reminder horizon 30, got %d", cfg.ReminderHorizon)
	}
	if cfg.DBPath == "" {
		t.Error("Expected a default database path")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ROLO_CONFIG", "")
	t.Setenv("ROLO_DB_PATH", "/tmp/custom.db")
	t.Setenv("ROLO_WEB_PORT", "9999")
	t.Setenv("ROLO_LOG_FORMAT", "json")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("Expected env db path, got %s", cfg.DBPath)
	}
	if cfg.WebPort != 9999 {
		t.Errorf("Expected env web port, got %d", cfg.WebPort)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("Expected env log format, got %s", cfg.LogFormat)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rolo.yaml")
	yaml := "db_path: /tmp/from-yaml.db\nweb_port: 7777\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv("ROLO_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.DBPath != "/tmp/from-yaml.db" {
		t.Errorf("Expected yaml db path, got %s", cfg.DBPath)
	}
	if cfg.WebPort != 7777 {
		t.Errorf("Expected yaml web port, got %d", cfg.WebPort)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Setenv("ROLO_CONFIG", "/nonexistent/rolo.yaml")

	if _, err := Load(); err == nil {
		t.Error("Expected error for missing explicit config file")
	}
}
