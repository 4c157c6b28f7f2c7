// ABOUTME: Tests for gymlog configuration management.
// ABOUTME: Covers load, save, defaults, backend selection, and path expansion.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetBackendDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetBackend(); got != "sqlite" {
		t.Errorf("GetBackend() = %q, want %q", got, "sqlite")
	}
}

func TestGetBackendExplicit(t *testing.T) {
	cfg := &Config{Backend: "badger"}
	if got := cfg.GetBackend(); got != "badger" {
		t.Errorf("GetBackend() = %q, want %q", got, "badger")
	}
}

func TestGetDataDirDefault(t *testing.T) {
	cfg := &Config{}

	got := cfg.GetDataDir()
	if got == "" {
		t.Error("GetDataDir() returned empty string")
	}
	if !strings.Contains(got, "gymlog") {
		t.Errorf("GetDataDir() = %q, expected gymlog data dir", got)
	}
}

func TestGetDataDirExplicit(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/gymlog-test"}
	if got := cfg.GetDataDir(); got != "/tmp/gymlog-test" {
		t.Errorf("GetDataDir() = %q, want %q", got, "/tmp/gymlog-test")
	}
}

func TestExpandPath(t *testing.T) {
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(\"\") = %q", got)
	}
	if got := ExpandPath("/tmp/foo"); got != "/tmp/foo" {
		t.Errorf("ExpandPath(\"/tmp/foo\") = %q", got)
	}

	home, _ := os.UserHomeDir()
	if got := ExpandPath("~"); got != home {
		t.Errorf("ExpandPath(\"~\") = %q, want %q", got, home)
	}
	if got := ExpandPath("~/gym"); got != filepath.Join(home, "gym") {
		t.Errorf("ExpandPath(\"~/gym\") = %q, want %q", got, filepath.Join(home, "gym"))
	}
}

func TestOpenStorageSQLite(t *testing.T) {
	cfg := &Config{Backend: "sqlite", DataDir: t.TempDir()}

	repo, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage failed: %v", err)
	}
	defer repo.Close()

	if _, err := repo.CreateTemplate("Push Day"); err != nil {
		t.Errorf("SQLite repo not usable: %v", err)
	}
}

func TestOpenStorageBadger(t *testing.T) {
	cfg := &Config{Backend: "badger", DataDir: t.TempDir()}

	repo, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage failed: %v", err)
	}
	defer repo.Close()

	if _, err := repo.CreateTemplate("Push Day"); err != nil {
		t.Errorf("Badger repo not usable: %v", err)
	}
}

func TestOpenStorageUnknownBackend(t *testing.T) {
	cfg := &Config{Backend: "postgres"}
	if _, err := cfg.OpenStorage(); err == nil {
		t.Error("Expected error for unknown backend")
	}
}

func TestConfigRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	// Missing file loads defaults
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != "" || cfg.DataDir != "" {
		t.Errorf("Expected zero config, got %+v", cfg)
	}

	cfg.Backend = "badger"
	cfg.DataDir = "~/gym-data"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(tmpDir, "gymlog", "config.json"))
	if err != nil {
		t.Fatalf("Config file not written: %v", err)
	}
	var onDisk map[string]string
	if err := json.Unmarshal(raw, &onDisk); err != nil {
		t.Fatalf("Config file not valid JSON: %v", err)
	}
	if onDisk["backend"] != "badger" {
		t.Errorf("Expected backend badger on disk, got %q", onDisk["backend"])
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Backend != "badger" || loaded.DataDir != "~/gym-data" {
		t.Errorf("Round trip mismatch: %+v", loaded)
	}
}
