package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"assetman/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("ASSETMAN_DATA_DIR", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "assetman")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Store.Path != filepath.Join(wantData, "assetman.db") {
		t.Fatalf("unexpected store path: %q", cfg.Store.Path)
	}
	if cfg.LockPath() != cfg.Store.Path+".lock" {
		t.Fatalf("unexpected lock path: %q", cfg.LockPath())
	}
	if cfg.Paths.InterfacesDir != filepath.Join(tempHome, ".config", "assetman", "interfaces") {
		t.Fatalf("unexpected interfaces dir: %q", cfg.Paths.InterfacesDir)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if !cfg.Editor.CheckCode {
		t.Fatal("expected code checks enabled by default")
	}
	if cfg.StubBegin() != "<!-- ASSET MANAGER BEGIN -->" || cfg.StubEnd() != "<!-- ASSET MANAGER END -->" {
		t.Fatalf("unexpected stub markers: %q %q", cfg.StubBegin(), cfg.StubEnd())
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assetman.toml")
	content := `
[paths]
data_dir = "` + filepath.ToSlash(filepath.Join(dir, "data")) + `"

[store]
path = "` + filepath.ToSlash(filepath.Join(dir, "custom.db")) + `"

[logging]
format = "JSON"
level = "Debug"

[editor]
check_code = false

[render]
stub_marker = "AM"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ASSETMAN_DATA_DIR", "")

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Paths.DataDir != filepath.Join(dir, "data") {
		t.Fatalf("unexpected data dir: %q", cfg.Paths.DataDir)
	}
	if cfg.Store.Path != filepath.Join(dir, "custom.db") {
		t.Fatalf("unexpected store path: %q", cfg.Store.Path)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging, got %+v", cfg.Logging)
	}
	if cfg.Editor.CheckCode {
		t.Fatal("expected code checks disabled")
	}
	if cfg.StubBegin() != "<!-- AM BEGIN -->" {
		t.Fatalf("unexpected stub begin: %q", cfg.StubBegin())
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assetman.toml")
	if err := os.WriteFile(path, []byte("[paths]\nstaging_dir = \"/tmp\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestDataDirFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ASSETMAN_DATA_DIR", dir)

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.DataDir != dir {
		t.Fatalf("expected data dir from env, got %q", cfg.Paths.DataDir)
	}
	if cfg.Store.Path != filepath.Join(dir, "assetman.db") {
		t.Fatalf("unexpected store path: %q", cfg.Store.Path)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path, false); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if err := config.CreateSample(path, false); !errors.Is(err, config.ErrConfigExists) {
		t.Fatalf("expected ErrConfigExists, got %v", err)
	}
	if err := config.CreateSample(path, true); err != nil {
		t.Fatalf("CreateSample overwrite failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if string(contents) != config.SampleConfig() {
		t.Fatal("sample file differs from embedded sample")
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.DataDir, "assetman") {
		t.Fatalf("expected data dir to contain assetman, got %q", cfg.Paths.DataDir)
	}
	if cfg.Render.StubMarker != "ASSET MANAGER" {
		t.Fatalf("unexpected stub marker: %q", cfg.Render.StubMarker)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	valid := func() config.Config {
		cfg := config.Default()
		cfg.Store.Path = "/tmp/assetman.db"
		return cfg
	}

	cfg := valid()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cfg = valid()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging.format error, got %v", err)
	}

	cfg = valid()
	cfg.Logging.Level = "trace"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "logging.level") {
		t.Fatalf("expected logging.level error, got %v", err)
	}

	cfg = valid()
	cfg.Store.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty store path")
	}

	cfg = valid()
	cfg.Render.StubMarker = "A--B"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for marker containing --")
	}
}
