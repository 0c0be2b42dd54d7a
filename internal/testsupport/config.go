package testsupport

import (
	"path/filepath"
	"testing"

	"assetman/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.InterfacesDir = filepath.Join(base, "interfaces")
	cfg.Store.Path = filepath.Join(base, "data", "assetman.db")
	return &cfg
}
