package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliTestEnv struct {
	configPath    string
	baseDir       string
	interfacesDir string
	dbPath        string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("ASSETMAN_DATA_DIR", "")

	env := &cliTestEnv{
		configPath:    filepath.Join(base, "assetman.toml"),
		baseDir:       base,
		interfacesDir: filepath.Join(base, "interfaces"),
		dbPath:        filepath.Join(base, "data", "assetman.db"),
	}
	if err := os.MkdirAll(env.interfacesDir, 0o755); err != nil {
		t.Fatalf("mkdir interfaces: %v", err)
	}
	writeTestConfig(t, env)
	return env
}

func writeTestConfig(t *testing.T, env *cliTestEnv) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q
interfaces_dir = %q

[store]
path = %q

[logging]
level = "error"

[editor]
check_code = true
`,
		filepath.Join(env.baseDir, "data"),
		filepath.Join(env.baseDir, "logs"),
		env.interfacesDir,
		env.dbPath,
	)
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func (e *cliTestEnv) writeManifest(t *testing.T, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(e.interfacesDir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func mustRunCLI(t *testing.T, env *cliTestEnv, args ...string) string {
	t.Helper()
	out, stderr, err := runCLI(t, args, env.configPath)
	if err != nil {
		t.Fatalf("%s: %v (stderr: %s)", strings.Join(args, " "), err, stderr)
	}
	return out
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
