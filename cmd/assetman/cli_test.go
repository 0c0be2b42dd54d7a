package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"assetman/internal/editor"
	"assetman/internal/schema"
	"assetman/internal/store"
)

const exampleManifest = `
tag = "example"
store = ["enabled", "code", "conditions"]
readonly = ["name", "version"]
reset = true
install = "all"

[defaults]
name = "Example"
position = "into_template"
code = "example();"
`

func setupWithNotetype(t *testing.T) *cliTestEnv {
	t.Helper()
	env := setupCLITestEnv(t)
	env.writeManifest(t, "example.toml", exampleManifest)
	out := mustRunCLI(t, env, "notetype", "add", "1", "Basic")
	requireContains(t, out, "Added note type 1 (Basic) with 1 script(s)")
	return env
}

func exportSelect(t *testing.T, env *cliTestEnv, selector string) []any {
	t.Helper()
	out := mustRunCLI(t, env, "setting", "export", "1", "--select", selector)
	var got []any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode export %q: %v", out, err)
	}
	return got
}

func TestNotetypeCommands(t *testing.T) {
	env := setupWithNotetype(t)

	out := mustRunCLI(t, env, "notetype", "list")
	requireContains(t, out, "Basic")

	out = mustRunCLI(t, env, "notetype", "list", "--json")
	var rows []map[string]any
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(rows) != 1 || rows[0]["name"] != "Basic" || rows[0]["scripts"] != float64(1) {
		t.Fatalf("unexpected rows: %v", rows)
	}

	_, _, err := runCLI(t, []string{"notetype", "add", "1", "Other"}, env.configPath)
	if !errors.Is(err, store.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestScriptLifecycle(t *testing.T) {
	env := setupWithNotetype(t)

	mustRunCLI(t, env, "script", "add", "Basic",
		"--set", "name=hello",
		"--set", "position=into_template",
		"--set", "code=console.log(1)",
	)
	out := mustRunCLI(t, env, "setting", "show", "1")
	requireContains(t, out, "example: 1")
	requireContains(t, out, "hello")

	if got := exportSelect(t, env, "$.scripts[*].kind"); len(got) != 2 || got[0] != "meta" || got[1] != "concrete" {
		t.Fatalf("unexpected kinds: %v", got)
	}

	mustRunCLI(t, env, "script", "update", "1", "1", "--set", "code=edited();", "--set", "description=notes")
	if got := exportSelect(t, env, "$.scripts[0].storage.code"); len(got) != 1 || got[0] != "edited();" {
		t.Fatalf("unexpected stored code: %v", got)
	}
	if got := exportSelect(t, env, "$.scripts[0].storage.description"); len(got) != 0 {
		t.Fatalf("description is outside the stored fields, got %v", got)
	}

	_, _, err := runCLI(t, []string{"script", "update", "1", "1", "--set", "name=renamed"}, env.configPath)
	if !errors.Is(err, editor.ErrReadonlyField) {
		t.Fatalf("expected ErrReadonlyField, got %v", err)
	}
	if exitCode(err) != 2 {
		t.Fatalf("exitCode = %d, want 2", exitCode(err))
	}

	_, _, err = runCLI(t, []string{"script", "update", "1", "2", "--set", `conditions=[["deck","=","x"]]`}, env.configPath)
	if !errors.Is(err, editor.ErrConditionsInvalid) {
		t.Fatalf("expected ErrConditionsInvalid, got %v", err)
	}

	mustRunCLI(t, env, "script", "reset", "1", "1")
	if got := exportSelect(t, env, "$.scripts[0].storage.code"); len(got) != 1 || got[0] != "example();" {
		t.Fatalf("unexpected code after reset: %v", got)
	}

	if _, _, err := runCLI(t, []string{"script", "reset", "1", "2"}, env.configPath); err == nil {
		t.Fatal("expected reset of a concrete script to fail")
	}
	_, _, err = runCLI(t, []string{"script", "remove", "1", "1"}, env.configPath)
	if err == nil {
		t.Fatal("expected removal of a meta script to fail")
	}
	requireContains(t, err.Error(), "--set enabled=false")

	mustRunCLI(t, env, "script", "remove", "1", "2")
	if got := exportSelect(t, env, "$.scripts[*].kind"); len(got) != 1 {
		t.Fatalf("expected one script after removal, got %v", got)
	}
}

func TestRemoveMetaScriptWithoutStoredEnabled(t *testing.T) {
	env := setupCLITestEnv(t)
	env.writeManifest(t, "pinned.toml", `
tag = "pinned"
store = ["code"]
install = "all"

[defaults]
name = "Pinned"
code = "pinned();"
`)
	mustRunCLI(t, env, "notetype", "add", "1", "Basic")

	_, _, err := runCLI(t, []string{"script", "remove", "1", "1"}, env.configPath)
	if err == nil {
		t.Fatal("expected removal of a meta script to fail")
	}
	requireContains(t, err.Error(), `managed by interface "pinned" and cannot be removed`)
	if strings.Contains(err.Error(), "enabled=false") {
		t.Fatalf("hint offered for an unstored field: %v", err)
	}
}

func TestScriptCodeWarnings(t *testing.T) {
	env := setupWithNotetype(t)

	_, stderr, err := runCLI(t, []string{"script", "add", "1", "--set", "code=if (a {"}, env.configPath)
	if err != nil {
		t.Fatalf("script add: %v", err)
	}
	requireContains(t, stderr, "warning:")
}

func TestSettingImport(t *testing.T) {
	env := setupWithNotetype(t)
	dir := t.TempDir()

	invalid := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalid, []byte(`{"scripts": [{"name": 5}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	before := mustRunCLI(t, env, "setting", "export", "1")
	_, _, err := runCLI(t, []string{"setting", "import", "1", invalid}, env.configPath)
	var schemaErr *schema.Error
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected schema error, got %v", err)
	}
	if after := mustRunCLI(t, env, "setting", "export", "1"); after != before {
		t.Fatalf("stored setting changed after failed import:\n%s\n%s", before, after)
	}

	valid := filepath.Join(dir, "valid.json")
	doc := `{"enabled": true, "indentSize": 2, "scripts": [{"kind": "concrete", "name": "imported", "code": "x();"}]}`
	if err := os.WriteFile(valid, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	out := mustRunCLI(t, env, "setting", "import", "1", valid)
	requireContains(t, out, "Imported 2 script(s)")

	if got := exportSelect(t, env, "$.scripts[*].name"); len(got) != 1 || got[0] != "imported" {
		t.Fatalf("unexpected names: %v", got)
	}
	if got := exportSelect(t, env, "$.indentSize"); len(got) != 1 || got[0] != float64(2) {
		t.Fatalf("unexpected indentSize: %v", got)
	}
}

func TestSettingSetAndExportFile(t *testing.T) {
	env := setupWithNotetype(t)

	mustRunCLI(t, env, "setting", "set", "1", "insertStub=false", "indentSize=0", "html.minify=true")
	if got := exportSelect(t, env, "$.insertStub"); len(got) != 1 || got[0] != false {
		t.Fatalf("unexpected insertStub: %v", got)
	}
	if _, _, err := runCLI(t, []string{"setting", "set", "1", "indentSize=99"}, env.configPath); err == nil {
		t.Fatal("expected indentSize out of range to fail")
	}

	target := filepath.Join(t.TempDir(), "html.json")
	mustRunCLI(t, env, "setting", "export", "1", "--kind", "html", "--output", target)
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	requireContains(t, string(data), `"minify": true`)
}

func TestHTMLAndRender(t *testing.T) {
	env := setupWithNotetype(t)

	mustRunCLI(t, env, "html", "add", "1", "--set", "name=banner", "--set", "code=<div>banner</div>")
	mustRunCLI(t, env, "html", "add", "1", "--set", "code=<p>back</p>", "--set", `conditions=[["side","=","back"]]`)
	out := mustRunCLI(t, env, "html", "show", "1")
	requireContains(t, out, "banner")

	mustRunCLI(t, env, "script", "add", "1", "--set", "name=Lib", "--set", "code=lib();")

	out = mustRunCLI(t, env, "render", "1", "--side", "front")
	requireContains(t, out, "<!-- ASSET MANAGER BEGIN -->")
	requireContains(t, out, "<div>banner</div>")
	requireContains(t, out, "example();")
	requireContains(t, out, `<script src="_am_lib.js"></script>`)
	if strings.Contains(out, "<p>back</p>") {
		t.Fatalf("back-only fragment rendered on the front: %s", out)
	}

	dir := t.TempDir()
	template := filepath.Join(dir, "front.html")
	if err := os.WriteFile(template, []byte("{{Front}}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	args := []string{"render", "1", "--apply", template, "--assets-dir", filepath.Join(dir, "media")}
	mustRunCLI(t, env, args...)
	first, err := os.ReadFile(template)
	if err != nil {
		t.Fatal(err)
	}
	mustRunCLI(t, env, args...)
	second, err := os.ReadFile(template)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatalf("render --apply is not idempotent:\n%s\n%s", first, second)
	}
	if _, err := os.Stat(filepath.Join(dir, "media", "_am_lib.js")); err != nil {
		t.Fatalf("expected asset file: %v", err)
	}

	mustRunCLI(t, env, "html", "remove", "1", "2")
	out = mustRunCLI(t, env, "render", "1", "--side", "back")
	if strings.Contains(out, "<p>back</p>") {
		t.Fatalf("removed fragment still rendered: %s", out)
	}
}

func TestIfaceList(t *testing.T) {
	env := setupWithNotetype(t)

	out := mustRunCLI(t, env, "iface", "list", "--json")
	var rows []map[string]any
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode iface list: %v", err)
	}
	if len(rows) != 1 || rows[0]["tag"] != "example" || rows[0]["installed"] != float64(1) || rows[0]["reset"] != true {
		t.Fatalf("unexpected rows: %v", rows)
	}

	out = mustRunCLI(t, env, "iface", "list")
	requireContains(t, out, "example")
}

func TestWriteCommandsFailWhileLocked(t *testing.T) {
	env := setupWithNotetype(t)

	lock, err := store.AcquireLock(env.dbPath + ".lock")
	if err != nil {
		t.Fatalf("acquire lock: %v", err)
	}
	defer lock.Release()

	_, _, err = runCLI(t, []string{"script", "add", "1"}, env.configPath)
	if !errors.Is(err, store.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	mustRunCLI(t, env, "setting", "show", "1")
}
