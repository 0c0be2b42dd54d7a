package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"assetman/internal/config"
	"assetman/internal/editor"
	"assetman/internal/manifest"
	"assetman/internal/store"
)

// resolveModel looks a note type up by numeric id, falling back to its name.
func resolveModel(ctx context.Context, st *store.Store, arg string) (*store.Notetype, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, errors.New("note type id or name is required")
	}
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		nt, err := st.NotetypeByID(ctx, id)
		if err == nil || !errors.Is(err, store.ErrNotFound) {
			return nt, err
		}
	}
	nt, err := st.NotetypeByName(ctx, arg)
	if err != nil {
		return nil, fmt.Errorf("note type %q: %w", arg, err)
	}
	return nt, nil
}

// parseIndex converts a 1-based position argument into a slice index.
func parseIndex(arg string, length int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", arg)
	}
	if n < 1 || n > length {
		return 0, fmt.Errorf("index %d out of range (1-%d)", n, length)
	}
	return n - 1, nil
}

// assignment is one --set field=value pair.
type assignment struct {
	field string
	value string
}

func parseAssignments(values []string) ([]assignment, error) {
	out := make([]assignment, 0, len(values))
	for _, raw := range values {
		field, value, ok := strings.Cut(raw, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid --set %q (expected field=value)", raw)
		}
		out = append(out, assignment{field: field, value: value})
	}
	return out, nil
}

type fieldSetter interface {
	Set(field, value string) error
}

// applyAssignments sets fields in order, so enabled=true can precede edits
// to a disabled script.
func applyAssignments(target fieldSetter, assignments []assignment) error {
	for _, a := range assignments {
		if err := target.Set(a.field, a.value); err != nil {
			return err
		}
	}
	return nil
}

// exitCode maps error kinds onto process exit codes: 2 for input the user
// can correct, 1 otherwise.
func exitCode(err error) int {
	if editor.ErrorKind(err) == "validation" {
		return 2
	}
	switch store.ErrorKind(err) {
	case "validation", "decode", "not_found":
		return 2
	}
	return 1
}

// installFor registers the manifests' meta scripts on a note type added
// during this command run.
func installFor(ws *workspace, modelID int64) error {
	return manifest.InstallModel(ws.registry, ws.manifests, modelID)
}

// readInput reads path, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
