package manifest

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"assetman/internal/logging"
	"assetman/internal/registry"
)

// Load parses every *.toml manifest in dir in file name order. A missing
// directory yields no manifests. Two manifests declaring the same tag are an
// error.
func Load(dir string, logger *slog.Logger) ([]*Declared, error) {
	logger = logging.NewComponentLogger(logger, "manifest")

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("interface directory missing", logging.String("dir", dir))
			return nil, nil
		}
		return nil, fmt.Errorf("read interface directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".toml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	seen := make(map[string]string, len(names))
	out := make([]*Declared, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read manifest %s: %w", name, err)
		}
		decl, err := Parse(data, dir)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: %w", name, err)
		}
		if prev, ok := seen[decl.tag]; ok {
			return nil, fmt.Errorf("manifest %s: tag %q already declared in %s", name, decl.tag, prev)
		}
		seen[decl.tag] = name
		decl.path = path
		out = append(out, decl)
	}

	logger.Debug("loaded interface manifests", logging.String("dir", dir), logging.Int("count", len(out)))
	return out, nil
}

// Bundle registers a set of declared interfaces and installs their meta
// scripts on the given note types.
type Bundle struct {
	Declared []*Declared
	ModelIDs []int64
}

// Register implements registry.Module.
func (b Bundle) Register(reg *registry.Registry) error {
	known := make(map[int64]struct{}, len(b.ModelIDs))
	for _, id := range b.ModelIDs {
		known[id] = struct{}{}
	}

	for _, d := range b.Declared {
		if err := reg.Register(d.Interface()); err != nil {
			return err
		}
		if d.installAll {
			if err := reg.InstallAll(b.ModelIDs, d.tag, d.IDFor); err != nil {
				return err
			}
			continue
		}
		for _, modelID := range d.installModels {
			if _, ok := known[modelID]; !ok {
				continue
			}
			if err := reg.RegisterMetaScript(modelID, d.tag, d.IDFor(modelID)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Install registers decls on reg and installs their meta scripts on
// modelIDs. Models listed in install_models but absent from modelIDs are
// skipped.
func Install(reg *registry.Registry, decls []*Declared, modelIDs []int64) error {
	return reg.RegisterModules(Bundle{Declared: decls, ModelIDs: modelIDs})
}

// InstallModel registers the meta scripts decls expect on one note type,
// for note types created after the registry was built. The interfaces must
// already be registered.
func InstallModel(reg *registry.Registry, decls []*Declared, modelID int64) error {
	for _, d := range decls {
		if !d.installsOn(modelID) {
			continue
		}
		if err := reg.RegisterMetaScript(modelID, d.tag, d.IDFor(modelID)); err != nil {
			return err
		}
	}
	return nil
}

func (d *Declared) installsOn(modelID int64) bool {
	if d.installAll {
		return true
	}
	for _, id := range d.installModels {
		if id == modelID {
			return true
		}
	}
	return false
}
