package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"assetman/internal/registry"
	"assetman/internal/script"
)

const (
	installAll       = "all"
	defaultIDPattern = "{model}"
	defaultLabel     = "{tag}: {id}"
)

// File is the on-disk manifest shape.
type File struct {
	Tag           string   `toml:"tag"`
	Store         []string `toml:"store"`
	Readonly      []string `toml:"readonly"`
	Reset         bool     `toml:"reset"`
	AutoDelete    bool     `toml:"autodelete"`
	AutoDeleteIDs []string `toml:"autodelete_ids"`
	Label         string   `toml:"label"`
	Install       string   `toml:"install"`
	InstallModels []int64  `toml:"install_models"`
	ID            string   `toml:"id"`
	Defaults      Defaults `toml:"defaults"`
}

// Defaults describes the script the interface getter starts from.
type Defaults struct {
	Name        string `toml:"name"`
	Enabled     *bool  `toml:"enabled"`
	Type        string `toml:"type"`
	Label       string `toml:"label"`
	Version     string `toml:"version"`
	Description string `toml:"description"`
	Position    string `toml:"position"`
	Conditions  []any  `toml:"conditions"`
	Code        string `toml:"code"`
	CodeFile    string `toml:"code_file"`
}

// Declared is an interface described by a manifest file.
type Declared struct {
	path          string
	tag           string
	base          script.ConcreteScript
	store         script.FieldSet
	readonly      script.FieldSet
	reset         bool
	autoDelete    bool
	autoDeleteIDs map[string]struct{}
	label         string
	installAll    bool
	installModels []int64
	idPattern     string
}

// Parse decodes one manifest. Relative code_file paths resolve against dir.
func Parse(data []byte, dir string) (*Declared, error) {
	var file File
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return file.declare(dir)
}

func (f File) declare(dir string) (*Declared, error) {
	tag := strings.TrimSpace(f.Tag)
	if tag == "" {
		return nil, errors.New("tag must be set")
	}

	d := &Declared{
		tag:           tag,
		reset:         f.Reset,
		autoDelete:    f.AutoDelete,
		autoDeleteIDs: make(map[string]struct{}, len(f.AutoDeleteIDs)),
		label:         strings.TrimSpace(f.Label),
		idPattern:     strings.TrimSpace(f.ID),
	}
	if d.label == "" {
		d.label = defaultLabel
	}
	if d.idPattern == "" {
		d.idPattern = defaultIDPattern
	}
	for _, id := range f.AutoDeleteIDs {
		d.autoDeleteIDs[id] = struct{}{}
	}

	var err error
	if d.store, err = script.ParseFieldSet(f.Store); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	if d.readonly, err = script.ParseFieldSet(f.Readonly); err != nil {
		return nil, fmt.Errorf("readonly: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(f.Install)) {
	case installAll:
		if len(f.InstallModels) > 0 {
			return nil, errors.New(`install = "all" conflicts with install_models`)
		}
		d.installAll = true
	case "":
		d.installModels = append([]int64(nil), f.InstallModels...)
	default:
		return nil, fmt.Errorf("install must be %q or empty, got %q", installAll, f.Install)
	}

	if d.base, err = f.Defaults.script(tag, dir); err != nil {
		return nil, fmt.Errorf("defaults: %w", err)
	}
	return d, nil
}

func (d Defaults) script(tag, dir string) (script.ConcreteScript, error) {
	out := script.DefaultConcreteScript()
	out.Name = tag
	if d.Name != "" {
		out.Name = d.Name
	}
	if d.Enabled != nil {
		out.Enabled = *d.Enabled
	}
	if d.Type != "" {
		t, err := script.ParseType(d.Type)
		if err != nil {
			return script.ConcreteScript{}, err
		}
		out.Type = t
	}
	if d.Position != "" {
		p, err := script.ParsePosition(d.Position)
		if err != nil {
			return script.ConcreteScript{}, err
		}
		out.Position = p
	}
	out.Label = d.Label
	if d.Version != "" {
		out.Version = d.Version
	}
	out.Description = d.Description
	if d.Conditions != nil {
		out.Conditions = script.Conditions(d.Conditions).Clone()
	}

	switch {
	case d.Code != "" && d.CodeFile != "":
		return script.ConcreteScript{}, errors.New("code and code_file are mutually exclusive")
	case d.CodeFile != "":
		path := d.CodeFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return script.ConcreteScript{}, fmt.Errorf("read code_file: %w", err)
		}
		out.Code = strings.TrimSpace(string(data))
	default:
		out.Code = d.Code
	}
	return out, nil
}

// Path returns the manifest file the interface was loaded from.
func (d *Declared) Path() string { return d.path }

// Tag returns the manifest's interface tag.
func (d *Declared) Tag() string { return d.tag }

// Get overlays the stored overrides onto the declared defaults.
func (d *Declared) Get(_ string, storage script.Storage) script.ConcreteScript {
	return storage.Overlay(d.base)
}

// Set accepts every edit; Store limits what is kept.
func (d *Declared) Set(string, script.ConcreteScript) registry.SetResult {
	return registry.Accept()
}

// Store returns the fields listed under store; only these are persisted.
func (d *Declared) Store() script.FieldSet { return d.store }

// Readonly returns the fields the editor refuses to change.
func (d *Declared) Readonly() script.FieldSet { return d.readonly }

// Label expands the label pattern's {tag}, {id} and {name} placeholders.
func (d *Declared) Label(id string, storage script.Storage) string {
	name := d.Get(id, storage).Name
	return strings.NewReplacer("{tag}", d.tag, "{id}", id, "{name}", name).Replace(d.label)
}

// AutoDelete reports whether id is purged on load.
func (d *Declared) AutoDelete(id string, _ script.Storage) bool {
	if d.autoDelete {
		return true
	}
	_, ok := d.autoDeleteIDs[id]
	return ok
}

// IDFor expands the id pattern for modelID.
func (d *Declared) IDFor(modelID int64) string {
	return strings.ReplaceAll(d.idPattern, "{model}", strconv.FormatInt(modelID, 10))
}

// Resettable reports whether the manifest enables reset.
func (d *Declared) Resettable() bool { return d.reset }

// Interface returns d as a registry interface, with the Resetter capability
// when the manifest enables reset.
func (d *Declared) Interface() registry.Interface {
	if d.reset {
		return resettable{d}
	}
	return d
}

// resettable restores the declared defaults but keeps the user's enabled
// flag and conditions.
type resettable struct {
	*Declared
}

func (r resettable) Reset(_ string, storage script.Storage) script.ConcreteScript {
	out := r.base.Clone()
	if storage.Enabled != nil {
		out.Enabled = *storage.Enabled
	}
	if storage.Conditions != nil {
		out.Conditions = storage.Conditions.Clone()
	}
	return out
}
