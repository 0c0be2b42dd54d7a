package setting

import (
	"errors"
	"fmt"
	"log/slog"

	"assetman/internal/logging"
	"assetman/internal/registry"
	"assetman/internal/script"
)

// Codec converts raw settings to typed records and back, reconciling meta
// scripts with a registry.
type Codec struct {
	registry *registry.Registry
	logger   *slog.Logger
}

// NewCodec returns a codec bound to reg. A nil logger discards output.
func NewCodec(reg *registry.Registry, logger *slog.Logger) *Codec {
	if reg == nil {
		reg = registry.New()
	}
	return &Codec{
		registry: reg,
		logger:   logging.NewComponentLogger(logger, "codec"),
	}
}

// Registry returns the registry the codec reconciles against.
func (c *Codec) Registry() *registry.Registry {
	return c.registry
}

// DeserializeSetting builds the script setting of modelID from its raw form.
// Absent keys take their defaults. Meta scripts the registry expects for
// modelID but that are missing from raw are appended with empty storage, and
// meta scripts whose interface requests auto deletion are dropped.
func (c *Codec) DeserializeSetting(modelID int64, raw map[string]any) (script.ScriptSetting, error) {
	setting := script.DefaultSetting()
	if raw == nil {
		raw = map[string]any{}
	}

	var err error
	if setting.Enabled, err = readBool(raw, "", "enabled", setting.Enabled); err != nil {
		return script.ScriptSetting{}, err
	}
	if setting.InsertStub, err = readBool(raw, "", "insertStub", setting.InsertStub); err != nil {
		return script.ScriptSetting{}, err
	}
	if setting.IndentSize, err = readInt(raw, "", "indentSize", setting.IndentSize); err != nil {
		return script.ScriptSetting{}, err
	}
	if setting.IndentSize < 0 || setting.IndentSize > script.MaxIndentSize {
		return script.ScriptSetting{}, decodeErr("indentSize",
			fmt.Errorf("expected integer between 0 and %d, got %d", script.MaxIndentSize, setting.IndentSize))
	}

	items, _, err := readList(raw, "", "scripts")
	if err != nil {
		return script.ScriptSetting{}, err
	}

	logger := c.logger.With(logging.Int64(logging.FieldModelID, modelID))
	scripts := make([]script.Script, 0, len(items))
	for i, item := range items {
		s, err := c.decodeScript(item, indexPath("scripts", i))
		if err != nil {
			return script.ScriptSetting{}, err
		}
		if meta, ok := s.(*script.MetaScript); ok && containsMeta(scripts, meta.Tag, meta.ID) {
			logging.WarnWithContext(logger, "duplicate meta script dropped", "duplicate_meta",
				append(logging.Script(meta.Tag, meta.ID), logging.Int("index", i))...)
			continue
		}
		scripts = append(scripts, s)
	}

	if setting.Scripts, err = c.reconcile(modelID, scripts, logger); err != nil {
		return script.ScriptSetting{}, err
	}
	return setting, nil
}

// reconcile appends the registry's expected meta scripts and applies the
// auto delete filter, preserving order.
func (c *Codec) reconcile(modelID int64, scripts []script.Script, logger *slog.Logger) ([]script.Script, error) {
	for _, ref := range c.registry.MetaScripts(modelID) {
		if containsMeta(scripts, ref.Tag, ref.ID) {
			continue
		}
		meta := script.DefaultMetaScript()
		meta.Tag = ref.Tag
		meta.ID = ref.ID
		scripts = append(scripts, &meta)
		logger.Debug("meta script added from registry", logging.Args(logging.Script(ref.Tag, ref.ID)...)...)
	}

	kept := scripts[:0]
	for _, s := range scripts {
		meta, ok := s.(*script.MetaScript)
		if !ok {
			kept = append(kept, s)
			continue
		}
		iface, err := c.registry.Interface(meta.Tag)
		if err != nil {
			return nil, fmt.Errorf("meta script %s/%s: %w", meta.Tag, meta.ID, err)
		}
		if registry.ShouldAutoDelete(iface, meta.ID, meta.Storage) {
			logger.Info("meta script auto deleted", logging.Args(logging.Script(meta.Tag, meta.ID)...)...)
			continue
		}
		kept = append(kept, s)
	}
	return kept, nil
}

func containsMeta(scripts []script.Script, tag, id string) bool {
	for _, s := range scripts {
		if meta, ok := s.(*script.MetaScript); ok && meta.Matches(tag, id) {
			return true
		}
	}
	return false
}

// DeserializeScript decodes one script record. Records carry an explicit
// "kind"; records without one are classified by shape: a "name" key means
// concrete, otherwise a "tag" key means meta.
func (c *Codec) DeserializeScript(raw map[string]any) (script.Script, error) {
	return c.decodeScript(raw, "")
}

func (c *Codec) decodeScript(item any, path string) (script.Script, error) {
	switch typed := item.(type) {
	case *script.ConcreteScript:
		s := typed.Clone()
		return &s, nil
	case *script.MetaScript:
		m := typed.Clone()
		return &m, nil
	}

	raw, err := asObject(item)
	if err != nil {
		return nil, decodeErr(path, err)
	}

	kind, err := scriptKind(raw, path)
	if err != nil {
		return nil, err
	}
	switch kind {
	case script.KindConcrete:
		s, err := decodeConcrete(raw, path)
		if err != nil {
			return nil, err
		}
		return &s, nil
	default:
		m, err := decodeMeta(raw, path)
		if err != nil {
			return nil, err
		}
		return &m, nil
	}
}

func scriptKind(raw map[string]any, path string) (script.Kind, error) {
	if v, ok := lookup(raw, "kind"); ok {
		s, err := asString(v)
		if err != nil {
			return "", decodeErr(joinPath(path, "kind"), err)
		}
		switch script.Kind(s) {
		case script.KindConcrete, script.KindMeta:
			return script.Kind(s), nil
		}
		return "", decodeErr(joinPath(path, "kind"), fmt.Errorf("unknown script kind %q", s))
	}
	if _, ok := raw["name"]; ok {
		return script.KindConcrete, nil
	}
	if _, ok := raw["tag"]; ok {
		return script.KindMeta, nil
	}
	return "", decodeErr(path, errors.New("script has neither kind, name nor tag"))
}

func decodeConcrete(raw map[string]any, path string) (script.ConcreteScript, error) {
	var fields script.Storage
	for _, f := range script.AllFields() {
		v, ok := lookup(raw, f.String())
		if !ok {
			continue
		}
		value, err := decodeFieldValue(f, v)
		if err != nil {
			return script.ConcreteScript{}, decodeErr(joinPath(path, f.String()), err)
		}
		if fields, err = fields.With(f, value); err != nil {
			return script.ConcreteScript{}, decodeErr(joinPath(path, f.String()), err)
		}
	}
	return fields.Overlay(script.DefaultConcreteScript()), nil
}

func decodeMeta(raw map[string]any, path string) (script.MetaScript, error) {
	meta := script.DefaultMetaScript()

	var err error
	if meta.Tag, err = readString(raw, path, "tag", meta.Tag); err != nil {
		return script.MetaScript{}, err
	}
	if meta.Tag == "" {
		return script.MetaScript{}, decodeErr(joinPath(path, "tag"), errors.New("required"))
	}
	if meta.ID, err = readString(raw, path, "id", meta.ID); err != nil {
		return script.MetaScript{}, err
	}

	if v, ok := lookup(raw, "storage"); ok {
		obj, err := asObject(v)
		if err != nil {
			return script.MetaScript{}, decodeErr(joinPath(path, "storage"), err)
		}
		if meta.Storage, err = decodeStorage(obj, joinPath(path, "storage")); err != nil {
			return script.MetaScript{}, err
		}
	}
	return meta, nil
}
