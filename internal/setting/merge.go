package setting

import (
	"fmt"

	"assetman/internal/registry"
	"assetman/internal/script"
)

// FixStorage returns a copy of old in which exactly the fields in store are
// replaced by their values in edited. Fields outside store keep their old
// override, or lack of one.
func FixStorage(old script.Storage, edited script.ConcreteScript, store script.FieldSet) script.Storage {
	out := old.Clone()
	for _, f := range store.Fields() {
		out = out.Assign(f, edited)
	}
	return out
}

// Save applies the interface's setter to edited and returns the meta script
// to persist. A veto returns meta unchanged; an accept stores the edits; a
// replacement stores the substituted script. Only the interface's Store
// fields are ever written.
func Save(reg *registry.Registry, meta script.MetaScript, edited script.ConcreteScript) (script.MetaScript, error) {
	iface, err := reg.Interface(meta.Tag)
	if err != nil {
		return script.MetaScript{}, err
	}

	result := iface.Set(meta.ID, edited.Clone())
	if result.Vetoed() {
		return meta.Clone(), nil
	}
	source := edited
	if replacement, ok := result.Replacement(); ok {
		source = replacement
	}

	out := meta.Clone()
	out.Storage = FixStorage(meta.Storage, source, iface.Store())
	return out, nil
}

// Resolve returns the effective concrete script: concrete scripts as they
// are, meta scripts through their interface getter.
func Resolve(reg *registry.Registry, s script.Script) (script.ConcreteScript, error) {
	switch typed := s.(type) {
	case *script.ConcreteScript:
		return typed.Clone(), nil
	case *script.MetaScript:
		iface, err := reg.Interface(typed.Tag)
		if err != nil {
			return script.ConcreteScript{}, err
		}
		return iface.Get(typed.ID, typed.Storage.Clone()), nil
	}
	return script.ConcreteScript{}, fmt.Errorf("resolve: unsupported script %T", s)
}

// Reset asks the interface for a fresh script for meta, computed from its
// current storage.
func Reset(reg *registry.Registry, meta script.MetaScript) (script.ConcreteScript, error) {
	iface, err := reg.Interface(meta.Tag)
	if err != nil {
		return script.ConcreteScript{}, err
	}
	resetter, ok := iface.(registry.Resetter)
	if !ok {
		return script.ConcreteScript{}, fmt.Errorf("%s: %w", meta.Tag, ErrResetUnsupported)
	}
	return resetter.Reset(meta.ID, meta.Storage.Clone()), nil
}

// ResolveAll resolves every script in s.
func ResolveAll(reg *registry.Registry, s script.ScriptSetting) ([]script.ConcreteScript, error) {
	out := make([]script.ConcreteScript, 0, len(s.Scripts))
	for i, entry := range s.Scripts {
		resolved, err := Resolve(reg, entry)
		if err != nil {
			return nil, fmt.Errorf("script %d: %w", i, err)
		}
		out = append(out, resolved)
	}
	return out, nil
}
