package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Module registers interfaces and meta scripts.
type Module interface {
	Register(r *Registry) error
}

// MetaRef identifies a meta script expected on a note type.
type MetaRef struct {
	Tag string
	ID  string
}

// Registry holds the interfaces and expected meta scripts for one
// application instance.
type Registry struct {
	mu         sync.RWMutex
	interfaces map[string]Interface
	metas      map[int64][]MetaRef
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		interfaces: make(map[string]Interface),
		metas:      make(map[int64][]MetaRef),
	}
}

// RegisterModules lets each module populate the registry, stopping at the
// first failure.
func (r *Registry) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.Register(r); err != nil {
			return err
		}
	}
	return nil
}

// Register adds an interface under its tag.
func (r *Registry) Register(iface Interface) error {
	if iface == nil {
		return errors.New("register interface: nil interface")
	}
	tag := iface.Tag()
	if strings.TrimSpace(tag) == "" {
		return errors.New("register interface: tag must be set")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.interfaces[tag]; exists {
		return fmt.Errorf("register interface %q: %w", tag, ErrDuplicateTag)
	}
	r.interfaces[tag] = iface
	return nil
}

// Interface returns the interface registered under tag.
func (r *Registry) Interface(tag string) (Interface, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	iface, ok := r.interfaces[tag]
	if !ok {
		return nil, &UnregisteredError{Tag: tag}
	}
	return iface, nil
}

// Tags returns the registered tags in lexical order.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.interfaces))
	for tag := range r.interfaces {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// RegisterMetaScript records that modelID is expected to carry the meta
// script (tag, id). The tag must already be registered and each pair may be
// registered only once per note type.
func (r *Registry) RegisterMetaScript(modelID int64, tag, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.interfaces[tag]; !ok {
		return fmt.Errorf("register meta script %s/%s: %w", tag, id, &UnregisteredError{Tag: tag})
	}
	for _, ref := range r.metas[modelID] {
		if ref.Tag == tag && ref.ID == id {
			return fmt.Errorf("register meta script %s/%s on note type %d: %w", tag, id, modelID, ErrDuplicateMetaScript)
		}
	}
	r.metas[modelID] = append(r.metas[modelID], MetaRef{Tag: tag, ID: id})
	return nil
}

// InstallAll registers (tag, idFn(modelID)) on every given note type.
func (r *Registry) InstallAll(modelIDs []int64, tag string, idFn func(modelID int64) string) error {
	for _, modelID := range modelIDs {
		if err := r.RegisterMetaScript(modelID, tag, idFn(modelID)); err != nil {
			return err
		}
	}
	return nil
}

// MetaScripts returns the meta scripts expected on modelID in registration
// order.
func (r *Registry) MetaScripts(modelID int64) []MetaRef {
	r.mu.RLock()
	defer r.mu.RUnlock()
	refs := r.metas[modelID]
	out := make([]MetaRef, len(refs))
	copy(out, refs)
	return out
}
