package registry

import (
	"fmt"

	"assetman/internal/script"
)

// Interface is the behaviour shared by all meta scripts with the same tag.
type Interface interface {
	// Tag is the registry key.
	Tag() string
	// Get computes the effective script for id given the current overrides.
	Get(id string, storage script.Storage) script.ConcreteScript
	// Set is called when the user saves edits; see SetResult.
	Set(id string, edited script.ConcreteScript) SetResult
	// Store lists the fields persisted as overrides.
	Store() script.FieldSet
	// Readonly lists the fields editors must not change.
	Readonly() script.FieldSet
}

// Resetter recomputes a script independent of prior edits.
type Resetter interface {
	Reset(id string, storage script.Storage) script.ConcreteScript
}

// Labeler supplies the label shown next to a meta script.
type Labeler interface {
	Label(id string, storage script.Storage) string
}

// AutoDeleter marks meta scripts to be purged from settings on next load.
type AutoDeleter interface {
	AutoDelete(id string, storage script.Storage) bool
}

// GenerateContext identifies the template a script is generated for.
type GenerateContext struct {
	Model    string
	Template string
	Side     string
}

// Generator produces the code inserted into a card template. Returning an
// empty string inserts nothing.
type Generator interface {
	Generate(id string, storage script.Storage, gctx GenerateContext) string
}

type setKind int

const (
	setVeto setKind = iota
	setAccept
	setReplace
)

// SetResult is the outcome of Interface.Set.
type SetResult struct {
	kind   setKind
	script script.ConcreteScript
}

// Veto discards the edits; nothing is stored.
func Veto() SetResult { return SetResult{kind: setVeto} }

// Accept stores the user's edits, restricted to the Store fields.
func Accept() SetResult { return SetResult{kind: setAccept} }

// Replace stores s instead of the user's edits, restricted to the Store
// fields.
func Replace(s script.ConcreteScript) SetResult {
	return SetResult{kind: setReplace, script: s.Clone()}
}

// Vetoed reports whether the edits were rejected.
func (r SetResult) Vetoed() bool { return r.kind == setVeto }

// Replacement returns the substituted script, if any.
func (r SetResult) Replacement() (script.ConcreteScript, bool) {
	if r.kind != setReplace {
		return script.ConcreteScript{}, false
	}
	return r.script.Clone(), true
}

func (r SetResult) String() string {
	switch r.kind {
	case setAccept:
		return "accept"
	case setReplace:
		return "replace"
	default:
		return "veto"
	}
}

// Label returns the interface label for id, defaulting to "<tag>: <id>".
func Label(iface Interface, id string, storage script.Storage) string {
	if labeler, ok := iface.(Labeler); ok {
		return labeler.Label(id, storage)
	}
	return fmt.Sprintf("%s: %s", iface.Tag(), id)
}

// ShouldAutoDelete reports whether the interface purges id. Interfaces
// without the capability never do.
func ShouldAutoDelete(iface Interface, id string, storage script.Storage) bool {
	if deleter, ok := iface.(AutoDeleter); ok {
		return deleter.AutoDelete(id, storage)
	}
	return false
}

// CanReset reports whether the interface supports Reset.
func CanReset(iface Interface) bool {
	_, ok := iface.(Resetter)
	return ok
}

// Generate returns the code to insert into a template, defaulting to the
// getter's code.
func Generate(iface Interface, id string, storage script.Storage, gctx GenerateContext) string {
	if gen, ok := iface.(Generator); ok {
		return gen.Generate(id, storage, gctx)
	}
	return iface.Get(id, storage).Code
}
