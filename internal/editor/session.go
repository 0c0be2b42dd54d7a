package editor

import (
	"errors"
	"fmt"

	"assetman/internal/registry"
	"assetman/internal/schema"
	"assetman/internal/script"
	"assetman/internal/setting"
)

// Session edits one script. It is not safe for concurrent use.
type Session struct {
	registry  *registry.Registry
	validator *schema.Validator

	meta  *script.MetaScript
	iface registry.Interface

	form Form
}

// Open starts a session for s. Meta scripts are resolved through their
// interface; an unregistered tag is an error.
func Open(reg *registry.Registry, validator *schema.Validator, s script.Script) (*Session, error) {
	if validator == nil {
		return nil, errors.New("editor: validator is required")
	}
	session := &Session{registry: reg, validator: validator}

	switch typed := s.(type) {
	case *script.ConcreteScript:
		session.form = formFromScript(typed.Clone())
	case *script.MetaScript:
		if reg == nil {
			return nil, errors.New("editor: registry is required for meta scripts")
		}
		iface, err := reg.Interface(typed.Tag)
		if err != nil {
			return nil, err
		}
		meta := typed.Clone()
		session.meta = &meta
		session.iface = iface
		session.form = formFromScript(iface.Get(meta.ID, meta.Storage.Clone()))
	default:
		return nil, fmt.Errorf("editor: unsupported script %T", s)
	}
	return session, nil
}

// Form returns the current field values.
func (s *Session) Form() Form { return s.form }

// IsMeta reports whether the session edits a meta script.
func (s *Session) IsMeta() bool { return s.meta != nil }

// Title is the heading shown above the editor: the interface label for meta
// scripts, the script name otherwise.
func (s *Session) Title() string {
	if s.meta != nil {
		return registry.Label(s.iface, s.meta.ID, s.meta.Storage)
	}
	return s.form.Name
}

// CanReset reports whether Reset is available.
func (s *Session) CanReset() bool {
	return s.meta != nil && registry.CanReset(s.iface)
}

// Editable reports whether f may currently be changed. Disabled scripts only
// accept changes to enabled; meta scripts never accept changes to the
// interface's read-only fields.
func (s *Session) Editable(f script.Field) bool {
	if s.meta != nil && s.iface.Readonly().Has(f) {
		return false
	}
	if !s.form.Enabled && f != script.FieldEnabled {
		return false
	}
	return true
}

// Set parses value into the named field.
func (s *Session) Set(name, value string) error {
	f, err := script.ParseField(name)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if !s.Editable(f) {
		return fmt.Errorf("%s: %w", f, ErrReadonlyField)
	}
	return s.form.set(f, value)
}

// ValidateConditions parses the conditions text and checks it against the
// conditions schema.
func (s *Session) ValidateConditions() error {
	_, err := s.conditions()
	return err
}

func (s *Session) conditions() (script.Conditions, error) {
	conds, err := s.validator.ParseConditions(s.form.Conditions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConditionsInvalid, err)
	}
	return conds, nil
}

func (s *Session) edited() (script.ConcreteScript, error) {
	conds, err := s.conditions()
	if err != nil {
		return script.ConcreteScript{}, err
	}
	return s.form.script(conds), nil
}

// Reset replaces the form with the interface's reset result. The storage
// passed to the interface reflects the current edits as the setter would
// store them.
func (s *Session) Reset() error {
	if !s.CanReset() {
		return setting.ErrResetUnsupported
	}
	edited, err := s.edited()
	if err != nil {
		return err
	}
	pending, err := setting.Save(s.registry, *s.meta, edited)
	if err != nil {
		return err
	}
	reset, err := setting.Reset(s.registry, pending)
	if err != nil {
		return err
	}
	s.form = formFromScript(reset)
	return nil
}

// Export returns the record to persist: a new ConcreteScript for concrete
// sessions, the setter's outcome for meta sessions.
func (s *Session) Export() (script.Script, error) {
	edited, err := s.edited()
	if err != nil {
		return nil, err
	}
	if s.meta == nil {
		return &edited, nil
	}
	saved, err := setting.Save(s.registry, *s.meta, edited)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}
