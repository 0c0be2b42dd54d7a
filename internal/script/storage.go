package script

import "fmt"

// Storage holds the fields of a MetaScript the user overrode. A nil field is
// not overridden and defers to the interface getter.
type Storage struct {
	Name        *string
	Enabled     *bool
	Type        *Type
	Label       *string
	Version     *string
	Description *string
	Position    *Position
	Conditions  *Conditions
	Code        *string
}

// Get returns the override for f and whether one is set.
func (s Storage) Get(f Field) (any, bool) {
	switch f {
	case FieldName:
		return deref(s.Name)
	case FieldEnabled:
		return deref(s.Enabled)
	case FieldType:
		return deref(s.Type)
	case FieldLabel:
		return deref(s.Label)
	case FieldVersion:
		return deref(s.Version)
	case FieldDescription:
		return deref(s.Description)
	case FieldPosition:
		return deref(s.Position)
	case FieldConditions:
		if s.Conditions == nil {
			return nil, false
		}
		return s.Conditions.Clone(), true
	case FieldCode:
		return deref(s.Code)
	}
	return nil, false
}

func deref[T any](p *T) (any, bool) {
	if p == nil {
		return nil, false
	}
	return *p, true
}

// With returns a copy of s with f overridden by value. value must have the
// Go type ConcreteScript uses for f.
func (s Storage) With(f Field, value any) (Storage, error) {
	out := s.Clone()
	ok := true
	switch f {
	case FieldName:
		out.Name, ok = ptrOf[string](value)
	case FieldEnabled:
		out.Enabled, ok = ptrOf[bool](value)
	case FieldType:
		out.Type, ok = ptrOf[Type](value)
	case FieldLabel:
		out.Label, ok = ptrOf[string](value)
	case FieldVersion:
		out.Version, ok = ptrOf[string](value)
	case FieldDescription:
		out.Description, ok = ptrOf[string](value)
	case FieldPosition:
		out.Position, ok = ptrOf[Position](value)
	case FieldConditions:
		var conds Conditions
		conds, ok = value.(Conditions)
		if ok {
			conds = conds.Clone()
			out.Conditions = &conds
		}
	case FieldCode:
		out.Code, ok = ptrOf[string](value)
	default:
		return s, fmt.Errorf("unknown script field %v", f)
	}
	if !ok {
		return s, fmt.Errorf("storage field %s: unexpected value type %T", f, value)
	}
	return out, nil
}

func ptrOf[T any](value any) (*T, bool) {
	v, ok := value.(T)
	if !ok {
		return nil, false
	}
	return &v, true
}

// Overrides returns the set of fields with a value.
func (s Storage) Overrides() FieldSet {
	var set FieldSet
	for _, f := range allFields {
		if _, ok := s.Get(f); ok {
			set = set.With(f)
		}
	}
	return set
}

// IsEmpty reports whether no field is overridden.
func (s Storage) IsEmpty() bool {
	return s.Overrides() == 0
}

// Overlay applies the overrides in s onto base.
func (s Storage) Overlay(base ConcreteScript) ConcreteScript {
	out := base.Clone()
	if s.Name != nil {
		out.Name = *s.Name
	}
	if s.Enabled != nil {
		out.Enabled = *s.Enabled
	}
	if s.Type != nil {
		out.Type = *s.Type
	}
	if s.Label != nil {
		out.Label = *s.Label
	}
	if s.Version != nil {
		out.Version = *s.Version
	}
	if s.Description != nil {
		out.Description = *s.Description
	}
	if s.Position != nil {
		out.Position = *s.Position
	}
	if s.Conditions != nil {
		out.Conditions = s.Conditions.Clone()
	}
	if s.Code != nil {
		out.Code = *s.Code
	}
	return out
}

// Clone returns a copy that shares no pointers with s.
func (s Storage) Clone() Storage {
	return Storage{
		Name:        clonePtr(s.Name),
		Enabled:     clonePtr(s.Enabled),
		Type:        clonePtr(s.Type),
		Label:       clonePtr(s.Label),
		Version:     clonePtr(s.Version),
		Description: clonePtr(s.Description),
		Position:    clonePtr(s.Position),
		Conditions:  cloneConditionsPtr(s.Conditions),
		Code:        clonePtr(s.Code),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneConditionsPtr(p *Conditions) *Conditions {
	if p == nil {
		return nil
	}
	v := p.Clone()
	if v == nil {
		v = Conditions{}
	}
	return &v
}

// Assign returns a copy of s with f overridden by the value src has for it.
func (s Storage) Assign(f Field, src ConcreteScript) Storage {
	out := s.Clone()
	switch f {
	case FieldName:
		out.Name = &src.Name
	case FieldEnabled:
		out.Enabled = &src.Enabled
	case FieldType:
		out.Type = &src.Type
	case FieldLabel:
		out.Label = &src.Label
	case FieldVersion:
		out.Version = &src.Version
	case FieldDescription:
		out.Description = &src.Description
	case FieldPosition:
		out.Position = &src.Position
	case FieldConditions:
		conds := src.Conditions.Clone()
		if conds == nil {
			conds = Conditions{}
		}
		out.Conditions = &conds
	case FieldCode:
		out.Code = &src.Code
	}
	return out
}
