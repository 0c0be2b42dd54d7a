package script

import "slices"

// Kind discriminates the Script variants.
type Kind string

const (
	KindConcrete Kind = "concrete"
	KindMeta     Kind = "meta"
)

// Script is either a *ConcreteScript or a *MetaScript.
type Script interface {
	Kind() Kind
	sealed()
}

// Conditions is a JSON array of condition expressions. An empty list
// matches every card. A nil list is equivalent and is persisted as [];
// decoding always yields a non-nil list.
type Conditions []any

// Clone returns a deep copy of the condition tree.
func (c Conditions) Clone() Conditions {
	if c == nil {
		return nil
	}
	out := make(Conditions, len(c))
	for i, v := range c {
		out[i] = cloneJSON(v)
	}
	return out
}

func cloneJSON(v any) any {
	switch typed := v.(type) {
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneJSON(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, item := range typed {
			out[k] = cloneJSON(item)
		}
		return out
	default:
		return v
	}
}

// ConcreteScript is a fully literal script record.
type ConcreteScript struct {
	Name        string
	Enabled     bool
	Type        Type
	Label       string
	Version     string
	Description string
	Position    Position
	Conditions  Conditions
	Code        string
}

func (*ConcreteScript) Kind() Kind { return KindConcrete }
func (*ConcreteScript) sealed()    {}

// Clone returns a copy that shares no mutable state with s.
func (s ConcreteScript) Clone() ConcreteScript {
	s.Conditions = s.Conditions.Clone()
	return s
}

// Value returns the value of field f.
func (s ConcreteScript) Value(f Field) any {
	switch f {
	case FieldName:
		return s.Name
	case FieldEnabled:
		return s.Enabled
	case FieldType:
		return s.Type
	case FieldLabel:
		return s.Label
	case FieldVersion:
		return s.Version
	case FieldDescription:
		return s.Description
	case FieldPosition:
		return s.Position
	case FieldConditions:
		return s.Conditions.Clone()
	case FieldCode:
		return s.Code
	}
	return nil
}

// MetaScript references a registered interface and carries the user's
// overrides for it.
type MetaScript struct {
	Tag     string
	ID      string
	Storage Storage
}

func (*MetaScript) Kind() Kind { return KindMeta }
func (*MetaScript) sealed()    {}

// Clone returns a copy that shares no mutable state with m.
func (m MetaScript) Clone() MetaScript {
	m.Storage = m.Storage.Clone()
	return m
}

// Matches reports whether m is registered under tag and id.
func (m MetaScript) Matches(tag, id string) bool {
	return m.Tag == tag && m.ID == id
}

// ConcreteHTML is a literal HTML fragment.
type ConcreteHTML struct {
	Name        string
	Enabled     bool
	Label       string
	Version     string
	Description string
	Conditions  Conditions
	Code        string
}

// Clone returns a copy that shares no mutable state with h.
func (h ConcreteHTML) Clone() ConcreteHTML {
	h.Conditions = h.Conditions.Clone()
	return h
}

// CloneScripts deep-copies a script list.
func CloneScripts(list []Script) []Script {
	if list == nil {
		return nil
	}
	out := make([]Script, len(list))
	for i, s := range list {
		switch typed := s.(type) {
		case *ConcreteScript:
			c := typed.Clone()
			out[i] = &c
		case *MetaScript:
			m := typed.Clone()
			out[i] = &m
		}
	}
	return out
}

// CloneFragments deep-copies a fragment list.
func CloneFragments(list []ConcreteHTML) []ConcreteHTML {
	out := slices.Clone(list)
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out
}
