package script

import (
	"fmt"
	"strings"
)

// Field names one attribute of a ConcreteScript.
type Field uint16

const (
	FieldName Field = 1 << iota
	FieldEnabled
	FieldType
	FieldLabel
	FieldVersion
	FieldDescription
	FieldPosition
	FieldConditions
	FieldCode
)

// allFields lists every field in declaration order.
var allFields = []Field{
	FieldName,
	FieldEnabled,
	FieldType,
	FieldLabel,
	FieldVersion,
	FieldDescription,
	FieldPosition,
	FieldConditions,
	FieldCode,
}

var fieldNames = map[Field]string{
	FieldName:        "name",
	FieldEnabled:     "enabled",
	FieldType:        "type",
	FieldLabel:       "label",
	FieldVersion:     "version",
	FieldDescription: "description",
	FieldPosition:    "position",
	FieldConditions:  "conditions",
	FieldCode:        "code",
}

// AllFields returns every script field in declaration order.
func AllFields() []Field {
	out := make([]Field, len(allFields))
	copy(out, allFields)
	return out
}

// ParseField resolves a field by its persisted name.
func ParseField(name string) (Field, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	for _, f := range allFields {
		if fieldNames[f] == trimmed {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown script field %q", name)
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("field(%d)", uint16(f))
}

// FieldSet is a set of script fields. The zero value is empty.
type FieldSet uint16

// NewFieldSet builds a set from the given fields.
func NewFieldSet(fields ...Field) FieldSet {
	var set FieldSet
	for _, f := range fields {
		set |= FieldSet(f)
	}
	return set
}

// ParseFieldSet builds a set from persisted field names.
func ParseFieldSet(names []string) (FieldSet, error) {
	var set FieldSet
	for _, name := range names {
		f, err := ParseField(name)
		if err != nil {
			return 0, err
		}
		set |= FieldSet(f)
	}
	return set, nil
}

// Has reports whether f is part of the set.
func (s FieldSet) Has(f Field) bool {
	return s&FieldSet(f) != 0
}

// With returns a copy of the set including f.
func (s FieldSet) With(f Field) FieldSet {
	return s | FieldSet(f)
}

// Fields returns the members in declaration order.
func (s FieldSet) Fields() []Field {
	var out []Field
	for _, f := range allFields {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Names returns the persisted names of the members.
func (s FieldSet) Names() []string {
	fields := s.Fields()
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.String()
	}
	return out
}

func (s FieldSet) String() string {
	return "[" + strings.Join(s.Names(), ",") + "]"
}
