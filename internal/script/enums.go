package script

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Type identifies how a script is loaded by the card template.
type Type string

const (
	TypeJS  Type = "js"
	TypeESM Type = "esm"
)

// Position controls where a script ends up relative to the card template.
type Position string

const (
	PositionExternal     Position = "external"
	PositionIntoTemplate Position = "into_template"
)

// ParseType validates a script type string.
func ParseType(value string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(value))); t {
	case TypeJS, TypeESM:
		return t, nil
	}
	return "", fmt.Errorf("unknown script type %q", value)
}

// DisplayName returns the label shown in editors.
func (t Type) DisplayName() string {
	switch t {
	case TypeJS:
		return "JavaScript"
	case TypeESM:
		return "JavaScript Module"
	default:
		return string(t)
	}
}

// ParsePosition validates a script position string.
func ParsePosition(value string) (Position, error) {
	switch p := Position(strings.ToLower(strings.TrimSpace(value))); p {
	case PositionExternal, PositionIntoTemplate:
		return p, nil
	}
	return "", fmt.Errorf("unknown script position %q", value)
}

// DisplayName returns the label shown in editors ("into_template" becomes
// "Into Template").
func (p Position) DisplayName() string {
	return cases.Title(language.Und).String(strings.ReplaceAll(string(p), "_", " "))
}
