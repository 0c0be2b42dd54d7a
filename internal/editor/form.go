package editor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"assetman/internal/script"
)

// Form holds the editable values of a script. Conditions are kept as the
// JSON text the user typed and only parsed on validation.
type Form struct {
	Name        string
	Enabled     bool
	Type        script.Type
	Label       string
	Version     string
	Description string
	Position    script.Position
	Conditions  string
	Code        string
}

func formFromScript(s script.ConcreteScript) Form {
	return Form{
		Name:        s.Name,
		Enabled:     s.Enabled,
		Type:        s.Type,
		Label:       s.Label,
		Version:     s.Version,
		Description: s.Description,
		Position:    s.Position,
		Conditions:  conditionsText(s.Conditions),
		Code:        s.Code,
	}
}

func (f Form) script(conds script.Conditions) script.ConcreteScript {
	return script.ConcreteScript{
		Name:        f.Name,
		Enabled:     f.Enabled,
		Type:        f.Type,
		Label:       f.Label,
		Version:     f.Version,
		Description: f.Description,
		Position:    f.Position,
		Conditions:  conds,
		Code:        f.Code,
	}
}

// set parses value into field. Fields outside allowed are rejected as
// unknown.
func (f *Form) set(field script.Field, value string) error {
	switch field {
	case script.FieldName:
		f.Name = value
	case script.FieldEnabled:
		enabled, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s: %w: %q is not a boolean", field, ErrInvalidValue, value)
		}
		f.Enabled = enabled
	case script.FieldType:
		t, err := script.ParseType(value)
		if err != nil {
			return fmt.Errorf("%s: %w: %v", field, ErrInvalidValue, err)
		}
		f.Type = t
	case script.FieldLabel:
		f.Label = value
	case script.FieldVersion:
		f.Version = value
	case script.FieldDescription:
		f.Description = value
	case script.FieldPosition:
		p, err := script.ParsePosition(value)
		if err != nil {
			return fmt.Errorf("%s: %w: %v", field, ErrInvalidValue, err)
		}
		f.Position = p
	case script.FieldConditions:
		f.Conditions = value
	case script.FieldCode:
		f.Code = value
	default:
		return fmt.Errorf("%w: unknown field %s", ErrInvalidValue, field)
	}
	return nil
}

func conditionsText(conds script.Conditions) string {
	if conds == nil {
		conds = script.Conditions{}
	}
	data, err := json.Marshal([]any(conds))
	if err != nil {
		return "[]"
	}
	return string(data)
}
