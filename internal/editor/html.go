package editor

import (
	"errors"
	"fmt"

	"assetman/internal/schema"
	"assetman/internal/script"
)

var htmlFields = script.NewFieldSet(
	script.FieldName,
	script.FieldEnabled,
	script.FieldLabel,
	script.FieldVersion,
	script.FieldDescription,
	script.FieldConditions,
	script.FieldCode,
)

// HTMLSession edits one HTML fragment.
type HTMLSession struct {
	validator *schema.Validator
	form      Form
}

// OpenHTML starts a session for fragment.
func OpenHTML(validator *schema.Validator, fragment script.ConcreteHTML) (*HTMLSession, error) {
	if validator == nil {
		return nil, errors.New("editor: validator is required")
	}
	return &HTMLSession{
		validator: validator,
		form: Form{
			Name:        fragment.Name,
			Enabled:     fragment.Enabled,
			Label:       fragment.Label,
			Version:     fragment.Version,
			Description: fragment.Description,
			Conditions:  conditionsText(fragment.Conditions),
			Code:        fragment.Code,
		},
	}, nil
}

// Form returns the current field values. Type and Position are unused.
func (h *HTMLSession) Form() Form { return h.form }

// Editable reports whether f may currently be changed.
func (h *HTMLSession) Editable(f script.Field) bool {
	if !htmlFields.Has(f) {
		return false
	}
	return h.form.Enabled || f == script.FieldEnabled
}

// Set parses value into the named field.
func (h *HTMLSession) Set(name, value string) error {
	f, err := script.ParseField(name)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	if !htmlFields.Has(f) {
		return fmt.Errorf("%w: html fragments have no %s", ErrInvalidValue, f)
	}
	if !h.Editable(f) {
		return fmt.Errorf("%s: %w", f, ErrReadonlyField)
	}
	return h.form.set(f, value)
}

// ValidateConditions parses the conditions text and checks it against the
// conditions schema.
func (h *HTMLSession) ValidateConditions() error {
	_, err := h.validator.ParseConditions(h.form.Conditions)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConditionsInvalid, err)
	}
	return nil
}

// Export returns the edited fragment.
func (h *HTMLSession) Export() (script.ConcreteHTML, error) {
	conds, err := h.validator.ParseConditions(h.form.Conditions)
	if err != nil {
		return script.ConcreteHTML{}, fmt.Errorf("%w: %w", ErrConditionsInvalid, err)
	}
	return script.ConcreteHTML{
		Name:        h.form.Name,
		Enabled:     h.form.Enabled,
		Label:       h.form.Label,
		Version:     h.form.Version,
		Description: h.form.Description,
		Conditions:  conds,
		Code:        h.form.Code,
	}, nil
}
