package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"assetman/internal/script"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const baseURL = "https://assetman.local/schemas/"

// Document names an embedded schema.
type Document string

const (
	DocSetting     Document = "setting.json"
	DocHTMLSetting Document = "html_setting.json"
	DocConditions  Document = "script_cond.json"
)

var documents = []Document{DocConditions, DocSetting, DocHTMLSetting}

// Validator holds the compiled schemas.
type Validator struct {
	schemas map[Document]*jsonschema.Schema
}

// New compiles the embedded schemas.
func New() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft7)

	for _, doc := range documents {
		data, err := schemaFS.ReadFile("schemas/" + string(doc))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", doc, err)
		}
		parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", doc, err)
		}
		if err := compiler.AddResource(baseURL+string(doc), parsed); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", doc, err)
		}
	}

	v := &Validator{schemas: make(map[Document]*jsonschema.Schema, len(documents))}
	for _, doc := range documents {
		compiled, err := compiler.Compile(baseURL + string(doc))
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", doc, err)
		}
		v.schemas[doc] = compiled
	}
	return v, nil
}

// MustNew is New for callers that treat a broken embedded schema as a
// programming error.
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Validate checks a decoded JSON value (maps, slices, strings, bools and
// numbers) against doc.
func (v *Validator) Validate(doc Document, value any) error {
	compiled, ok := v.schemas[doc]
	if !ok {
		return fmt.Errorf("unknown schema %q", doc)
	}
	// Round-trip through JSON so instances built in Go (ints, typed strings)
	// reach the validator in canonical form.
	data, err := json.Marshal(value)
	if err != nil {
		return &Error{Document: doc, Kind: KindSyntax, Err: err}
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return &Error{Document: doc, Kind: KindSyntax, Err: err}
	}
	if err := compiled.Validate(instance); err != nil {
		return &Error{Document: doc, Kind: KindSchema, Err: err}
	}
	return nil
}

// ValidateSetting checks a raw script setting.
func (v *Validator) ValidateSetting(value any) error {
	return v.Validate(DocSetting, value)
}

// ValidateHTMLSetting checks a raw HTML setting.
func (v *Validator) ValidateHTMLSetting(value any) error {
	return v.Validate(DocHTMLSetting, value)
}

// ValidateConditions checks a raw condition list.
func (v *Validator) ValidateConditions(value any) error {
	return v.Validate(DocConditions, value)
}

// ParseConditions parses condition text as typed by a user.
func (v *Validator) ParseConditions(text string) (script.Conditions, error) {
	var raw []any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		return nil, &Error{Document: DocConditions, Kind: KindSyntax, Err: err}
	}
	if err := v.ValidateConditions(raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = []any{}
	}
	return script.Conditions(raw), nil
}

// DecodeObject parses data as a JSON object and validates it against doc.
func (v *Validator) DecodeObject(doc Document, data []byte) (map[string]any, error) {
	var raw any
	if err := json.Unmarshal(bytes.TrimSpace(data), &raw); err != nil {
		return nil, &Error{Document: doc, Kind: KindSyntax, Err: err}
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &Error{Document: doc, Kind: KindSchema, Err: errors.New("expected a JSON object")}
	}
	if err := v.Validate(doc, obj); err != nil {
		return nil, err
	}
	return obj, nil
}
