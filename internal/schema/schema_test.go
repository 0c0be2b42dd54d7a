package schema

import (
	"errors"
	"testing"
)

func TestParseConditions(t *testing.T) {
	v := MustNew()

	tests := []struct {
		name    string
		text    string
		wantErr ErrorKind
	}{
		{"empty list", "[]", ""},
		{"leaf", `[["side", "=", "front"]]`, ""},
		{"nested", `[["|", ["model", "includes", "Cloze"], ["!", ["template", "=", "Card 2"]]]]`, ""},
		{"bad json", `[["side", "=", ]`, KindSyntax},
		{"blank", "", KindSyntax},
		{"unknown key", `[["deck", "=", "x"]]`, KindSchema},
		{"unknown operator", `[["side", "~", "front"]]`, KindSchema},
		{"object", `{"side": "front"}`, KindSyntax},
		{"negation arity", `[["!", ["side", "=", "front"], ["side", "=", "back"]]]`, KindSchema},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conds, err := v.ParseConditions(tt.text)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ParseConditions(%q) returned error: %v", tt.text, err)
				}
				if conds == nil {
					t.Fatal("expected non-nil conditions")
				}
				return
			}
			var schemaErr *Error
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if schemaErr.Kind != tt.wantErr {
				t.Fatalf("expected kind %s, got %s (%v)", tt.wantErr, schemaErr.Kind, err)
			}
		})
	}
}

func TestValidateSetting(t *testing.T) {
	v := MustNew()

	valid := map[string]any{
		"enabled":    true,
		"insertStub": false,
		"indentSize": 2,
		"scripts": []any{
			map[string]any{"kind": "concrete", "name": "A", "type": "js", "position": "external", "conditions": []any{}},
			map[string]any{"kind": "meta", "tag": "T", "id": "1", "storage": map[string]any{"code": "x"}},
			map[string]any{"name": "legacy concrete"},
			map[string]any{"tag": "T", "id": "2"},
		},
	}
	if err := v.ValidateSetting(valid); err != nil {
		t.Fatalf("expected valid setting, got %v", err)
	}

	invalid := []map[string]any{
		{"enabled": "yes"},
		{"indentSize": 40},
		{"unknown": 1},
		{"scripts": []any{map[string]any{"kind": "meta", "tag": "T"}}},
		{"scripts": []any{map[string]any{"tag": "T", "id": "1", "storage": map[string]any{"colour": "red"}}}},
		{"scripts": []any{map[string]any{"name": "A", "tag": "T", "id": "1"}}},
		{"scripts": []any{map[string]any{"name": "A", "position": "head"}}},
	}
	for i, raw := range invalid {
		if err := v.ValidateSetting(raw); err == nil {
			t.Fatalf("case %d: expected validation error for %v", i, raw)
		}
	}
}

func TestDecodeObject(t *testing.T) {
	v := MustNew()

	obj, err := v.DecodeObject(DocHTMLSetting, []byte(`{"enabled": true, "minify": true, "fragments": [{"name": "f", "code": "<b>x</b>"}]}`))
	if err != nil {
		t.Fatalf("DecodeObject returned error: %v", err)
	}
	if obj["minify"] != true {
		t.Fatalf("unexpected object %v", obj)
	}

	if _, err := v.DecodeObject(DocHTMLSetting, []byte(`[1, 2]`)); err == nil {
		t.Fatal("expected error for non-object document")
	}
	_, err = v.DecodeObject(DocSetting, []byte(`{"enabled": `))
	var schemaErr *Error
	if !errors.As(err, &schemaErr) || schemaErr.Kind != KindSyntax {
		t.Fatalf("expected syntax error, got %v", err)
	}
	if schemaErr.ErrorKind() != "validation" {
		t.Fatalf("unexpected error kind %q", schemaErr.ErrorKind())
	}
}
