package setting

import (
	"assetman/internal/script"
)

var htmlFields = []script.Field{
	script.FieldName,
	script.FieldEnabled,
	script.FieldLabel,
	script.FieldVersion,
	script.FieldDescription,
	script.FieldConditions,
	script.FieldCode,
}

// DeserializeHTMLSetting builds the HTML setting of a note type from its raw
// form. Absent keys take their defaults.
func (c *Codec) DeserializeHTMLSetting(modelID int64, raw map[string]any) (script.HTMLSetting, error) {
	setting := script.DefaultHTMLSetting()
	if raw == nil {
		raw = map[string]any{}
	}

	var err error
	if setting.Enabled, err = readBool(raw, "", "enabled", setting.Enabled); err != nil {
		return script.HTMLSetting{}, err
	}
	if setting.Minify, err = readBool(raw, "", "minify", setting.Minify); err != nil {
		return script.HTMLSetting{}, err
	}

	items, _, err := readList(raw, "", "fragments")
	if err != nil {
		return script.HTMLSetting{}, err
	}
	setting.Fragments = make([]script.ConcreteHTML, 0, len(items))
	for i, item := range items {
		fragment, err := decodeHTML(item, indexPath("fragments", i))
		if err != nil {
			return script.HTMLSetting{}, err
		}
		setting.Fragments = append(setting.Fragments, fragment)
	}
	return setting, nil
}

// DeserializeHTML decodes one HTML fragment record.
func (c *Codec) DeserializeHTML(raw map[string]any) (script.ConcreteHTML, error) {
	return decodeHTML(raw, "")
}

func decodeHTML(item any, path string) (script.ConcreteHTML, error) {
	if fragment, ok := item.(script.ConcreteHTML); ok {
		return fragment.Clone(), nil
	}
	raw, err := asObject(item)
	if err != nil {
		return script.ConcreteHTML{}, decodeErr(path, err)
	}

	fragment := script.DefaultConcreteHTML()
	for _, f := range htmlFields {
		v, ok := lookup(raw, f.String())
		if !ok {
			continue
		}
		value, err := decodeFieldValue(f, v)
		if err != nil {
			return script.ConcreteHTML{}, decodeErr(joinPath(path, f.String()), err)
		}
		switch f {
		case script.FieldName:
			fragment.Name = value.(string)
		case script.FieldEnabled:
			fragment.Enabled = value.(bool)
		case script.FieldLabel:
			fragment.Label = value.(string)
		case script.FieldVersion:
			fragment.Version = value.(string)
		case script.FieldDescription:
			fragment.Description = value.(string)
		case script.FieldConditions:
			fragment.Conditions = value.(script.Conditions)
		case script.FieldCode:
			fragment.Code = value.(string)
		}
	}
	return fragment, nil
}

// SerializeHTMLSetting returns the persisted form of s.
func SerializeHTMLSetting(s script.HTMLSetting) map[string]any {
	fragments := make([]any, 0, len(s.Fragments))
	for _, fragment := range s.Fragments {
		fragments = append(fragments, SerializeHTML(fragment))
	}
	return map[string]any{
		"enabled":   s.Enabled,
		"minify":    s.Minify,
		"fragments": fragments,
	}
}

// SerializeHTML returns the persisted form of a fragment.
func SerializeHTML(h script.ConcreteHTML) map[string]any {
	return map[string]any{
		"name":        h.Name,
		"enabled":     h.Enabled,
		"label":       h.Label,
		"version":     h.Version,
		"description": h.Description,
		"conditions":  conditionsValue(h.Conditions),
		"code":        h.Code,
	}
}
