package setting

import "assetman/internal/script"

// SerializeSetting returns the persisted form of s.
func SerializeSetting(s script.ScriptSetting) map[string]any {
	scripts := make([]any, 0, len(s.Scripts))
	for _, entry := range s.Scripts {
		if raw := SerializeScript(entry); raw != nil {
			scripts = append(scripts, raw)
		}
	}
	return map[string]any{
		"enabled":    s.Enabled,
		"insertStub": s.InsertStub,
		"indentSize": s.IndentSize,
		"scripts":    scripts,
	}
}

// SerializeScript returns the persisted form of a script. Meta scripts keep
// only their overridden storage fields.
func SerializeScript(s script.Script) map[string]any {
	switch typed := s.(type) {
	case *script.ConcreteScript:
		return map[string]any{
			"kind":        string(script.KindConcrete),
			"name":        typed.Name,
			"enabled":     typed.Enabled,
			"type":        string(typed.Type),
			"label":       typed.Label,
			"version":     typed.Version,
			"description": typed.Description,
			"position":    string(typed.Position),
			"conditions":  conditionsValue(typed.Conditions),
			"code":        typed.Code,
		}
	case *script.MetaScript:
		return map[string]any{
			"kind":    string(script.KindMeta),
			"tag":     typed.Tag,
			"id":      typed.ID,
			"storage": SerializeStorage(typed.Storage),
		}
	}
	return nil
}

// SerializeStorage returns the non-nil fields of storage keyed by field name.
func SerializeStorage(storage script.Storage) map[string]any {
	out := make(map[string]any)
	for _, f := range storage.Overrides().Fields() {
		v, _ := storage.Get(f)
		switch typed := v.(type) {
		case script.Type:
			out[f.String()] = string(typed)
		case script.Position:
			out[f.String()] = string(typed)
		case script.Conditions:
			out[f.String()] = conditionsValue(typed)
		default:
			out[f.String()] = v
		}
	}
	return out
}

func conditionsValue(c script.Conditions) []any {
	if c == nil {
		return []any{}
	}
	return []any(c.Clone())
}
