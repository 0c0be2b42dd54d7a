package setting

import (
	"encoding/json"
	"fmt"
	"math"

	"assetman/internal/script"
)

// lookup treats JSON null like an absent key.
func lookup(raw map[string]any, key string) (any, bool) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func readBool(raw map[string]any, path, key string, def bool) (bool, error) {
	v, ok := lookup(raw, key)
	if !ok {
		return def, nil
	}
	b, err := asBool(v)
	if err != nil {
		return def, decodeErr(joinPath(path, key), err)
	}
	return b, nil
}

func readInt(raw map[string]any, path, key string, def int) (int, error) {
	v, ok := lookup(raw, key)
	if !ok {
		return def, nil
	}
	n, err := asInt(v)
	if err != nil {
		return def, decodeErr(joinPath(path, key), err)
	}
	return n, nil
}

func readString(raw map[string]any, path, key string, def string) (string, error) {
	v, ok := lookup(raw, key)
	if !ok {
		return def, nil
	}
	s, err := asString(v)
	if err != nil {
		return def, decodeErr(joinPath(path, key), err)
	}
	return s, nil
}

func readList(raw map[string]any, path, key string) ([]any, bool, error) {
	v, ok := lookup(raw, key)
	if !ok {
		return nil, false, nil
	}
	switch typed := v.(type) {
	case []any:
		return typed, true, nil
	case []map[string]any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = item
		}
		return out, true, nil
	case []script.Script:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = item
		}
		return out, true, nil
	case []script.ConcreteHTML:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = item
		}
		return out, true, nil
	}
	return nil, false, decodeErr(joinPath(path, key), fmt.Errorf("expected array, got %s", jsonType(v)))
}

func asBool(v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("expected boolean, got %s", jsonType(v))
	}
	return b, nil
}

func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("expected integer, got %v", n)
		}
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, fmt.Errorf("integer out of range: %v", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %q", n.String())
		}
		if i > math.MaxInt32 || i < math.MinInt32 {
			return 0, fmt.Errorf("integer out of range: %d", i)
		}
		return int(i), nil
	}
	return 0, fmt.Errorf("expected integer, got %s", jsonType(v))
}

func asString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case script.Type:
		return string(s), nil
	case script.Position:
		return string(s), nil
	}
	return "", fmt.Errorf("expected string, got %s", jsonType(v))
}

func asConditions(v any) (script.Conditions, error) {
	switch c := v.(type) {
	case script.Conditions:
		return c.Clone(), nil
	case []any:
		return script.Conditions(c).Clone(), nil
	}
	return nil, fmt.Errorf("expected array, got %s", jsonType(v))
}

func asObject(v any) (map[string]any, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected object, got %s", jsonType(v))
	}
	return obj, nil
}

// decodeFieldValue converts a persisted value into the Go type script.Storage
// and script.ConcreteScript use for f.
func decodeFieldValue(f script.Field, v any) (any, error) {
	switch f {
	case script.FieldEnabled:
		return asBool(v)
	case script.FieldConditions:
		return asConditions(v)
	case script.FieldType:
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		t, err := script.ParseType(s)
		if err != nil {
			return nil, err
		}
		return t, nil
	case script.FieldPosition:
		s, err := asString(v)
		if err != nil {
			return nil, err
		}
		p, err := script.ParsePosition(s)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return asString(v)
	}
}

// decodeStorage reads a storage object. Unknown keys are rejected since they
// would silently be dropped on the next save.
func decodeStorage(raw map[string]any, path string) (script.Storage, error) {
	var storage script.Storage
	for key, v := range raw {
		f, err := script.ParseField(key)
		if err != nil {
			return script.Storage{}, decodeErr(joinPath(path, key), errUnknownStorageField)
		}
		if v == nil {
			continue
		}
		value, err := decodeFieldValue(f, v)
		if err != nil {
			return script.Storage{}, decodeErr(joinPath(path, key), err)
		}
		if storage, err = storage.With(f, value); err != nil {
			return script.Storage{}, decodeErr(joinPath(path, key), err)
		}
	}
	return storage, nil
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string, script.Type, script.Position:
		return "string"
	case float64, int, int64, json.Number:
		return "number"
	case []any, script.Conditions:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
