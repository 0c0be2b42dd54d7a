package render

import (
	"errors"
	"fmt"
	"strings"

	"assetman/internal/script"
)

// Side is the card side a template renders.
type Side string

const (
	SideFront Side = "front"
	SideBack  Side = "back"
)

// ParseSide validates a side string.
func ParseSide(value string) (Side, error) {
	switch s := Side(strings.ToLower(strings.TrimSpace(value))); s {
	case SideFront, SideBack:
		return s, nil
	}
	return "", fmt.Errorf("unknown card side %q", value)
}

// Target identifies the template being rendered.
type Target struct {
	Model    string
	Template string
	Side     Side
}

func (t Target) value(key string) (string, error) {
	switch key {
	case "model":
		return t.Model, nil
	case "template":
		return t.Template, nil
	case "side":
		return string(t.Side), nil
	}
	return "", fmt.Errorf("unknown condition key %q", key)
}

var errMalformedCondition = errors.New("malformed condition")

// Match reports whether every condition holds for target. An empty list
// matches everything.
func Match(conds script.Conditions, target Target) (bool, error) {
	for i, c := range conds {
		ok, err := evaluate(c, target)
		if err != nil {
			return false, fmt.Errorf("condition %d: %w", i, err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func evaluate(raw any, target Target) (bool, error) {
	list, ok := raw.([]any)
	if !ok || len(list) == 0 {
		return false, fmt.Errorf("%w: %v", errMalformedCondition, raw)
	}
	head, ok := list[0].(string)
	if !ok {
		return false, fmt.Errorf("%w: %v", errMalformedCondition, raw)
	}

	switch head {
	case "&":
		for _, c := range list[1:] {
			matched, err := evaluate(c, target)
			if err != nil || !matched {
				return false, err
			}
		}
		return true, nil
	case "|":
		for _, c := range list[1:] {
			matched, err := evaluate(c, target)
			if err != nil {
				return false, err
			}
			if matched {
				return true, nil
			}
		}
		return false, nil
	case "!":
		if len(list) != 2 {
			return false, fmt.Errorf("%w: negation takes one operand", errMalformedCondition)
		}
		matched, err := evaluate(list[1], target)
		return !matched, err
	}

	if len(list) != 3 {
		return false, fmt.Errorf("%w: %v", errMalformedCondition, raw)
	}
	op, opOK := list[1].(string)
	want, wantOK := list[2].(string)
	if !opOK || !wantOK {
		return false, fmt.Errorf("%w: %v", errMalformedCondition, raw)
	}
	have, err := target.value(head)
	if err != nil {
		return false, err
	}
	switch op {
	case "=":
		return have == want, nil
	case "!=":
		return have != want, nil
	case "includes":
		return strings.Contains(have, want), nil
	case "startsWith":
		return strings.HasPrefix(have, want), nil
	case "endsWith":
		return strings.HasSuffix(have, want), nil
	}
	return false, fmt.Errorf("unknown condition operator %q", op)
}
