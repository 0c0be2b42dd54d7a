package editor

import "errors"

var (
	// ErrReadonlyField is returned when a field cannot be edited, either
	// because the interface marks it read only or because the script is
	// disabled.
	ErrReadonlyField = errors.New("field is read only")
	// ErrConditionsInvalid wraps the schema error for unusable conditions.
	ErrConditionsInvalid = errors.New("conditions are invalid")
	// ErrInvalidValue is returned when text cannot be parsed for a field.
	ErrInvalidValue = errors.New("invalid field value")
)

// ErrorKind classifies editor errors as user-correctable.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrReadonlyField), errors.Is(err, ErrConditionsInvalid), errors.Is(err, ErrInvalidValue):
		return "validation"
	default:
		return ""
	}
}
