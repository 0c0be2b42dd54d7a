package schema

import "fmt"

// ErrorKind separates unparsable input from input that parsed but does not
// match the schema.
type ErrorKind string

const (
	KindSyntax ErrorKind = "syntax"
	KindSchema ErrorKind = "schema"
)

// Error reports a failed validation.
type Error struct {
	Document Document
	Kind     ErrorKind
	Err      error
}

func (e *Error) Error() string {
	if e.Kind == KindSyntax {
		return fmt.Sprintf("%s: invalid JSON: %v", e.Document, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Document, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ErrorKind classifies schema failures as user-correctable validation errors.
func (e *Error) ErrorKind() string { return "validation" }
