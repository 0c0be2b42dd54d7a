package store

import "errors"

var (
	// ErrNotFound is returned for unknown note types.
	ErrNotFound = errors.New("note type not found")
	// ErrLocked is returned when another process holds the write lock.
	ErrLocked = errors.New("settings database is locked by another process")
	// ErrDuplicate is returned when a note type id or name already exists.
	ErrDuplicate = errors.New("note type already exists")
)

// ErrorClassifier lets errors declare a classification the CLI uses to pick
// its message and exit status.
type ErrorClassifier interface {
	// ErrorKind returns "validation", "decode", "not_found", "conflict" or
	// another short classification.
	ErrorKind() string
}

// Kind of an error, derived from ErrorClassifier or the package sentinels.
// Unclassified errors report "internal".
func ErrorKind(err error) string {
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return classifier.ErrorKind()
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrLocked), errors.Is(err, ErrDuplicate):
		return "conflict"
	}
	return "internal"
}
