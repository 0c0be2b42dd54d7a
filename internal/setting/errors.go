package setting

import (
	"errors"
	"fmt"
)

// ErrResetUnsupported is returned when a meta script's interface has no
// Reset capability.
var ErrResetUnsupported = errors.New("interface does not support reset")

var errUnknownStorageField = errors.New("unknown storage field")

// DecodeError reports a persisted value that could not be decoded. Path is
// the dotted location of the value, e.g. "scripts[2].storage.enabled".
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("decode setting: %v", e.Err)
	}
	return fmt.Sprintf("decode setting: %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ErrorKind classifies decode failures as corrupt stored data.
func (e *DecodeError) ErrorKind() string { return "decode" }

func decodeErr(path string, err error) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &DecodeError{Path: path, Err: err}
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func indexPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}
