package registry

import (
	"errors"
	"fmt"
)

// ErrUnregisteredInterface is matched by errors returned for unknown tags.
var ErrUnregisteredInterface = errors.New("unregistered interface")

// ErrDuplicateTag is returned when a tag is registered twice.
var ErrDuplicateTag = errors.New("interface tag already registered")

// ErrDuplicateMetaScript is returned when a (tag, id) pair is registered
// twice for one note type.
var ErrDuplicateMetaScript = errors.New("meta script already registered")

// UnregisteredError reports the tag that has no interface.
type UnregisteredError struct {
	Tag string
}

func (e *UnregisteredError) Error() string {
	return fmt.Sprintf("unregistered interface %q", e.Tag)
}

// Is lets errors.Is match ErrUnregisteredInterface.
func (e *UnregisteredError) Is(target error) bool {
	return target == ErrUnregisteredInterface
}
