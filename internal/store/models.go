package store

import (
	"fmt"
	"time"
)

// Kind selects one of the two settings a note type owns.
type Kind string

const (
	KindScripts Kind = "scripts"
	KindHTML    Kind = "html"
)

// ParseKind validates a kind string.
func ParseKind(value string) (Kind, error) {
	switch k := Kind(value); k {
	case KindScripts, KindHTML:
		return k, nil
	}
	return "", fmt.Errorf("unknown setting kind %q", value)
}

// Notetype is a note model the settings belong to.
type Notetype struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
