package textutil

import "strings"

// Slug converts a script name to a lowercase token safe for asset file
// names. Letters are lowercased, digits, hyphens and underscores are kept,
// and everything else becomes an underscore. Returns "script" for input that
// leaves nothing behind.
func Slug(value string) string {
	value = strings.TrimSpace(value)
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "_-")
	if out == "" {
		return "script"
	}
	return out
}
