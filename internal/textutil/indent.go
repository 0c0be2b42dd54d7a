package textutil

import "strings"

// Indent prefixes every non-blank line of text with width spaces. Blank
// lines are emitted empty.
func Indent(text string, width int) string {
	if width <= 0 {
		return text
	}
	prefix := strings.Repeat(" ", width)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// CollapseLines trims each line and drops the blank ones.
func CollapseLines(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return strings.Join(out, "\n")
}
