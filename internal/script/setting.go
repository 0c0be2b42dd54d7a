package script

// ScriptSetting is the script configuration of one note type.
type ScriptSetting struct {
	Enabled    bool
	InsertStub bool
	IndentSize int
	Scripts    []Script
}

// HTMLSetting is the HTML fragment configuration of one note type.
type HTMLSetting struct {
	Enabled   bool
	Minify    bool
	Fragments []ConcreteHTML
}

// Clone returns a deep copy of s.
func (s ScriptSetting) Clone() ScriptSetting {
	s.Scripts = CloneScripts(s.Scripts)
	return s
}

// Clone returns a deep copy of s.
func (s HTMLSetting) Clone() HTMLSetting {
	s.Fragments = CloneFragments(s.Fragments)
	return s
}

// MetaIndex returns the index of the first MetaScript registered under tag
// and id, or -1.
func (s ScriptSetting) MetaIndex(tag, id string) int {
	for i, entry := range s.Scripts {
		if meta, ok := entry.(*MetaScript); ok && meta.Matches(tag, id) {
			return i
		}
	}
	return -1
}
