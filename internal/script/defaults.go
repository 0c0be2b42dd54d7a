package script

// MaxIndentSize bounds ScriptSetting.IndentSize.
const MaxIndentSize = 16

const (
	defaultIndentSize  = 4
	defaultVersion     = "v0.1"
	defaultScriptName  = "New Script"
	defaultHTMLName    = "New Fragment"
	defaultEnabled     = true
	defaultInsertStub  = true
	defaultMinify      = false
	defaultHTMLEnabled = true
)

// DefaultSetting returns the script setting used for note types that were
// never configured.
func DefaultSetting() ScriptSetting {
	return ScriptSetting{
		Enabled:    defaultEnabled,
		InsertStub: defaultInsertStub,
		IndentSize: defaultIndentSize,
		Scripts:    []Script{},
	}
}

// DefaultConcreteScript returns the field defaults for concrete scripts.
func DefaultConcreteScript() ConcreteScript {
	return ConcreteScript{
		Name:        defaultScriptName,
		Enabled:     defaultEnabled,
		Type:        TypeJS,
		Label:       "",
		Version:     defaultVersion,
		Description: "",
		Position:    PositionExternal,
		Conditions:  Conditions{},
		Code:        "",
	}
}

// DefaultMetaScript returns the field defaults for meta scripts.
func DefaultMetaScript() MetaScript {
	return MetaScript{}
}

// DefaultHTMLSetting returns the HTML setting used for note types that were
// never configured.
func DefaultHTMLSetting() HTMLSetting {
	return HTMLSetting{
		Enabled:   defaultHTMLEnabled,
		Minify:    defaultMinify,
		Fragments: []ConcreteHTML{},
	}
}

// DefaultConcreteHTML returns the field defaults for HTML fragments.
func DefaultConcreteHTML() ConcreteHTML {
	return ConcreteHTML{
		Name:       defaultHTMLName,
		Enabled:    defaultEnabled,
		Version:    defaultVersion,
		Conditions: Conditions{},
	}
}
